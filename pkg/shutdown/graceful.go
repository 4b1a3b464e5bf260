// Package shutdown runs cleanup hooks once the process is asked to stop.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	logShutdownSignal   = "shutdown signal received"
	logShutdownCanceled = "shutdown triggered by context"
	logHookFailed       = "shutdown hook failed"
	logHooksTimedOut    = "shutdown hooks did not finish before timeout"
)

// Hook releases one resource within the shutdown deadline.
type Hook func(ctx context.Context) error

// Wait blocks until SIGINT/SIGTERM arrives or ctx is done, then runs every
// hook concurrently and returns when they finish or timeout elapses.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, logShutdownSignal, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, logShutdownCanceled)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, logHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, logHooksTimedOut, zap.Duration("timeout", timeout))
	}
}
