package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/internal/todo/adapters/cache"
	todohttp "gotodo/internal/todo/adapters/http"
	"gotodo/internal/todo/adapters/memory"
	"gotodo/internal/todo/adapters/postgres"
	"gotodo/internal/todo/adapters/sqlite"
	"gotodo/internal/todo/app"
	"gotodo/internal/todo/config"
	"gotodo/internal/todo/db"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
	"gotodo/pkg/shutdown"
)

const (
	EnvLoggerMode  = "TODO_LOGGER_MODE"
	EnvLoggerLevel = "TODO_LOGGER_LEVEL"
	EnvConfigPath  = "TODO_CONFIG_PATH"
)

const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize storage"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	LogServiceStarted      = "todo service started"
	LogServiceShutdownDone = "todo service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

// storage is the repository pair of the selected driver.
type storage struct {
	tasks  repositories.TaskRepository
	users  repositories.UserRepository
	health todohttp.HealthCheck
	close  shutdown.Hook
}

func openStorage(ctx context.Context, cfg *config.Config, composer *query.Composer) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres, cfg.Postgres.MigrationsDir)
		if err != nil {
			return nil, err
		}
		factory := postgres.NewRepositoryFactory(database.Pool())
		return &storage{
			tasks:  factory.TaskRepository(),
			users:  factory.UserRepository(),
			health: database.Ping,
			close: func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		}, nil

	case config.DriverSQLite:
		gdb, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			tasks: sqlite.NewTaskRepository(gdb, composer),
			users: sqlite.NewUserRepository(gdb, composer),
			health: func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			close: func(context.Context) error { return sqlite.Close(gdb) },
		}, nil

	default:
		return &storage{
			tasks: memory.NewTaskRepository(composer),
			users: memory.NewUserRepository(composer),
			close: func(context.Context) error { return nil },
		}, nil
	}
}

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, os.Getenv(EnvConfigPath))
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		// Validate has already checked the locale.
		tag, _ := cfg.Paging.GetLanguage()
		composer := query.NewComposer(tag)

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
		store, err := openStorage(ctx, cfg, composer)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		hooks := []shutdown.Hook{}

		tasks := store.tasks
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				_ = store.close(ctx)
				exitCode = 1
				return
			}
			tasks = cache.NewTaskRepository(tasks, redisCache, cfg.Redis.DefaultTTL)
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, "closing Redis connection")
				return redisCache.Close()
			})
		}

		log.Info(ctx, LogInitServices)
		taskService := app.NewTaskUseCase(tasks)
		userService := app.NewUserUseCase(store.users)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		todohttp.SetupRouter(server, todohttp.Deps{
			Tasks:           taskService,
			Users:           userService,
			Health:          store.health,
			DefaultPageSize: cfg.Paging.DefaultPageSize,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks = append(hooks,
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, "closing storage", zap.String("driver", cfg.Storage.Driver))
				return store.close(ctx)
			},
		)

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
