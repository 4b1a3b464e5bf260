// Package middleware holds the fiber middleware of the todo HTTP adapter.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gotodo/pkg/logger"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"

	localsRequestContext = "userContext"
)

// NewRequestIDMiddleware attaches a request id to the request context.
// The inbound X-Request-ID header is reused when present.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		ctx.Locals(localsRequestContext, requestCtx)
		return ctx.Next()
	}
}

// RequestContext returns the context prepared by NewRequestIDMiddleware,
// falling back to the fiber request context.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
