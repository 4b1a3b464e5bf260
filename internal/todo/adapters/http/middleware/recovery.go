package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

// NewRecoveryMiddleware turns handler panics into 500 responses.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			log := logger.Log(requestCtx)
			log.Error(requestCtx, "server panic",
				zap.String("error", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)

			err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}()

		return ctx.Next()
	}
}
