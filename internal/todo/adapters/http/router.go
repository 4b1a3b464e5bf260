// Package http wires the todo JSON API onto a fiber app.
package http

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/http/respond"
	"gotodo/internal/todo/adapters/http/tasks"
	"gotodo/internal/todo/adapters/http/users"
	"gotodo/internal/todo/ports/api"
)

// HealthCheck reports whether the backing store is usable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of the router.
type Deps struct {
	Tasks           api.TaskUseCase
	Users           api.UserUseCase
	Health          HealthCheck
	DefaultPageSize int
}

// SetupRouter registers middleware and routes on app.
func SetupRouter(app *fiber.App, deps Deps) {
	taskHandler := tasks.NewHandler(deps.Tasks, deps.DefaultPageSize)
	userHandler := users.NewHandler(deps.Users, deps.DefaultPageSize)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewMetricsMiddleware())

	app.Get("/metrics", middleware.MetricsHandler())
	app.Get("/healthz", healthz(deps.Health))

	apiV1 := app.Group("/api/v1")

	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:task_id", taskHandler.GetTask)
	taskRoutes.Put("/:task_id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:task_id", taskHandler.DeleteTask)
	taskRoutes.Patch("/:task_id/status", taskHandler.ChangeStatus)
	taskRoutes.Patch("/:task_id/priority", taskHandler.ChangePriority)
	taskRoutes.Patch("/:task_id/due-date", taskHandler.SetDueDate)

	userRoutes := apiV1.Group("/users")
	userRoutes.Post("/", userHandler.CreateUser)
	userRoutes.Get("/", userHandler.ListUsers)

	app.Use(func(ctx fiber.Ctx) error {
		return respond.JSON(ctx, fiber.StatusNotFound, dto.ErrorResponse{Error: "route not found"})
	})
}

func healthz(check HealthCheck) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if check != nil {
			if err := check(middleware.RequestContext(ctx)); err != nil {
				return respond.JSON(ctx, fiber.StatusServiceUnavailable, dto.ErrorResponse{Error: "unavailable"})
			}
		}
		return respond.JSON(ctx, fiber.StatusOK, fiber.Map{"status": "ok"})
	}
}
