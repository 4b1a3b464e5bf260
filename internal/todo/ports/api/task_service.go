// Package api defines the inbound ports of the todo service.
package api

import (
	"context"
	"time"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
)

// TaskUseCase is the task API exposed to transports.
type TaskUseCase interface {
	CreateTask(ctx context.Context, title, description string, priority entities.Priority) (entities.Task, error)
	FindTask(ctx context.Context, id string) (entities.Task, error)
	UpdateTask(ctx context.Context, id, title, description string) (entities.Task, error)
	ChangeTaskStatus(ctx context.Context, id string, status entities.Status) (entities.Task, error)
	ChangeTaskPriority(ctx context.Context, id string, priority entities.Priority) (entities.Task, error)
	SetTaskDueDate(ctx context.Context, id string, due *time.Time) (entities.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error)
	ListFilteredTasks(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error)
}
