// Package repositories defines the storage contracts the service layer depends on.
package repositories

import (
	"context"

	"github.com/google/uuid"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
)

// TaskRepository stores tasks keyed by id. Implementations perform no
// validation and must return *entities.TaskNotFoundError for unknown ids.
type TaskRepository interface {
	Get(ctx context.Context, id uuid.UUID) (entities.Task, error)

	// Save inserts the task or overwrites the stored one with the same id.
	Save(ctx context.Context, task entities.Task) error

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all tasks newest first.
	List(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error)

	ListFiltered(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error)
}
