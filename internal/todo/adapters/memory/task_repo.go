// Package memory provides map-backed repositories.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
)

// TaskRepository keeps tasks in a map guarded by a single lock.
type TaskRepository struct {
	mu       sync.RWMutex
	tasks    map[uuid.UUID]entities.Task
	composer *query.Composer
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository returns an empty repository. A nil composer means the
// root collation.
func NewTaskRepository(composer *query.Composer) *TaskRepository {
	if composer == nil {
		composer = query.DefaultComposer()
	}
	return &TaskRepository{
		tasks:    make(map[uuid.UUID]entities.Task),
		composer: composer,
	}
}

func (r *TaskRepository) Get(_ context.Context, id uuid.UUID) (entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return entities.Task{}, entities.NewTaskNotFoundError(id)
	}
	return task.Clone(), nil
}

func (r *TaskRepository) Save(_ context.Context, task entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.NewTaskNotFoundError(id)
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) List(_ context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	all := r.snapshot()
	r.composer.SortTasks(all, query.DefaultTaskSort)
	return pagination.Paginate(all, page, pageSize), nil
}

func (r *TaskRepository) ListFiltered(_ context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	return r.composer.Tasks(r.snapshot(), q), nil
}

// Count returns the number of stored tasks.
func (r *TaskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// Clear removes every task.
func (r *TaskRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.tasks)
}

func (r *TaskRepository) snapshot() []entities.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Collect(maps.Values(r.tasks))
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
