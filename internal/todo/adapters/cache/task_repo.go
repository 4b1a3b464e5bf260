package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/cache"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const keyPrefix = "task:"

var lookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "todo_task_cache_lookups_total",
		Help: "Task cache lookups by result",
	},
	[]string{"result"},
)

// TaskRepository decorates a repositories.TaskRepository with a read-through
// cache for Get. Writes invalidate the cached entry. Cache failures are
// logged and never fail the call.
type TaskRepository struct {
	next  repositories.TaskRepository
	cache cache.Cache
	ttl   time.Duration
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository wraps next. A zero ttl uses the cache default.
func NewTaskRepository(next repositories.TaskRepository, c cache.Cache, ttl time.Duration) *TaskRepository {
	return &TaskRepository{next: next, cache: c, ttl: ttl}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task_cache"), zap.String("task_id", id.String()))

	raw, err := r.cache.Get(ctx, key(id))
	switch {
	case err == nil:
		var task entities.Task
		jsonErr := json.Unmarshal(raw, &task)
		if jsonErr == nil {
			lookups.WithLabelValues("hit").Inc()
			return task, nil
		}
		log.Warn(ctx, "discarding undecodable cache entry", zap.Error(jsonErr))
	case errors.Is(err, cache.ErrMiss):
		lookups.WithLabelValues("miss").Inc()
	default:
		lookups.WithLabelValues("error").Inc()
		log.Warn(ctx, "cache read failed", zap.Error(err))
	}

	task, err := r.next.Get(ctx, id)
	if err != nil {
		return entities.Task{}, err
	}

	if raw, err := json.Marshal(task); err == nil {
		if err := r.cache.Set(ctx, key(id), raw, r.ttl); err != nil {
			log.Warn(ctx, "cache write failed", zap.Error(err))
		}
	}
	return task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task entities.Task) error {
	if err := r.next.Save(ctx, task); err != nil {
		return err
	}
	r.invalidate(ctx, task.ID)
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *TaskRepository) List(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	return r.next.List(ctx, page, pageSize)
}

func (r *TaskRepository) ListFiltered(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	return r.next.ListFiltered(ctx, q)
}

func (r *TaskRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, key(id)); err != nil {
		logger.Log(ctx).Warn(ctx, "cache invalidation failed", zap.String("task_id", id.String()), zap.Error(err))
	}
}
