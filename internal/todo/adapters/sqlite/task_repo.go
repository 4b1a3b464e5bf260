package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	errCtxGetTask    = "failed to get task"
	errCtxSaveTask   = "failed to save task"
	errCtxDeleteTask = "failed to delete task"
	errCtxListTasks  = "failed to list tasks"
)

var taskUpsertColumns = []string{
	"title", "description", "created_at", "due_date", "status", "status_order", "priority", "priority_order",
}

// TaskRepository stores tasks in SQLite. Status and priority filters run in
// SQL; search, sort and paging go through the shared composer so ordering
// matches the in-memory store.
type TaskRepository struct {
	db       *gorm.DB
	composer *query.Composer
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates the repository. A nil composer uses the root collation.
func NewTaskRepository(db *gorm.DB, composer *query.Composer) *TaskRepository {
	if composer == nil {
		composer = query.DefaultComposer()
	}
	return &TaskRepository{db: db, composer: composer}
}

func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (entities.Task, error) {
	var m taskModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Task{}, entities.NewTaskNotFoundError(id)
		}
		logger.Log(ctx).Error(ctx, errCtxGetTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxGetTask, err)
	}
	return m.toEntity()
}

func (r *TaskRepository) Save(ctx context.Context, task entities.Task) error {
	m := newTaskModel(task)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(taskUpsertColumns),
	}).Create(&m).Error
	if err != nil {
		logger.Log(ctx).Error(ctx, errCtxSaveTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSaveTask, err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&taskModel{}, "id = ?", id.String())
	if err := result.Error; err != nil {
		logger.Log(ctx).Error(ctx, errCtxDeleteTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteTask, err)
	}
	if result.RowsAffected == 0 {
		return entities.NewTaskNotFoundError(id)
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	all, err := r.load(ctx, r.db.WithContext(ctx))
	if err != nil {
		return pagination.Result[entities.Task]{}, err
	}
	r.composer.SortTasks(all, query.DefaultTaskSort)
	return pagination.Paginate(all, page, pageSize), nil
}

func (r *TaskRepository) ListFiltered(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	tx := r.db.WithContext(ctx)
	if q.Status != nil {
		tx = tx.Where("status = ?", q.Status.String())
	}
	if q.Priority != nil {
		tx = tx.Where("priority = ?", q.Priority.String())
	}

	all, err := r.load(ctx, tx)
	if err != nil {
		return pagination.Result[entities.Task]{}, err
	}
	return r.composer.Tasks(all, q), nil
}

func (r *TaskRepository) load(ctx context.Context, tx *gorm.DB) ([]entities.Task, error) {
	var models []taskModel
	if err := tx.Find(&models).Error; err != nil {
		logger.Log(ctx).Error(ctx, errCtxListTasks, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListTasks, err)
	}

	tasks := make([]entities.Task, 0, len(models))
	for _, m := range models {
		t, err := m.toEntity()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxListTasks, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
