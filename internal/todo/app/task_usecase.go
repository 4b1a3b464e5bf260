package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/api"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	methodCreateTask         = "CreateTask"
	methodFindTask           = "FindTask"
	methodUpdateTask         = "UpdateTask"
	methodChangeTaskStatus   = "ChangeTaskStatus"
	methodChangeTaskPriority = "ChangeTaskPriority"
	methodSetTaskDueDate     = "SetTaskDueDate"
	methodDeleteTask         = "DeleteTask"
	methodListTasks          = "ListTasks"
	methodListFilteredTasks  = "ListFilteredTasks"

	msgCreatingTask      = "creating task"
	msgTaskCreated       = "task created"
	msgTaskUpdated       = "task updated"
	msgTaskDeleted       = "task deleted"
	msgInvalidTask       = "task validation failed"
	msgInvalidTaskID     = "invalid task id"
	msgInvalidPage       = "invalid page parameters"
	msgInvalidStatus     = "invalid status"
	msgInvalidPriority   = "invalid priority"
	msgListingTasks      = "listing tasks"
	msgErrSaveTask       = "failed to save task"
	msgErrGetTask        = "failed to get task"
	msgErrDeleteTask     = "failed to delete task"
	msgErrListTasks      = "failed to list tasks"
	errCtxSavingTask     = "saving task"
	errCtxGettingTask    = "getting task"
	errCtxDeletingTask   = "deleting task"
	errCtxListingTasks   = "listing tasks"
	errCtxValidatingTask = "validating task"
)

// TaskUseCaseImpl implements api.TaskUseCase.
type TaskUseCaseImpl struct {
	repo repositories.TaskRepository
	opts options
}

// NewTaskUseCase creates the task service on top of repo.
func NewTaskUseCase(repo repositories.TaskRepository, opts ...Option) api.TaskUseCase {
	return &TaskUseCaseImpl{repo: repo, opts: newOptions(opts)}
}

// CreateTask validates the fields, stores a new todo task and returns it.
func (uc *TaskUseCaseImpl) CreateTask(ctx context.Context, title, description string, priority entities.Priority) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTask))
	log.Debug(ctx, msgCreatingTask)

	task, err := entities.NewTask(title, description, priority, uc.opts.now())
	if err != nil {
		log.Debug(ctx, msgInvalidTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxValidatingTask, err)
	}

	if err := uc.repo.Save(ctx, task); err != nil {
		log.Error(ctx, msgErrSaveTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxSavingTask, err)
	}

	log.Info(ctx, msgTaskCreated, zap.String("task_id", task.ID.String()))
	return task, nil
}

// FindTask returns the task with the given id.
func (uc *TaskUseCaseImpl) FindTask(ctx context.Context, id string) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindTask), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return entities.Task{}, err
	}
	return uc.get(ctx, log, taskID)
}

// UpdateTask replaces title and description after validating both.
func (uc *TaskUseCaseImpl) UpdateTask(ctx context.Context, id, title, description string) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateTask), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return entities.Task{}, err
	}

	return uc.mutate(ctx, log, taskID, func(t entities.Task) (entities.Task, error) {
		updated, err := t.Updating(title, description)
		if err != nil {
			log.Debug(ctx, msgInvalidTask, zap.Error(err))
			return entities.Task{}, fmt.Errorf("%s: %w", errCtxValidatingTask, err)
		}
		return updated, nil
	})
}

// ChangeTaskStatus sets the status. Any status may follow any other.
func (uc *TaskUseCaseImpl) ChangeTaskStatus(ctx context.Context, id string, status entities.Status) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodChangeTaskStatus), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return entities.Task{}, err
	}

	if !status.Valid() {
		log.Debug(ctx, msgInvalidStatus, zap.String("status", status.String()))
		return entities.Task{}, entities.ErrInvalidStatus
	}

	return uc.mutate(ctx, log, taskID, func(t entities.Task) (entities.Task, error) {
		return t.WithStatus(status), nil
	})
}

// ChangeTaskPriority sets the priority.
func (uc *TaskUseCaseImpl) ChangeTaskPriority(ctx context.Context, id string, priority entities.Priority) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodChangeTaskPriority), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return entities.Task{}, err
	}

	if !priority.Valid() {
		log.Debug(ctx, msgInvalidPriority, zap.String("priority", priority.String()))
		return entities.Task{}, entities.ErrInvalidPriority
	}

	return uc.mutate(ctx, log, taskID, func(t entities.Task) (entities.Task, error) {
		return t.WithPriority(priority), nil
	})
}

// SetTaskDueDate sets or, with nil, clears the due date. Past dates are allowed.
func (uc *TaskUseCaseImpl) SetTaskDueDate(ctx context.Context, id string, due *time.Time) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSetTaskDueDate), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return entities.Task{}, err
	}

	return uc.mutate(ctx, log, taskID, func(t entities.Task) (entities.Task, error) {
		return t.WithDueDate(due), nil
	})
}

// DeleteTask removes the task permanently.
func (uc *TaskUseCaseImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteTask), zap.String("task_id", id))

	taskID, err := uc.parseTaskID(ctx, log, id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, taskID); err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgErrDeleteTask, zap.Error(err))
			return err
		}
		log.Error(ctx, msgErrDeleteTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingTask, err)
	}

	log.Info(ctx, msgTaskDeleted)
	return nil
}

// ListTasks returns a page of all tasks, newest first.
func (uc *TaskUseCaseImpl) ListTasks(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTasks), zap.Int("page", page), zap.Int("page_size", pageSize))
	log.Debug(ctx, msgListingTasks)

	if err := validatePage(page, pageSize); err != nil {
		log.Debug(ctx, msgInvalidPage)
		return pagination.Result[entities.Task]{}, err
	}

	res, err := uc.repo.List(ctx, page, pageSize)
	if err != nil {
		log.Error(ctx, msgErrListTasks, zap.Error(err))
		return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}
	return res, nil
}

// ListFilteredTasks returns a filtered, searched and sorted page of tasks.
func (uc *TaskUseCaseImpl) ListFilteredTasks(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodListFilteredTasks),
		zap.Int("page", q.Page),
		zap.Int("page_size", q.PageSize),
		zap.Stringer("sort", q.Sort.Key),
	)
	log.Debug(ctx, msgListingTasks)

	if err := validatePage(q.Page, q.PageSize); err != nil {
		log.Debug(ctx, msgInvalidPage)
		return pagination.Result[entities.Task]{}, err
	}
	q.Search = strings.TrimSpace(q.Search)

	res, err := uc.repo.ListFiltered(ctx, q)
	if err != nil {
		log.Error(ctx, msgErrListTasks, zap.Error(err))
		return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxListingTasks, err)
	}
	return res, nil
}

func (uc *TaskUseCaseImpl) parseTaskID(ctx context.Context, log *logger.Logger, id string) (uuid.UUID, error) {
	taskID, err := parseID(id)
	if err != nil {
		log.Debug(ctx, msgInvalidTaskID)
		return uuid.Nil, err
	}
	return taskID, nil
}

func (uc *TaskUseCaseImpl) get(ctx context.Context, log *logger.Logger, taskID uuid.UUID) (entities.Task, error) {
	task, err := uc.repo.Get(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			log.Debug(ctx, msgErrGetTask, zap.Error(err))
			return entities.Task{}, err
		}
		log.Error(ctx, msgErrGetTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxGettingTask, err)
	}
	return task, nil
}

// mutate fetches the task, applies fn and saves the result. Nothing is
// saved when fn fails.
func (uc *TaskUseCaseImpl) mutate(
	ctx context.Context,
	log *logger.Logger,
	taskID uuid.UUID,
	fn func(entities.Task) (entities.Task, error),
) (entities.Task, error) {
	task, err := uc.get(ctx, log, taskID)
	if err != nil {
		return entities.Task{}, err
	}

	updated, err := fn(task)
	if err != nil {
		return entities.Task{}, err
	}

	if err := uc.repo.Save(ctx, updated); err != nil {
		log.Error(ctx, msgErrSaveTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxSavingTask, err)
	}

	log.Info(ctx, msgTaskUpdated)
	return updated, nil
}
