package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
	"gotodo/internal/todo/domain/query"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	errCtxGetTask    = "error querying task by id"
	errCtxSaveTask   = "error saving task"
	errCtxDeleteTask = "error deleting task"
	errCtxCountTasks = "error counting tasks"
	errCtxListTasks  = "error listing tasks"
	errCtxScanTask   = "error scanning task"
)

// TaskRepository stores tasks in the tasks table.
type TaskRepository struct {
	pool PgxPoolInterface
}

// NewTaskRepository creates a task repository over pool.
func NewTaskRepository(pool PgxPoolInterface) repositories.TaskRepository {
	return &TaskRepository{pool: pool}
}

// Get loads one task.
func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (entities.Task, error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Get"))

	sql := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, sql, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "task not found", zap.String("id", id.String()))
			return entities.Task{}, entities.NewTaskNotFoundError(id)
		}
		log.Error(ctx, errCtxGetTask, zap.Error(err))
		return entities.Task{}, fmt.Errorf("%s: %w", errCtxGetTask, err)
	}
	return task, nil
}

// Save upserts the task by id.
func (r *TaskRepository) Save(ctx context.Context, task entities.Task) error {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Save"))

	sql := `
        INSERT INTO tasks (id, title, description, created_at, due_date, status, status_order, priority, priority_order)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            description = EXCLUDED.description,
            created_at = EXCLUDED.created_at,
            due_date = EXCLUDED.due_date,
            status = EXCLUDED.status,
            status_order = EXCLUDED.status_order,
            priority = EXCLUDED.priority,
            priority_order = EXCLUDED.priority_order
    `

	_, err := r.pool.Exec(ctx, sql,
		task.ID.String(),
		task.Title,
		task.Description,
		task.CreatedAt,
		task.DueDate,
		task.Status.String(),
		task.Status.SortOrder(),
		task.Priority.String(),
		task.Priority.SortOrder(),
	)
	if err != nil {
		log.Error(ctx, errCtxSaveTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSaveTask, err)
	}
	return nil
}

// Delete removes the task.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id.String())
	if err != nil {
		log.Error(ctx, errCtxDeleteTask, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteTask, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "task not found for deletion", zap.String("id", id.String()))
		return entities.NewTaskNotFoundError(id)
	}
	return nil
}

// List returns a page of all tasks, newest first.
func (r *TaskRepository) List(ctx context.Context, page, pageSize int) (pagination.Result[entities.Task], error) {
	q := query.DefaultTaskQuery()
	q.Page, q.PageSize = page, pageSize
	return r.list(ctx, "List", q)
}

// ListFiltered pushes filters, search, sort and paging down to SQL.
func (r *TaskRepository) ListFiltered(ctx context.Context, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	return r.list(ctx, "ListFiltered", q)
}

func (r *TaskRepository) list(ctx context.Context, method string, q query.TaskQuery) (pagination.Result[entities.Task], error) {
	log := logger.Log(ctx).With(zap.String("repository", "task"), zap.String("method", method))

	where := taskWhere(q)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`+where.String(), where.args...).Scan(&total); err != nil {
		log.Error(ctx, errCtxCountTasks, zap.Error(err))
		return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxCountTasks, err)
	}

	offset, ok := pagination.Offset(q.Page, q.PageSize, total)
	if !ok {
		return pagination.NewResult[entities.Task](nil, q.Page, q.PageSize, total), nil
	}

	args := append(where.args, q.PageSize, offset)
	sql := fmt.Sprintf(`SELECT %s FROM tasks%s%s LIMIT $%d OFFSET $%d`,
		taskColumns, where.String(), taskOrderBy(q.Sort), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, errCtxListTasks, zap.Error(err))
		return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxListTasks, err)
	}
	defer rows.Close()

	items := make([]entities.Task, 0, q.PageSize)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error(ctx, errCtxScanTask, zap.Error(err))
			return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxScanTask, err)
		}
		items = append(items, task)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, errCtxListTasks, zap.Error(err))
		return pagination.Result[entities.Task]{}, fmt.Errorf("%s: %w", errCtxListTasks, err)
	}

	return pagination.NewResult(items, q.Page, q.PageSize, total), nil
}

func scanTask(row pgx.Row) (entities.Task, error) {
	var (
		task             entities.Task
		id               string
		status, priority string
		due              *time.Time
	)

	if err := row.Scan(&id, &task.Title, &task.Description, &task.CreatedAt, &due, &status, &priority); err != nil {
		return entities.Task{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return entities.Task{}, fmt.Errorf("invalid task id %q: %w", id, err)
	}
	task.ID = parsed
	task.DueDate = due
	task.Status = entities.Status(status)
	task.Priority = entities.Priority(priority)
	return task, nil
}
