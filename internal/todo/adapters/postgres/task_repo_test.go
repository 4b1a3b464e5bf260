package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/adapters/postgres"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/query"
	"gotodo/pkg/logger"
)

var taskCols = []string{"id", "title", "description", "created_at", "due_date", "status", "priority"}

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), log)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleTask() entities.Task {
	return entities.Task{
		ID:          uuid.New(),
		Title:       "Write docs",
		Description: "README",
		CreatedAt:   time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		Status:      entities.StatusInProgress,
		Priority:    entities.PriorityHigh,
	}
}

func taskRow(rows *pgxmock.Rows, task entities.Task) *pgxmock.Rows {
	return rows.AddRow(task.ID.String(), task.Title, task.Description, task.CreatedAt, task.DueDate,
		task.Status.String(), task.Priority.String())
}

func TestTaskRepository_Get(t *testing.T) {
	ctx := testContext(t)
	task := sampleTask()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WithArgs(task.ID.String()).
			WillReturnRows(taskRow(pgxmock.NewRows(taskCols), task))

		got, err := postgres.NewTaskRepository(mock).Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with due date", func(t *testing.T) {
		mock := newMock(t)
		due := task.CreatedAt.Add(72 * time.Hour)
		withDue := task.WithDueDate(&due)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WithArgs(task.ID.String()).
			WillReturnRows(taskRow(pgxmock.NewRows(taskCols), withDue))

		got, err := postgres.NewTaskRepository(mock).Get(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, due, *got.DueDate)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WithArgs(task.ID.String()).
			WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewTaskRepository(mock).Get(ctx, task.ID)
		var nf *entities.TaskNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, task.ID, nf.ID)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
			WithArgs(task.ID.String()).
			WillReturnError(errors.New("connection reset"))

		_, err := postgres.NewTaskRepository(mock).Get(ctx, task.ID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrTaskNotFound)
		assert.Contains(t, err.Error(), "error querying task by id")
	})
}

func TestTaskRepository_Save(t *testing.T) {
	ctx := testContext(t)
	task := sampleTask()

	t.Run("upsert", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET")).
			WithArgs(task.ID.String(), task.Title, task.Description, task.CreatedAt, pgxmock.AnyArg(),
				"ONGOING", 1, "HIGH", 1).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, postgres.NewTaskRepository(mock).Save(ctx, task))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tasks")).
			WillReturnError(errors.New("disk full"))

		err := postgres.NewTaskRepository(mock).Save(ctx, task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error saving task")
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	ctx := testContext(t)
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, postgres.NewTaskRepository(mock).Delete(ctx, id))
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewTaskRepository(mock).Delete(ctx, id)
		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})
}

func TestTaskRepository_List(t *testing.T) {
	ctx := testContext(t)
	a, b := sampleTask(), sampleTask()

	t.Run("page", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2")).
			WithArgs(5, 5).
			WillReturnRows(taskRow(taskRow(pgxmock.NewRows(taskCols), a), b))

		res, err := postgres.NewTaskRepository(mock).List(ctx, 2, 5)
		require.NoError(t, err)
		assert.Equal(t, []entities.Task{a, b}, res.Items)
		assert.Equal(t, 2, res.Metadata.CurrentPage)
		assert.Equal(t, 12, res.Metadata.TotalItems)
		assert.Equal(t, 3, res.Metadata.TotalPages)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end skips the select", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks")).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

		res, err := postgres.NewTaskRepository(mock).List(ctx, 9, 5)
		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.Equal(t, 9, res.Metadata.CurrentPage)
		assert.Equal(t, 12, res.Metadata.TotalItems)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks")).
			WillReturnError(errors.New("timeout"))

		_, err := postgres.NewTaskRepository(mock).List(ctx, 1, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error counting tasks")
	})
}

func TestTaskRepository_ListFiltered(t *testing.T) {
	ctx := testContext(t)
	task := sampleTask()

	mock := newMock(t)
	q := query.DefaultTaskQuery().WithStatus(entities.StatusInProgress)
	q.Search = "50%_off"
	q.Sort = query.ByPriority(query.Ascending)
	q.PageSize = 10

	where := " WHERE status = $1 AND (title ILIKE $2 OR description ILIKE $2)"
	pattern := `%50\%\_off%`

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks"+where)).
		WithArgs("ONGOING", pattern).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(where+" ORDER BY priority_order ASC, created_at DESC, id ASC LIMIT $3 OFFSET $4")).
		WithArgs("ONGOING", pattern, 10, 0).
		WillReturnRows(taskRow(pgxmock.NewRows(taskCols), task))

	res, err := postgres.NewTaskRepository(mock).ListFiltered(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []entities.Task{task}, res.Items)
	assert.Equal(t, 1, res.Metadata.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)
	f := postgres.NewRepositoryFactory(mock)
	assert.NotNil(t, f.TaskRepository())
	assert.NotNil(t, f.UserRepository())
}
