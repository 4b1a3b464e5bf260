package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	todohttp "gotodo/internal/todo/adapters/http"
	"gotodo/internal/todo/adapters/http/dto"
	"gotodo/internal/todo/adapters/http/middleware"
	"gotodo/internal/todo/adapters/memory"
	"gotodo/internal/todo/app"
)

func tickingClock() app.Clock {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newApp(t *testing.T, health todohttp.HealthCheck) *fiber.App {
	t.Helper()

	clock := app.WithClock(tickingClock())
	a := fiber.New()
	todohttp.SetupRouter(a, todohttp.Deps{
		Tasks:           app.NewTaskUseCase(memory.NewTaskRepository(nil), clock),
		Users:           app.NewUserUseCase(memory.NewUserRepository(nil), clock),
		Health:          health,
		DefaultPageSize: 2,
	})
	return a
}

func do(t *testing.T, a *fiber.App, method, target string, body any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			r = strings.NewReader(s)
		} else {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTask(t *testing.T, a *fiber.App, title string) dto.Task {
	t.Helper()
	resp := do(t, a, fiber.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{Title: title})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.Task](t, resp)
}

func TestTaskLifecycle(t *testing.T) {
	a := newApp(t, nil)

	resp := do(t, a, fiber.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
		Title:       " Buy milk ",
		Description: "2 litres",
		Priority:    "high",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	created := decode[dto.Task](t, resp)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "TODO", created.Status)
	assert.Equal(t, "HIGH", created.Priority)

	path := "/api/v1/tasks/" + created.ID

	resp = do(t, a, fiber.MethodGet, path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[dto.Task](t, resp))

	resp = do(t, a, fiber.MethodPut, path, dto.UpdateTaskRequest{Title: "Buy oat milk"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Buy oat milk", decode[dto.Task](t, resp).Title)

	resp = do(t, a, fiber.MethodPatch, path+"/status", dto.ChangeStatusRequest{Status: "in_progress"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ONGOING", decode[dto.Task](t, resp).Status)

	resp = do(t, a, fiber.MethodPatch, path+"/priority", dto.ChangePriorityRequest{Priority: "critical"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "CRITICAL", decode[dto.Task](t, resp).Priority)

	due := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	resp = do(t, a, fiber.MethodPatch, path+"/due-date", dto.SetDueDateRequest{DueDate: &due})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.Task](t, resp)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))

	resp = do(t, a, fiber.MethodPatch, path+"/due-date", `{"due_date":null}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[dto.Task](t, resp).DueDate)

	resp = do(t, a, fiber.MethodDelete, path, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, a, fiber.MethodGet, path, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTaskErrors(t *testing.T) {
	a := newApp(t, nil)
	existing := createTask(t, a, "exists")

	tests := []struct {
		name   string
		method string
		target string
		body   any
		status int
	}{
		{"empty title", fiber.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{Title: "  "}, fiber.StatusBadRequest},
		{"title too long", fiber.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{Title: strings.Repeat("a", 101)}, fiber.StatusBadRequest},
		{"unknown priority", fiber.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{Title: "x", Priority: "urgent"}, fiber.StatusBadRequest},
		{"malformed body", fiber.MethodPost, "/api/v1/tasks", `{"title":`, fiber.StatusBadRequest},
		{"malformed id", fiber.MethodGet, "/api/v1/tasks/not-a-uuid", nil, fiber.StatusBadRequest},
		{"unknown id", fiber.MethodGet, "/api/v1/tasks/" + uuid.NewString(), nil, fiber.StatusNotFound},
		{"delete unknown", fiber.MethodDelete, "/api/v1/tasks/" + uuid.NewString(), nil, fiber.StatusNotFound},
		{"unknown status", fiber.MethodPatch, "/api/v1/tasks/" + existing.ID + "/status", dto.ChangeStatusRequest{Status: "blocked"}, fiber.StatusBadRequest},
		{"update blank title", fiber.MethodPut, "/api/v1/tasks/" + existing.ID, dto.UpdateTaskRequest{Title: ""}, fiber.StatusBadRequest},
		{"bad sort", fiber.MethodGet, "/api/v1/tasks?sort=colour", nil, fiber.StatusBadRequest},
		{"bad order", fiber.MethodGet, "/api/v1/tasks?sort=title&order=sideways", nil, fiber.StatusBadRequest},
		{"bad status filter", fiber.MethodGet, "/api/v1/tasks?status=nope", nil, fiber.StatusBadRequest},
		{"non numeric page", fiber.MethodGet, "/api/v1/tasks?page=abc", nil, fiber.StatusBadRequest},
		{"zero page", fiber.MethodGet, "/api/v1/tasks?page=0", nil, fiber.StatusBadRequest},
		{"unknown route", fiber.MethodGet, "/api/v2/tasks", nil, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, a, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decode[dto.ErrorResponse](t, resp).Error)
		})
	}

	resp := do(t, a, fiber.MethodGet, "/api/v1/tasks/"+existing.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "exists", decode[dto.Task](t, resp).Title)
}

func TestListTasks(t *testing.T) {
	a := newApp(t, nil)
	banana := createTask(t, a, "banana")
	createTask(t, a, "Apple")
	cherry := createTask(t, a, "cherry")

	resp := do(t, a, fiber.MethodPatch, "/api/v1/tasks/"+banana.ID+"/status", dto.ChangeStatusRequest{Status: "done"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	t.Run("default page is newest first", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks", nil))
		require.Len(t, list.Items, 2)
		assert.Equal(t, cherry.ID, list.Items[0].ID)
		assert.Equal(t, 1, list.Metadata.CurrentPage)
		assert.Equal(t, 2, list.Metadata.PageSize)
		assert.Equal(t, 3, list.Metadata.TotalItems)
		assert.Equal(t, 2, list.Metadata.TotalPages)
	})

	t.Run("page past the end", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks?page=5", nil))
		assert.NotNil(t, list.Items)
		assert.Empty(t, list.Items)
		assert.Equal(t, 5, list.Metadata.CurrentPage)
	})

	t.Run("order without sort applies to creation date", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks?order=asc&page_size=10", nil))
		titles := make([]string, 0, len(list.Items))
		for _, item := range list.Items {
			titles = append(titles, item.Title)
		}
		assert.Equal(t, []string{"banana", "Apple", "cherry"}, titles)
	})

	t.Run("sorted by title", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks?sort=title&page_size=10", nil))
		titles := make([]string, 0, len(list.Items))
		for _, item := range list.Items {
			titles = append(titles, item.Title)
		}
		assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles)
	})

	t.Run("filtered by status", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks?status=DONE", nil))
		require.Len(t, list.Items, 1)
		assert.Equal(t, banana.ID, list.Items[0].ID)
	})

	t.Run("search", func(t *testing.T) {
		list := decode[dto.TaskList](t, do(t, a, fiber.MethodGet, "/api/v1/tasks?search=%20ERR%20", nil))
		require.Len(t, list.Items, 1)
		assert.Equal(t, cherry.ID, list.Items[0].ID)
	})
}

func TestUsers(t *testing.T) {
	a := newApp(t, nil)

	resp := do(t, a, fiber.MethodPost, "/api/v1/users", dto.CreateUserRequest{Name: "Zoé", Email: "zoe@example.com"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "zoe@example.com", decode[dto.User](t, resp).Email)

	resp = do(t, a, fiber.MethodPost, "/api/v1/users", dto.CreateUserRequest{Name: "Other", Email: "zoe@example.com"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = do(t, a, fiber.MethodPost, "/api/v1/users", dto.CreateUserRequest{Name: "Bad", Email: "not-an-email"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, a, fiber.MethodPost, "/api/v1/users", dto.CreateUserRequest{Name: "adam", Email: "adam@example.com"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	list := decode[dto.UserList](t, do(t, a, fiber.MethodGet, "/api/v1/users", nil))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "adam", list.Items[0].Name)
	assert.Equal(t, "Zoé", list.Items[1].Name)

	list = decode[dto.UserList](t, do(t, a, fiber.MethodGet, "/api/v1/users?sort=name&order=desc", nil))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Zoé", list.Items[0].Name)

	resp = do(t, a, fiber.MethodGet, "/api/v1/users?sort=age", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		a := newApp(t, func(context.Context) error { return nil })
		assert.Equal(t, fiber.StatusOK, do(t, a, fiber.MethodGet, "/healthz", nil).StatusCode)
	})

	t.Run("unhealthy", func(t *testing.T) {
		a := newApp(t, func(context.Context) error { return errors.New("db down") })
		assert.Equal(t, fiber.StatusServiceUnavailable, do(t, a, fiber.MethodGet, "/healthz", nil).StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		a := newApp(t, nil)
		createTask(t, a, "counted")

		resp := do(t, a, fiber.MethodGet, "/metrics", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "todo_http_requests_total")
	})
}
