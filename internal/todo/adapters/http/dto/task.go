// Package dto holds the JSON bodies of the todo HTTP API.
package dto

import (
	"time"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
)

// CreateTaskRequest is the body of POST /tasks. Priority is optional.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the body of PUT /tasks/:task_id.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ChangeStatusRequest is the body of PATCH /tasks/:task_id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ChangePriorityRequest is the body of PATCH /tasks/:task_id/priority.
type ChangePriorityRequest struct {
	Priority string `json:"priority"`
}

// SetDueDateRequest is the body of PATCH /tasks/:task_id/due-date.
// A null or missing due_date clears it.
type SetDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// Task is a task as rendered by the API.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

// TaskList is one page of tasks.
type TaskList struct {
	Items    []Task              `json:"items"`
	Metadata pagination.Metadata `json:"metadata"`
}

func FromTask(t entities.Task) Task {
	return Task{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
	}
}

func FromTaskPage(r pagination.Result[entities.Task]) TaskList {
	page := pagination.Map(r, FromTask)
	return TaskList{Items: page.Items, Metadata: page.Metadata}
}
