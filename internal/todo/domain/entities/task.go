package entities

import (
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item. Values are immutable from the caller's point of view:
// every With*/Updating method returns a modified copy.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
}

// NewTask validates the fields and builds a fresh task in the todo state.
// An empty priority means DefaultPriority.
func NewTask(title, description string, priority Priority, createdAt time.Time) (Task, error) {
	title, description, err := ValidateTaskFields(title, description)
	if err != nil {
		return Task{}, err
	}

	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.Valid() {
		return Task{}, ErrInvalidPriority
	}

	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   createdAt,
		Status:      StatusTodo,
		Priority:    priority,
	}, nil
}

// Updating returns a copy with a new title and description. Both fields are
// validated again; on failure t is returned unchanged alongside the error.
func (t Task) Updating(title, description string) (Task, error) {
	title, description, err := ValidateTaskFields(title, description)
	if err != nil {
		return t, err
	}

	t.Title = title
	t.Description = description
	return t.Clone(), nil
}

// WithStatus returns a copy with the given status.
func (t Task) WithStatus(s Status) Task {
	t.Status = s
	return t.Clone()
}

// WithPriority returns a copy with the given priority.
func (t Task) WithPriority(p Priority) Task {
	t.Priority = p
	return t.Clone()
}

// WithDueDate returns a copy with the given due date; nil clears it.
// Past dates are accepted.
func (t Task) WithDueDate(due *time.Time) Task {
	if due == nil {
		t.DueDate = nil
		return t
	}
	d := *due
	t.DueDate = &d
	return t
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
