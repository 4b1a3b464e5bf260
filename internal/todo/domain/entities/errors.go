// Package entities defines the Task and User value types and their validation rules.
package entities

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title is too long")
	ErrDescriptionTooLong  = errors.New("description is too long")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name is too long")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidSortCriteria = errors.New("invalid sort criteria")
)

// Lookup errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// LengthError reports a field whose character count exceeds its limit.
type LengthError struct {
	Err   error
	Count int
	Max   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: %d characters, max %d", e.Err, e.Count, e.Max)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// TaskNotFoundError carries the id of the missing task.
type TaskNotFoundError struct {
	ID uuid.UUID
}

// NewTaskNotFoundError returns the error repositories use for a missing id.
func NewTaskNotFoundError(id uuid.UUID) error {
	return &TaskNotFoundError{ID: id}
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTaskNotFound, e.ID)
}

func (e *TaskNotFoundError) Unwrap() error {
	return ErrTaskNotFound
}
