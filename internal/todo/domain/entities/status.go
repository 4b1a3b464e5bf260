package entities

import "strings"

// Status is the workflow state of a task. Any status may follow any other.
type Status string

// Statuses in sort order.
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "ONGOING"
	StatusDone       Status = "DONE"
)

// SortOrder returns the fixed ordering index: todo=0, in progress=1, done=2.
func (s Status) SortOrder() int {
	switch s {
	case StatusTodo:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return 3
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts the stored value or a common alias, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch normalize(s) {
	case "todo":
		return StatusTodo, nil
	case "ongoing", "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Priority is the severity of a task.
type Priority string

// Priorities from least to most severe.
const (
	PriorityLow      Priority = "LOW"
	PriorityNormal   Priority = "NORMAL"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// DefaultPriority is assigned when none is given.
const DefaultPriority = PriorityNormal

// SortOrder returns the ordering index; higher severity sorts first
// (critical=0, high=1, normal=2, low=3).
func (p Priority) SortOrder() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityNormal:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p.SortOrder() < 4
}

func (p Priority) String() string {
	return string(p)
}

// ParsePriority accepts the stored value case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch normalize(s) {
	case "low":
		return PriorityLow, nil
	case "normal", "medium":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	default:
		return "", ErrInvalidPriority
	}
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
