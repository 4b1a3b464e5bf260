// Package query composes filtering, search, sorting and pagination over tasks and users.
package query

import (
	"strings"

	"gotodo/internal/todo/domain/entities"
)

// SortOrder is the direction of a sort. The zero value is Descending.
type SortOrder int

// Sort directions.
const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortOrder maps "asc"/"desc" (and their long forms) to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Descending, entities.ErrInvalidSortCriteria
	}
}

// TaskSortKey selects the field tasks are ordered by.
type TaskSortKey int

// Task sort keys. The zero value sorts by creation date.
const (
	SortByCreationDate TaskSortKey = iota
	SortByTitle
	SortByStatus
	SortByPriority
)

var taskSortKeyNames = map[TaskSortKey]string{
	SortByCreationDate: "created_at",
	SortByTitle:        "title",
	SortByStatus:       "status",
	SortByPriority:     "priority",
}

func (k TaskSortKey) String() string {
	return taskSortKeyNames[k]
}

// TaskSort is a sort key plus direction. The zero value is DefaultTaskSort.
type TaskSort struct {
	Key   TaskSortKey
	Order SortOrder
}

// ByCreationDate orders tasks by creation time.
func ByCreationDate(o SortOrder) TaskSort { return TaskSort{Key: SortByCreationDate, Order: o} }

// ByTitle orders tasks by title using locale-aware comparison.
func ByTitle(o SortOrder) TaskSort { return TaskSort{Key: SortByTitle, Order: o} }

// ByStatus orders tasks todo, in progress, done; newest first within a status.
func ByStatus() TaskSort { return TaskSort{Key: SortByStatus, Order: Ascending} }

// ByPriority orders tasks by severity. Ascending puts critical first.
// Newest first within a priority.
func ByPriority(o SortOrder) TaskSort { return TaskSort{Key: SortByPriority, Order: o} }

// DefaultTaskSort is newest first.
var DefaultTaskSort = ByCreationDate(Descending)

// ParseTaskSort builds a TaskSort from transport values. An empty key means
// creation date; an empty order yields the key's natural direction.
func ParseTaskSort(key, order string) (TaskSort, error) {
	var k TaskSortKey
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "created_at", "createdat", "creation_date", "date":
		k = SortByCreationDate
	case "title":
		k = SortByTitle
	case "status":
		return ByStatus(), nil
	case "priority":
		k = SortByPriority
	default:
		return TaskSort{}, entities.ErrInvalidSortCriteria
	}

	o := Descending
	if k == SortByTitle || k == SortByPriority {
		o = Ascending
	}
	if strings.TrimSpace(order) != "" {
		var err error
		if o, err = ParseSortOrder(order); err != nil {
			return TaskSort{}, err
		}
	}

	return TaskSort{Key: k, Order: o}, nil
}

// UserSortKey selects the field users are ordered by.
type UserSortKey int

// User sort keys. The zero value sorts by name.
const (
	SortByName UserSortKey = iota
	SortUsersByCreationDate
)

// UserSort is a user sort key plus direction.
type UserSort struct {
	Key   UserSortKey
	Order SortOrder
}

// UsersByName orders users by name using locale-aware comparison.
func UsersByName(o SortOrder) UserSort { return UserSort{Key: SortByName, Order: o} }

// UsersByCreationDate orders users by registration time.
func UsersByCreationDate(o SortOrder) UserSort {
	return UserSort{Key: SortUsersByCreationDate, Order: o}
}

// DefaultUserSort is by name, A to Z.
var DefaultUserSort = UsersByName(Ascending)

// ParseUserSort builds a UserSort from transport values.
func ParseUserSort(key, order string) (UserSort, error) {
	var s UserSort
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "name":
		s = DefaultUserSort
	case "created_at", "createdat", "creation_date", "date":
		s = UsersByCreationDate(Descending)
	default:
		return UserSort{}, entities.ErrInvalidSortCriteria
	}

	if strings.TrimSpace(order) != "" {
		o, err := ParseSortOrder(order)
		if err != nil {
			return UserSort{}, err
		}
		s.Order = o
	}
	return s, nil
}
