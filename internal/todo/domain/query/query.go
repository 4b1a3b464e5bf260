package query

import "gotodo/internal/todo/domain/entities"

// Default paging values.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

// TaskQuery configures a filtered task listing. Nil filters and a blank
// Search match everything.
type TaskQuery struct {
	Sort     TaskSort
	Status   *entities.Status
	Priority *entities.Priority
	Search   string
	Page     int
	PageSize int
}

// DefaultTaskQuery returns newest-first, page 1 of 20, unfiltered.
func DefaultTaskQuery() TaskQuery {
	return TaskQuery{
		Sort:     DefaultTaskSort,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// WithStatus returns a copy filtered to status s.
func (q TaskQuery) WithStatus(s entities.Status) TaskQuery {
	q.Status = &s
	return q
}

// WithPriority returns a copy filtered to priority p.
func (q TaskQuery) WithPriority(p entities.Priority) TaskQuery {
	q.Priority = &p
	return q
}

// Filtered reports whether any filter or search term is set.
func (q TaskQuery) Filtered() bool {
	return q.Status != nil || q.Priority != nil || normalizeSearch(q.Search) != ""
}

// UserQuery configures a user listing.
type UserQuery struct {
	Sort     UserSort
	Page     int
	PageSize int
}

// DefaultUserQuery returns name ascending, page 1 of 20.
func DefaultUserQuery() UserQuery {
	return UserQuery{
		Sort:     DefaultUserSort,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}
