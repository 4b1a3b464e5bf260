package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/pagination"
)

// Composer applies filters, search, sort and pagination in that order.
// It holds no mutable state and is safe for concurrent use.
type Composer struct {
	tag language.Tag
}

// NewComposer returns a Composer that compares titles and names using the
// collation rules of tag.
func NewComposer(tag language.Tag) *Composer {
	return &Composer{tag: tag}
}

// DefaultComposer uses the root collation.
func DefaultComposer() *Composer {
	return NewComposer(language.Und)
}

// collate.Collator is not safe for concurrent use, so each sort gets its own.
func (c *Composer) collator() *collate.Collator {
	return collate.New(c.tag, collate.Numeric, collate.IgnoreCase)
}

// FilterTasks keeps tasks that match the status, priority and search term of q.
func (c *Composer) FilterTasks(tasks []entities.Task, q TaskQuery) []entities.Task {
	term := normalizeSearch(q.Search)
	folder := cases.Fold()
	needle := folder.String(term)

	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Status != nil && t.Status != *q.Status {
			continue
		}
		if q.Priority != nil && t.Priority != *q.Priority {
			continue
		}
		if needle != "" &&
			!strings.Contains(folder.String(t.Title), needle) &&
			!strings.Contains(folder.String(t.Description), needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortTasks orders tasks in place according to s. Ties are broken by
// creation date (newest first) and finally by id so the order is total.
func (c *Composer) SortTasks(tasks []entities.Task, s TaskSort) {
	col := c.collator()

	slices.SortFunc(tasks, func(a, b entities.Task) int {
		var r int
		switch s.Key {
		case SortByTitle:
			r = directed(col.CompareString(a.Title, b.Title), s.Order)
		case SortByStatus:
			// status always runs todo, in progress, done
			r = cmp.Compare(a.Status.SortOrder(), b.Status.SortOrder())
		case SortByPriority:
			r = directed(cmp.Compare(a.Priority.SortOrder(), b.Priority.SortOrder()), s.Order)
		case SortByCreationDate:
			r = directed(a.CreatedAt.Compare(b.CreatedAt), s.Order)
		}
		if r != 0 {
			return r
		}
		if s.Key != SortByCreationDate {
			if r = b.CreatedAt.Compare(a.CreatedAt); r != 0 {
				return r
			}
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

// Tasks filters, sorts and paginates all. The input slice is not modified.
func (c *Composer) Tasks(all []entities.Task, q TaskQuery) pagination.Result[entities.Task] {
	filtered := c.FilterTasks(all, q)
	c.SortTasks(filtered, q.Sort)
	return pagination.Paginate(filtered, q.Page, q.PageSize)
}

// SortUsers orders users in place according to s.
func (c *Composer) SortUsers(users []entities.User, s UserSort) {
	col := c.collator()

	slices.SortFunc(users, func(a, b entities.User) int {
		var r int
		switch s.Key {
		case SortByName:
			r = directed(col.CompareString(a.Name, b.Name), s.Order)
		case SortUsersByCreationDate:
			r = directed(a.CreatedAt.Compare(b.CreatedAt), s.Order)
		}
		if r != 0 {
			return r
		}
		return strings.Compare(a.Email, b.Email)
	})
}

// Users sorts and paginates all. The input slice is not modified.
func (c *Composer) Users(all []entities.User, q UserQuery) pagination.Result[entities.User] {
	sorted := slices.Clone(all)
	c.SortUsers(sorted, q.Sort)
	return pagination.Paginate(sorted, q.Page, q.PageSize)
}

func directed(r int, o SortOrder) int {
	if o == Descending {
		return -r
	}
	return r
}

func normalizeSearch(s string) string {
	return strings.TrimSpace(s)
}
