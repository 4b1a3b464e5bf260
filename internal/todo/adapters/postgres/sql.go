package postgres

import (
	"fmt"
	"strings"

	"gotodo/internal/todo/domain/query"
)

const taskColumns = "id, title, description, created_at, due_date, status, priority"

// naturalCollation is created by migrations/todo/000003.
const naturalCollation = " COLLATE natural_ci "

// whereBuilder collects AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func taskWhere(q query.TaskQuery) *whereBuilder {
	w := &whereBuilder{}
	if q.Status != nil {
		w.add("status = ?", q.Status.String())
	}
	if q.Priority != nil {
		w.add("priority = ?", q.Priority.String())
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		w.add("(title ILIKE ? OR description ILIKE ?)", "%"+escapeLike(term)+"%")
	}
	return w
}

func taskOrderBy(s query.TaskSort) string {
	dir := direction(s.Order)
	switch s.Key {
	case query.SortByTitle:
		return " ORDER BY title" + naturalCollation + dir + ", created_at DESC, id ASC"
	case query.SortByStatus:
		return " ORDER BY status_order ASC, created_at DESC, id ASC"
	case query.SortByPriority:
		return " ORDER BY priority_order " + dir + ", created_at DESC, id ASC"
	default:
		return " ORDER BY created_at " + dir + ", id ASC"
	}
}

func userOrderBy(s query.UserSort) string {
	dir := direction(s.Order)
	if s.Key == query.SortUsersByCreationDate {
		return " ORDER BY created_at " + dir + ", email ASC"
	}
	return " ORDER BY name" + naturalCollation + dir + ", email ASC"
}

func direction(o query.SortOrder) string {
	if o == query.Ascending {
		return "ASC"
	}
	return "DESC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
