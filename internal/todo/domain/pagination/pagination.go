// Package pagination slices ordered result sets into pages.
package pagination

// Metadata describes one page of a larger result set.
type Metadata struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// NewMetadata computes TotalPages as ceil(total/size), or 0 when either is
// not positive. The requested page is echoed back without clamping.
func NewMetadata(page, size, total int) Metadata {
	pages := 0
	if size > 0 && total > 0 {
		pages = (total + size - 1) / size
	}

	return Metadata{
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  pages,
	}
}

// Result is a page of items plus its metadata. Items is never nil.
type Result[T any] struct {
	Items    []T      `json:"items"`
	Metadata Metadata `json:"metadata"`
}

// Empty reports whether the page carries no items.
func (r Result[T]) Empty() bool {
	return len(r.Items) == 0
}

// NewResult wraps an already sliced page.
func NewResult[T any](items []T, page, size, total int) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Metadata: NewMetadata(page, size, total)}
}

// Offset returns the index of the first item on page. ok is false when the
// page lies outside [1, TotalPages].
func Offset(page, size, total int) (offset int, ok bool) {
	meta := NewMetadata(page, size, total)
	if page <= 0 || page > meta.TotalPages {
		return 0, false
	}
	return (page - 1) * size, true
}

// Paginate returns the requested page of sorted. Out-of-range pages yield an
// empty page whose metadata still reports the true totals.
func Paginate[T any](sorted []T, page, size int) Result[T] {
	total := len(sorted)

	start, ok := Offset(page, size, total)
	if !ok {
		return NewResult[T](nil, page, size, total)
	}

	end := min(start+size, total)
	items := make([]T, end-start)
	copy(items, sorted[start:end])

	return NewResult(items, page, size, total)
}

// Map converts the items of r, keeping its metadata.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	items := make([]U, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}
	return Result[U]{Items: items, Metadata: r.Metadata}
}
