// internal/domain/page.go
package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one window of a list of Total items.
type Page struct {
	Number   int64
	Size     int64
	Total    int64
	LastPage int64
	Start    int64
	End      int64
}

// Paginate clamps page and size and returns the [Start, End) bounds within
// total. A page past the end yields an empty window.
func Paginate(total, page, size int64) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	if total < 0 {
		total = 0
	}
	p := Page{Number: page, Size: size, Total: total, LastPage: (total + size - 1) / size}
	if page-1 >= p.LastPage {
		p.Start, p.End = total, total
		return p
	}
	p.Start = (page - 1) * size
	p.End = p.Start + min(size, total-p.Start)
	return p
}
