// Package page holds the pagination request and result shared by list operations.
package page

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Request is a 1-based page selection.
type Request struct {
	Page    int
	PerPage int
}

// Normalize fills in defaults and caps PerPage.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = 1
	}

	if r.PerPage < 1 {
		r.PerPage = DefaultPerPage
	}

	if r.PerPage > MaxPerPage {
		r.PerPage = MaxPerPage
	}

	return r
}

// Offset is the number of rows to skip for the request.
func (r Request) Offset() int {
	r = r.Normalize()
	return (r.Page - 1) * r.PerPage
}

// Info describes the page that was actually returned.
type Info struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewInfo computes page totals. A request past the last page is moved to the last page.
func NewInfo(r Request, total int) Info {
	r = r.Normalize()

	totalPages := (total + r.PerPage - 1) / r.PerPage
	if r.Page > totalPages && totalPages > 0 {
		r.Page = totalPages
	}

	return Info{
		Page:       r.Page,
		PerPage:    r.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Clamp returns the request adjusted to the last page for the given total.
func (r Request) Clamp(total int) Request {
	info := NewInfo(r, total)
	return Request{Page: info.Page, PerPage: info.PerPage}
}
