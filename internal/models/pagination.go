package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize fills defaults and clamps the limit.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination describes a page of results.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count for total rows.
func NewPagination(p Page, total int64) Pagination {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}
