package models

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams carries the pagination, search, and sort parameters shared by
// every list endpoint. SortBy must be validated against a per-entity column
// whitelist before reaching SQL.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	Desc     bool
}

// Offset returns the SQL offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Normalize clamps page and page size into their allowed ranges.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Page wraps a single page of list results together with the total row count.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}
