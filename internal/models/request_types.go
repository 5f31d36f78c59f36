package models

import "strings"

// SortDirection is the direction a paginated listing is ordered in.
type SortDirection string

const (
	SortAscending  SortDirection = "Ascending"
	SortDescending SortDirection = "Descending"
)

const (
	DefaultPage    = 1
	DefaultResults = 10
	MaxPage        = 1000
	MaxResults     = 1000
)

// PaginatedRequest is the paging and sorting input shared by list endpoints.
type PaginatedRequest struct {
	Page      int           `json:"page" form:"page" binding:"omitempty,min=1,max=1000"`
	Results   int           `json:"results" form:"results" binding:"omitempty,min=1,max=1000"`
	OrderBy   string        `json:"orderBy" form:"orderBy"`
	Direction SortDirection `json:"direction" form:"direction"`
}

// Normalize fills in defaults and clamps out-of-range values.
func (r PaginatedRequest) Normalize() PaginatedRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Results < 1 {
		r.Results = DefaultResults
	}
	if r.Results > MaxResults {
		r.Results = MaxResults
	}
	r.Direction = ParseSortDirection(string(r.Direction))
	return r
}

// Offset is the number of rows to skip for the requested page.
func (r PaginatedRequest) Offset() int {
	n := r.Normalize()
	return (n.Page - 1) * n.Results
}

// OrderColumn resolves OrderBy against a whitelist, falling back to def.
func (r PaginatedRequest) OrderColumn(whitelist map[string]string, def string) string {
	if col, ok := whitelist[r.OrderBy]; ok {
		return col
	}
	return def
}

// ParseSortDirection accepts "asc", "ascending", "desc", "descending" in any case.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return SortDescending
	default:
		return SortAscending
	}
}

// SQL returns the ORDER BY keyword for the direction.
func (d SortDirection) SQL() string {
	if d == SortDescending {
		return "DESC"
	}
	return "ASC"
}

// SearchResult wraps a matched record with its relevance rank.
type SearchResult[T any] struct {
	Result T   `json:"result"`
	Rank   int `json:"rank"`
}
