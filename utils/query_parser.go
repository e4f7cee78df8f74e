package utils

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// TimeFilterParams holds parsed time filter parameters
type TimeFilterParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// ParseTimeFilters extracts and validates time filter query parameters from HTTP request
func ParseTimeFilters(r *http.Request) (*TimeFilterParams, error) {
	params := &TimeFilterParams{}

	if str := r.URL.Query().Get("start_date"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date format. Use RFC3339 (e.g., 2026-08-01T00:00:00Z)")
		}
		params.StartDate = &parsed
	}

	if str := r.URL.Query().Get("end_date"); str != "" {
		parsed, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date format. Use RFC3339 (e.g., 2026-08-31T23:59:59Z)")
		}
		params.EndDate = &parsed
	}

	return params, nil
}

// Pagination holds page-based pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads page/page_size query parameters with defaults of
// page 1 and 20 rows, capping page_size at 100.
func ParsePagination(r *http.Request) Pagination {
	p := Pagination{Page: 1, PageSize: 20}

	if str := r.URL.Query().Get("page"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			p.Page = v
		}
	}
	if str := r.URL.Query().Get("page_size"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			p.PageSize = v
		}
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// ParseLimitOffset reads optional limit/offset query parameters. Zero values
// mean "unset".
func ParseLimitOffset(r *http.Request) (limit, offset int) {
	if str := r.URL.Query().Get("limit"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			limit = v
		}
	}
	if str := r.URL.Query().Get("offset"); str != "" {
		if v, err := strconv.Atoi(str); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

// ParseIDParam reads a required positive integer query parameter.
func ParseIDParam(r *http.Request, name string) (int, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	id, err := strconv.Atoi(str)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
