// Package page computes pagination windows and metadata.
package page

import (
	"math"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/search/params"
)

// Defaults used when the caller does not configure them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Window is a validated skip/limit pair.
type Window struct {
	page  int
	limit int
}

// NewWindow rejects non-positive page or limit and clamps limit to maxLimit.
// A page whose skip would not fit in an int64 is rejected too.
func NewWindow(page, limit, maxLimit int) (Window, error) {
	var errs domain.ValidationError
	if page < 1 {
		errs.Add("page", "must be a positive integer")
	}
	if limit < 1 {
		errs.Add("limit", "must be a positive integer")
	}
	if err := errs.OrNil(); err != nil {
		return Window{}, err
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		errs.Add("page", "is too large")
		return Window{}, errs.OrNil()
	}
	return Window{page: page, limit: limit}, nil
}

// First returns the first page of size limit.
func First(limit int) Window {
	if limit < 1 {
		limit = DefaultLimit
	}
	return Window{page: 1, limit: limit}
}

// Parse reads page and limit, applying defaults only when absent.
func Parse(v params.Values, defaultLimit, maxLimit int) (Window, error) {
	var errs domain.ValidationError
	p, err := v.IntOr("page", DefaultPage)
	errs.Merge(err)
	l, err := v.IntOr("limit", defaultLimit)
	errs.Merge(err)
	if err := errs.OrNil(); err != nil {
		return Window{}, err
	}
	return NewWindow(p, l, maxLimit)
}

// Page returns the 1-based page number.
func (w Window) Page() int { return w.page }

// Limit returns the page size.
func (w Window) Limit() int { return w.limit }

// Skip returns the number of records before this page.
func (w Window) Skip() int64 { return int64(w.page-1) * int64(w.limit) }

// Meta is the pagination block of a list response.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int64 `json:"total_pages"`
	Total       int64 `json:"total_restaurants"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewMeta computes total_pages = ceil(total/limit) and the navigation flags.
func NewMeta(w Window, total int64) Meta {
	limit := int64(w.limit)
	if limit < 1 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	return Meta{
		CurrentPage: w.page,
		TotalPages:  pages,
		Total:       total,
		PerPage:     w.limit,
		HasNext:     int64(w.page) < pages,
		HasPrevious: w.page > 1,
	}
}
