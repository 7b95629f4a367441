package model

import (
	"strconv"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/validation"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 3
	MaxLimit      = 100
)

// Page is a validated offset/limit window.
type Page struct {
	Offset int
	Limit  int
}

// NextOffset is where the following page starts.
func (p Page) NextOffset() int {
	return p.Offset + p.Limit
}

// PageQuery binds ?offset=&limit=.
//
// The raw strings are bound so a non-integer value is reported with the
// pagination message instead of a generic bind failure.
type PageQuery struct {
	Offset string `query:"offset"`
	Limit  string `query:"limit"`

	page Page
}

// Validate parses both values, applying defaults for absent ones.
func (q *PageQuery) Validate() error {
	page := Page{Offset: DefaultOffset, Limit: DefaultLimit}
	var failed validation.CustomValidationErrors

	if q.Offset != "" {
		offset, err := strconv.Atoi(q.Offset)
		if err != nil || offset < 0 {
			failed = append(failed, validation.CustomValidationError{Field: "offset", Message: errs.MsgInvalidPagination})
		}
		page.Offset = offset
	}

	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 1 || limit > MaxLimit {
			failed = append(failed, validation.CustomValidationError{Field: "limit", Message: errs.MsgInvalidPagination})
		}
		page.Limit = limit
	}

	if len(failed) > 0 {
		return failed
	}

	q.page = page
	return nil
}

// Page returns the window parsed by Validate.
func (q *PageQuery) Page() Page {
	return q.page
}

// PageResult is one window of a listing. HasMore is set when at least
// one row exists past the window.
type PageResult[T any] struct {
	Items   []T
	HasMore bool
}

// NewPageResult trims rows fetched with a limit+1 probe down to the page.
func NewPageResult[T any](rows []T, page Page) PageResult[T] {
	if len(rows) > page.Limit {
		return PageResult[T]{Items: rows[:page.Limit], HasMore: true}
	}
	return PageResult[T]{Items: rows}
}

// PaginatedResponse is the listing body. Next is omitted on the last page.
type PaginatedResponse[T any] struct {
	Entries []T    `json:"entries"`
	Next    string `json:"next,omitempty"`
}
