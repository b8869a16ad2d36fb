// Package pagination slices ordered collections into pages.
//
// Page parameters are never rejected: a missing or non-positive page
// number falls back to 1, a missing or non-positive page size falls back
// to DefaultPageSize and anything above MaxPageSize is capped.
package pagination

import (
	"math"
	"strconv"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 5
	MaxPageSize       = 50
)

// Params is a clamped page request.
type Params struct {
	PageNumber int
	PageSize   int
}

func NewParams(pageNumber, pageSize int) Params {
	if pageNumber <= 0 {
		pageNumber = DefaultPageNumber
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{PageNumber: pageNumber, PageSize: pageSize}
}

// ParseParams reads raw query values; unparsable input counts as absent.
func ParseParams(pageNumber, pageSize string) Params {
	return NewParams(atoi(pageNumber), atoi(pageSize))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (p Params) Offset() int { return (p.PageNumber - 1) * p.PageSize }

func (p Params) Limit() int { return p.PageSize }

// PagedList is one page of an ordered collection.
type PagedList[T any] struct {
	Items       []T
	CurrentPage int
	PageSize    int
	TotalCount  int
	TotalPages  int
}

func New[T any](items []T, params Params, totalCount int) PagedList[T] {
	if items == nil {
		items = []T{}
	}
	return PagedList[T]{
		Items:       items,
		CurrentPage: params.PageNumber,
		PageSize:    params.PageSize,
		TotalCount:  totalCount,
		TotalPages:  int(math.Ceil(float64(totalCount) / float64(params.PageSize))),
	}
}

func (l PagedList[T]) HasPrevious() bool { return l.CurrentPage > 1 }

func (l PagedList[T]) HasNext() bool { return l.CurrentPage < l.TotalPages }

func (l PagedList[T]) Empty() bool { return len(l.Items) == 0 }

// PreviousPage returns the params of the page before this one.
func (l PagedList[T]) PreviousPage() (Params, bool) {
	if !l.HasPrevious() {
		return Params{}, false
	}
	return Params{PageNumber: l.CurrentPage - 1, PageSize: l.PageSize}, true
}

// NextPage returns the params of the page after this one.
func (l PagedList[T]) NextPage() (Params, bool) {
	if !l.HasNext() {
		return Params{}, false
	}
	return Params{PageNumber: l.CurrentPage + 1, PageSize: l.PageSize}, true
}

// Map converts the items of a page, keeping its metadata.
func Map[T, U any](l PagedList[T], f func(T) U) PagedList[U] {
	out := make([]U, 0, len(l.Items))
	for _, item := range l.Items {
		out = append(out, f(item))
	}
	return PagedList[U]{
		Items:       out,
		CurrentPage: l.CurrentPage,
		PageSize:    l.PageSize,
		TotalCount:  l.TotalCount,
		TotalPages:  l.TotalPages,
	}
}
