package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         Params
	}{
		{"defaults for zero values", 0, 0, Params{1, DefaultPageSize}},
		{"negative page number", -3, 10, Params{1, 10}},
		{"negative page size", 2, -1, Params{2, DefaultPageSize}},
		{"page size capped", 1, 500, Params{1, MaxPageSize}},
		{"page size at maximum", 4, MaxPageSize, Params{4, MaxPageSize}},
		{"valid values kept", 3, 7, Params{3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewParams(tt.number, tt.size))
		})
	}
}

func TestNewParams_Idempotent(t *testing.T) {
	p := NewParams(-1, 1000)
	assert.Equal(t, p, NewParams(p.PageNumber, p.PageSize))
}

func TestParseParams(t *testing.T) {
	assert.Equal(t, Params{1, DefaultPageSize}, ParseParams("", ""))
	assert.Equal(t, Params{1, DefaultPageSize}, ParseParams("abc", "1.5"))
	assert.Equal(t, Params{2, 4}, ParseParams("2", "4"))
	assert.Equal(t, Params{1, MaxPageSize}, ParseParams("0", "51"))
}

func TestParams_OffsetLimit(t *testing.T) {
	p := NewParams(3, 4)
	assert.Equal(t, 8, p.Offset())
	assert.Equal(t, 4, p.Limit())
	assert.Equal(t, 0, NewParams(1, 5).Offset())
}

func TestNew_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, pages int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 4, 3},
		{100, 50, 2},
	}

	for _, tt := range tests {
		l := New([]int{}, NewParams(1, tt.size), tt.total)
		assert.Equal(t, tt.pages, l.TotalPages, "total=%d size=%d", tt.total, tt.size)
	}
}

// pageOf cuts a page out of items the way a repository would with Offset and Limit.
func pageOf[T any](items []T, params Params) PagedList[T] {
	start := min(params.Offset(), len(items))
	end := min(start+params.Limit(), len(items))
	return New(items[start:end], params, len(items))
}

func TestPagedList_Navigation(t *testing.T) {
	items := make([]int, 10)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("First page", func(t *testing.T) {
		l := pageOf(items, NewParams(1, 4))
		assert.Equal(t, []int{1, 2, 3, 4}, l.Items)
		assert.False(t, l.HasPrevious())
		assert.True(t, l.HasNext())

		_, ok := l.PreviousPage()
		assert.False(t, ok)
		next, ok := l.NextPage()
		require.True(t, ok)
		assert.Equal(t, Params{2, 4}, next)
	})

	t.Run("Middle page", func(t *testing.T) {
		l := pageOf(items, NewParams(2, 4))
		assert.Equal(t, []int{5, 6, 7, 8}, l.Items)
		assert.True(t, l.HasPrevious())
		assert.True(t, l.HasNext())

		prev, ok := l.PreviousPage()
		require.True(t, ok)
		assert.Equal(t, Params{1, 4}, prev)
	})

	t.Run("Last page", func(t *testing.T) {
		l := pageOf(items, NewParams(3, 4))
		assert.Equal(t, []int{9, 10}, l.Items)
		assert.True(t, l.HasPrevious())
		assert.False(t, l.HasNext())
	})

	t.Run("Beyond the last page", func(t *testing.T) {
		l := pageOf(items, NewParams(9, 4))
		assert.True(t, l.Empty())
		assert.Equal(t, 10, l.TotalCount)
		assert.False(t, l.HasNext())
		assert.True(t, l.HasPrevious())
	})

	t.Run("Empty source", func(t *testing.T) {
		l := pageOf([]int(nil), NewParams(1, 5))
		assert.NotNil(t, l.Items)
		assert.Equal(t, 0, l.TotalPages)
		assert.False(t, l.HasNext())
		assert.False(t, l.HasPrevious())
	})
}

func TestMap(t *testing.T) {
	l := pageOf([]int{1, 2, 3}, NewParams(1, 2))
	mapped := Map(l, func(i int) string { return string(rune('a' + i - 1)) })

	assert.Equal(t, []string{"a", "b"}, mapped.Items)
	assert.Equal(t, l.TotalPages, mapped.TotalPages)
	assert.Equal(t, l.CurrentPage, mapped.CurrentPage)
	assert.Equal(t, l.TotalCount, mapped.TotalCount)
}
