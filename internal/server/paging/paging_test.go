package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       Window
	}{
		{"defaults", 0, 0, Window{Page: 0, Size: DefaultSize, Offset: 0, Limit: DefaultSize}},
		{"negative page", -3, 5, Window{Page: 0, Size: 5, Offset: 0, Limit: 5}},
		{"negative size", 2, -1, Window{Page: 2, Size: DefaultSize, Offset: 20, Limit: DefaultSize}},
		{"size capped", 1, 1000, Window{Page: 1, Size: MaxSize, Offset: MaxSize, Limit: MaxSize}},
		{"regular", 3, 7, Window{Page: 3, Size: 7, Offset: 21, Limit: 7}},
		{"size one", 4, 1, Window{Page: 4, Size: 1, Offset: 4, Limit: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.page, tt.size))
		})
	}
}

func TestNormalizeQuery(t *testing.T) {
	q, search := NormalizeQuery("  groceries \t")
	assert.Equal(t, "groceries", q)
	assert.True(t, search)

	for _, blank := range []string{"", " ", "\n\t "} {
		q, search := NormalizeQuery(blank)
		assert.Empty(t, q)
		assert.False(t, search)
	}
}

func TestNewPage(t *testing.T) {
	w := Normalize(1, 3)

	p := NewPage([]int{4, 5, 6}, w, 7)
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 3, p.Size)
	assert.Equal(t, int64(7), p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPage[int](nil, w, 0)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	exact := NewPage([]int{1, 2, 3}, Normalize(0, 3), 6)
	assert.Equal(t, 2, exact.TotalPages)
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("milk", "Buy MILK", ""))
	assert.True(t, Matches("MiLk", "", "oat milk please"))
	assert.False(t, Matches("bread", "Buy milk", "and eggs"))
	assert.True(t, Matches("", "anything", ""))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike(`100%`))
	assert.Equal(t, `a\_b`, EscapeLike(`a_b`))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, `plain`, EscapeLike(`plain`))
}

func TestNormalize_HugePageDoesNotOverflow(t *testing.T) {
	w := Normalize(int(^uint(0)>>1), MaxSize)
	assert.Equal(t, maxPage, w.Page)
	assert.Positive(t, w.Offset)
}
