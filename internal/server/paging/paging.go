// Package paging normalizes page requests and shapes paged results for
// note listing and search.
package paging

import "strings"

const (
	DefaultSize = 10
	MaxSize     = 100

	// maxPage keeps Offset far from integer overflow.
	maxPage = 1 << 30
)

// Window is a normalized page request together with its offset/limit.
type Window struct {
	Page   int
	Size   int
	Offset int
	Limit  int
}

// Normalize clamps page to 0..2^30 and size to 1..MaxSize (DefaultSize when
// size is not positive).
func Normalize(page, size int) Window {
	switch {
	case page < 0:
		page = 0
	case page > maxPage:
		page = maxPage
	}
	switch {
	case size <= 0:
		size = DefaultSize
	case size > MaxSize:
		size = MaxSize
	}
	return Window{Page: page, Size: size, Offset: page * size, Limit: size}
}

// NormalizeQuery trims q and reports whether it selects search mode.
// A blank query means "list everything the owner has".
func NormalizeQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, q != ""
}

// Page is one slice of a larger ordered result.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// NewPage builds a Page for w from items and the overall total.
func NewPage[T any](items []T, w Window, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 {
		pages = int((total + int64(w.Size) - 1) / int64(w.Size))
	}
	return Page[T]{Items: items, Page: w.Page, Size: w.Size, TotalItems: total, TotalPages: pages}
}

// Matches is the substring search predicate: case-insensitive containment
// of query in title or content.
func Matches(query, title, content string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(title), q) || strings.Contains(strings.ToLower(content), q)
}

// EscapeLike escapes LIKE/ILIKE metacharacters so query matches literally
// with the default backslash escape character.
func EscapeLike(query string) string {
	return likeEscaper.Replace(query)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
