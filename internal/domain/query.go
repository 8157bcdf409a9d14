package domain

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page to valid bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Size
}

// Sort is a key and direction. Keys are checked against a whitelist before
// reaching SQL.
type Sort struct {
	Key       string
	Ascending bool
}

// ParseSortDirection accepts asc/ascending and desc/descending.
func ParseSortDirection(s string, fallback bool) bool {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return true
	case "desc", "descending":
		return false
	default:
		return fallback
	}
}

// OrderBy resolves the sort against columns, falling back to def.
func (s Sort) OrderBy(columns map[string]string, def string) string {
	col, ok := columns[s.Key]
	if !ok {
		col = def
	}
	if s.Ascending {
		return col + " ASC"
	}
	return col + " DESC"
}
