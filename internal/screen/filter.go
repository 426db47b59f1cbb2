package screen

import "strings"

// Searchable records expose the texts a list search matches against.
type Searchable interface {
	SearchFields() []string
}

// Filter keeps items where any search field contains query, ignoring case.
// An empty query keeps everything.
func Filter[T Searchable](items []T, query string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if q == "" || matches(it.SearchFields(), q) {
			out = append(out, it)
		}
	}
	return out
}

func matches(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
