// Package search implements the free-text filter shared by every
// resource list endpoint. Matching is a pure function of the query and
// the record's searchable fields so list handlers stay deterministic.
package search

import "strings"

// Matches reports whether any of the fields contains query as a
// case-insensitive substring. An empty or whitespace-only query matches
// everything.
func Matches(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the items whose searchable fields match query. The
// input slice is never mutated; fieldsOf designates which fields of a
// record participate in matching.
func Filter[T any](items []T, query string, fieldsOf func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(query, fieldsOf(item)...) {
			out = append(out, item)
		}
	}
	return out
}
