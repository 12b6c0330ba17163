// Package view derives what a management table shows from the latest
// collection snapshot. Filtering is read-only and preserves the
// database sort order.
package view

import "strings"

// Filter returns the records whose configured string fields contain
// the trimmed query as a case-insensitive substring. A blank query
// returns the input unchanged. No ranking: relative order is the
// input's order.
func Filter[T any](list []T, query string, fields func(T) []string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]T, 0, len(list))
	for _, rec := range list {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
