package record

import "strings"

// CategoryAll disables the category constraint.
const CategoryAll = "all"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type (
	// Record is anything a list view can search and filter.
	Record interface {
		SearchFields() []string
		Categories() []string
	}

	// Distancer is implemented by records that carry a precomputed distance in km.
	Distancer interface {
		DistanceKm() float64
	}

	Constraints struct {
		Category    string
		MaxDistance *float64
	}
)

// NormalizeQuery trims surrounding whitespace and lowercases the query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the records matching query and every active constraint,
// in input order. The result is never nil.
func Filter[T Record](records []T, query string, c Constraints) []T {
	q := NormalizeQuery(query)
	result := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, q, c) {
			result = append(result, r)
		}
	}
	return result
}

// Matches reports whether r satisfies an already normalized query and c.
func Matches(r Record, normalizedQuery string, c Constraints) bool {
	return matchesQuery(r, normalizedQuery) &&
		matchesCategory(r, c.Category) &&
		matchesDistance(r, c.MaxDistance)
}

func matchesQuery(r Record, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchesCategory(r Record, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	for _, c := range r.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Records without a distance never satisfy a distance constraint.
func matchesDistance(r Record, maxDistance *float64) bool {
	if maxDistance == nil {
		return true
	}
	d, ok := r.(Distancer)
	if !ok {
		return false
	}
	return d.DistanceKm() <= *maxDistance
}

// Paginate returns the 1-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return []T{}
	}
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// NormalizePage clamps page to at least 1 and limit to [1, MaxLimit],
// using DefaultLimit when limit is unset.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages mirrors the page count the list endpoints report.
func TotalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
