package domain

import (
	"sort"
	"strings"
)

// SortMode selects the final ordering of a query result.
type SortMode string

// Supported sort modes. SortNewest is the default and orders by CreatedAt
// descending; the other two order by price.
const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// FilterAll is the sentinel category/condition value that disables the
// corresponding filter stage.
const FilterAll = "All"

// Query holds the four inputs of the listing filter/sort pipeline.
type Query struct {
	Text      string
	Category  string
	Condition string
	Sort      SortMode
}

// ApplyQuery runs the filter/sort pipeline over listings and returns a new
// sequence; the input is never mutated. Stages apply in a fixed order:
// free-text filter, category filter, condition filter, then sort. Each
// filter stage is skipped when its input is empty or the "All" sentinel.
func ApplyQuery(listings []Listing, q Query) []Listing {
	result := make([]Listing, len(listings))
	copy(result, listings)

	if q.Text != "" {
		lower := strings.ToLower(q.Text)
		kept := result[:0]
		for _, l := range result {
			if strings.Contains(strings.ToLower(l.Title), lower) ||
				strings.Contains(strings.ToLower(l.Description), lower) ||
				strings.Contains(strings.ToLower(string(l.Category)), lower) {
				kept = append(kept, l)
			}
		}
		result = kept
	}

	if q.Category != "" && q.Category != FilterAll {
		kept := result[:0]
		for _, l := range result {
			if string(l.Category) == q.Category {
				kept = append(kept, l)
			}
		}
		result = kept
	}

	if q.Condition != "" && q.Condition != FilterAll {
		kept := result[:0]
		for _, l := range result {
			if string(l.Condition) == q.Condition {
				kept = append(kept, l)
			}
		}
		result = kept
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price > result[j].Price
		})
	default:
		// CreatedAt is RFC 3339, so lexicographic order matches
		// chronological order.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt > result[j].CreatedAt
		})
	}

	return result
}
