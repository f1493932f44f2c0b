package catalog

import (
	"strings"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Filter returns the products matching the search term and category. A nil
// category means all categories, mirroring the terminal's "Todos" filter.
func Filter(products []Product, term string, category *Category) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if !p.Matches(term) {
			continue
		}
		if category != nil && p.Category != *category {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
