package usecase

import (
	"strings"

	"github.com/stylelens/backend/internal/domain"
)

// FilterProducts applies the category, price-range and source predicates.
// Predicates compose by AND; surviving products keep their relative order.
// The input slice is never modified.
func FilterProducts(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesCriteria(p, criteria) {
			out = append(out, p)
		}
	}
	return out
}

func matchesCriteria(p domain.Product, criteria domain.FilterCriteria) bool {
	return criteria.Category.Matches(p.Category) &&
		criteria.PriceRange.Contains(p.Price) &&
		criteria.SourceMatches(p.Source)
}

// SearchProducts keeps products whose title or any tag contains the term (case-insensitive).
// A blank term keeps everything.
func SearchProducts(products []domain.Product, term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term == "" || matchesSearch(p, term) {
			out = append(out, p)
		}
	}
	return out
}

// matchesSearch expects an already lowercased term
func matchesSearch(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
