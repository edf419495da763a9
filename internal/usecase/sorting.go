package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stylelens/backend/internal/domain"
)

// SortProducts returns a sorted copy of products for a listing view.
// Sorting is stable; products with an invalid price go last in both price orders.
func SortProducts(products []domain.Product, order domain.SortOrder) []domain.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []domain.Product{}
	}

	switch order {
	case domain.SortPriceLow:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return comparePrice(a.Price, b.Price, false)
		})
	case domain.SortPriceHigh:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return comparePrice(a.Price, b.Price, true)
		})
	case domain.SortRating:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case domain.SortName:
		slices.SortStableFunc(sorted, func(a, b domain.Product) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}

	return sorted
}

func comparePrice(a, b domain.Price, descending bool) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	case descending:
		return cmp.Compare(b.Amount, a.Amount)
	default:
		return cmp.Compare(a.Amount, b.Amount)
	}
}
