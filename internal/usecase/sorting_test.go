package usecase

import (
	"testing"

	"github.com/stylelens/backend/internal/domain"
)

func sortFixture() []domain.Product {
	a := product("a", "beta", "Casual", "Amazon", 300)
	a.Rating = 4.1
	b := domain.Product{ID: "b", Title: "Alpha", Rating: 4.8}
	c := product("c", "gamma", "Casual", "Amazon", 100)
	c.Rating = 4.1
	d := product("d", "Delta", "Casual", "Amazon", 200)
	d.Rating = 3.9
	return []domain.Product{a, b, c, d}
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		order domain.SortOrder
		want  []string
	}{
		{domain.SortDefault, []string{"a", "b", "c", "d"}},
		{domain.SortPriceLow, []string{"c", "d", "a", "b"}},
		{domain.SortPriceHigh, []string{"a", "d", "c", "b"}},
		{domain.SortRating, []string{"b", "a", "c", "d"}},
		{domain.SortName, []string{"b", "a", "d", "c"}},
		{domain.ParseSortOrder("popularity"), []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			got := ids(SortProducts(sortFixture(), tt.order))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortProducts(%s) = %v, want %v", tt.order, got, tt.want)
				}
			}
		})
	}
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	products := sortFixture()

	_ = SortProducts(products, domain.SortPriceLow)

	if products[0].ID != "a" || products[2].ID != "c" {
		t.Errorf("input reordered: %v", ids(products))
	}
}

func TestSortProducts_Nil(t *testing.T) {
	if got := SortProducts(nil, domain.SortRating); got == nil || len(got) != 0 {
		t.Errorf("SortProducts(nil) = %#v, want empty non-nil slice", got)
	}
}
