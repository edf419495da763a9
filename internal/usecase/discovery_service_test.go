package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stylelens/backend/internal/domain"
)

func similarityFixture() *MockCatalog {
	return &MockCatalog{products: []domain.Product{
		product("t", "Denim Jacket", "Casual", "Amazon", 2000, "denim", "jacket"),
		product("x", "Denim Jeans", "Casual", "Amazon", 1500, "denim"),
		product("y", "Silk Saree", "Traditional", "Flipkart", 4000, "silk"),
		product("z", "Crew Tee", "Casual", "Amazon", 400, "cotton"),
	}}
}

func TestSimilarProducts(t *testing.T) {
	service := NewSimilarityService(similarityFixture())

	got, err := service.SimilarProducts(context.Background(), "t", 0)

	if err != nil {
		t.Fatalf("SimilarProducts() error = %v", err)
	}
	gotIDs := ids(got)
	if len(gotIDs) != 2 || gotIDs[0] != "x" || gotIDs[1] != "z" {
		t.Fatalf("SimilarProducts() = %v, want [x z]", gotIDs)
	}
	if got[0].Relevance() <= got[1].Relevance() {
		t.Errorf("scores not descending: %v then %v", got[0].Relevance(), got[1].Relevance())
	}
	for _, p := range got {
		if p.ID == "t" {
			t.Error("target product must not be similar to itself")
		}
	}
}

func TestSimilarProducts_Limit(t *testing.T) {
	got, err := NewSimilarityService(similarityFixture()).SimilarProducts(context.Background(), "t", 1)

	if err != nil {
		t.Fatalf("SimilarProducts() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "x" {
		t.Errorf("SimilarProducts() = %v, want [x]", ids(got))
	}
}

func TestSimilarProducts_Errors(t *testing.T) {
	catalogErr := errors.New("catalog down")

	tests := []struct {
		name    string
		catalog *MockCatalog
		id      string
		wantErr error
	}{
		{"empty id", similarityFixture(), "", domain.ErrInvalidRequest},
		{"unknown id", similarityFixture(), "missing", domain.ErrProductNotFound},
		{"catalog failure", &MockCatalog{err: catalogErr}, "t", catalogErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimilarityService(tt.catalog).SimilarProducts(context.Background(), tt.id, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SimilarProducts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func trendingFixture() *MockCatalog {
	p1 := product("p1", "Top Rated", "Casual", "Amazon", 100)
	p1.Rating = 4.9
	p2 := product("p2", "Average", "Casual", "Amazon", 100)
	p2.Rating = 4.0
	p3 := product("p3", "Popular", "Casual", "Amazon", 100)
	p3.Rating = 3.0
	return &MockCatalog{products: []domain.Product{p1, p2, p3}}
}

func TestTrending(t *testing.T) {
	tests := []struct {
		name         string
		interactions domain.InteractionRepository
		limit        int
		want         []string
	}{
		{"interaction volume dominates", &MockSink{counts: map[string]int{"p3": 3}}, 0, []string{"p3", "p1", "p2"}},
		{"counts unavailable", &MockSink{countErr: errors.New("mongo down")}, 0, []string{"p1", "p2", "p3"}},
		{"no interaction store", nil, 0, []string{"p1", "p2", "p3"}},
		{"limit", &MockSink{counts: map[string]int{"p2": 1}}, 2, []string{"p2", "p1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTrendingService(trendingFixture(), tt.interactions).Trending(context.Background(), tt.limit)
			if err != nil {
				t.Fatalf("Trending() error = %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tt.want) {
				t.Fatalf("Trending() = %v, want %v", gotIDs, tt.want)
			}
			for i := range tt.want {
				if gotIDs[i] != tt.want[i] {
					t.Errorf("Trending() = %v, want %v", gotIDs, tt.want)
					break
				}
			}
		})
	}
}

func TestTrending_Score(t *testing.T) {
	got, err := NewTrendingService(trendingFixture(), &MockSink{counts: map[string]int{"p3": 3}}).Trending(context.Background(), 1)

	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if got[0].TrendingScore == nil || !almostEqual(*got[0].TrendingScore, 3*0.7+3.0*0.3) {
		t.Errorf("TrendingScore = %v, want %v", got[0].TrendingScore, 3*0.7+3.0*0.3)
	}
}
