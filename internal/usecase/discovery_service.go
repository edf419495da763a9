package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
)

// Defaults for the discovery views
const (
	DefaultSimilarLimit  = 5
	DefaultTrendingLimit = 20

	trendingInteractionWeight = 0.7
	trendingRatingWeight      = 0.3
)

// SimilarityService finds catalog products that resemble a given product
type SimilarityService struct {
	catalog domain.CatalogSource
}

// NewSimilarityService creates a similarity service over a catalog source
func NewSimilarityService(catalog domain.CatalogSource) *SimilarityService {
	return &SimilarityService{catalog: catalog}
}

// SimilarProducts scores every other catalog product against the target's
// category and tags, using the relevance scorer.
func (s *SimilarityService) SimilarProducts(ctx context.Context, productID string, limit int) ([]domain.Product, error) {
	if productID == "" {
		return nil, domain.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	idx := slices.IndexFunc(products, func(p domain.Product) bool { return p.ID == productID })
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	target := products[idx]

	signals := make([]string, 0, len(target.Tags)+1)
	if target.Category != "" {
		signals = append(signals, target.Category)
	}
	signals = append(signals, target.Tags...)

	similar := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID == target.ID {
			continue
		}
		score := ScoreProduct(p, signals, "")
		if score <= DefaultRelevance {
			continue
		}
		similar = append(similar, p.WithRelevance(score))
	}

	slices.SortStableFunc(similar, func(a, b domain.Product) int {
		return cmp.Compare(b.Relevance(), a.Relevance())
	})

	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// TrendingService ranks catalog products by interaction volume and rating
type TrendingService struct {
	catalog      domain.CatalogSource
	interactions domain.InteractionRepository
}

// NewTrendingService creates a trending service. interactions may be nil.
func NewTrendingService(catalog domain.CatalogSource, interactions domain.InteractionRepository) *TrendingService {
	return &TrendingService{catalog: catalog, interactions: interactions}
}

// Trending returns products ordered by interactionCount*0.7 + rating*0.3
func (s *TrendingService) Trending(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	products, err := s.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	counts := map[string]int{}
	if s.interactions != nil {
		c, err := s.interactions.CountByProduct(ctx)
		if err != nil {
			// Rating alone still gives a usable ordering.
			logging.Ctx(ctx).Warn().Err(err).Msg("[TRENDING] Interaction counts unavailable, ranking by rating")
		} else {
			counts = c
		}
	}

	trending := make([]domain.Product, len(products))
	for i, p := range products {
		score := float64(counts[p.ID])*trendingInteractionWeight + p.Rating*trendingRatingWeight
		trending[i] = p.WithTrending(score)
	}

	slices.SortStableFunc(trending, func(a, b domain.Product) int {
		return cmp.Compare(*b.TrendingScore, *a.TrendingScore)
	})

	if len(trending) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}
