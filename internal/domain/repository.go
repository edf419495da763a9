package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Recommender produces an ordered product list for a recommendation request.
// The remote recommendation endpoint and the local ranking pipeline both implement it.
type Recommender interface {
	Name() string
	Recommend(ctx context.Context, req RecommendationRequest) ([]Product, error)
}

// CatalogSource supplies a flat product collection
type CatalogSource interface {
	Products(ctx context.Context) ([]Product, error)
}

// ListingSource is the remote catalog-listing endpoint
type ListingSource interface {
	ListProducts(ctx context.Context, query ListingQuery) ([]Product, error)
}

// InteractionSink receives tracked interactions
type InteractionSink interface {
	Record(ctx context.Context, interaction Interaction) error
}

// InteractionRepository stores interactions and aggregates them for trending
type InteractionRepository interface {
	InteractionSink
	CountByProduct(ctx context.Context) (map[string]int, error)
}

// ProfileRepository reads and writes user preference records keyed by user id
type ProfileRepository interface {
	GetPreference(ctx context.Context, userID string) (*UserPreference, error)
	SavePreference(ctx context.Context, userID string, pref UserPreference) error
}
