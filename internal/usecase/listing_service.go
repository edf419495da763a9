package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/metrics"
)

// DefaultListingLimit is the page size used when a request does not set one
const DefaultListingLimit = 60

// ListingRequest describes one listing view query
type ListingRequest struct {
	Filters domain.FilterCriteria
	Search  string
	SortBy  domain.SortOrder
	Limit   int
}

// ListingServiceConfig holds configuration for the listing service
type ListingServiceConfig struct {
	CacheTTL         time.Duration
	FanoutCategories bool
}

// ListingService serves the browse-all view: remote listing with a cache in front,
// local static catalog behind, then local price, search and sort refinements.
type ListingService struct {
	remote           domain.ListingSource
	local            domain.CatalogSource
	cache            domain.CacheRepository
	cacheTTL         time.Duration
	fanoutCategories bool
}

// NewListingService creates a listing service. remote and cache may be nil.
func NewListingService(
	remote domain.ListingSource,
	local domain.CatalogSource,
	cache domain.CacheRepository,
	config ListingServiceConfig,
) *ListingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &ListingService{
		remote:           remote,
		local:            local,
		cache:            cache,
		cacheTTL:         cacheTTL,
		fanoutCategories: config.FanoutCategories,
	}
}

// ListProducts returns the listing for the request.
// Flow: cache -> remote listing -> local catalog -> local refinements
func (s *ListingService) ListProducts(ctx context.Context, req ListingRequest) ([]domain.Product, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListingLimit
	}

	query := domain.ListingQuery{
		Source:   req.Filters.SourceParam(),
		Category: req.Filters.Category,
		Limit:    limit,
	}

	products, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	// Category and source may already be applied upstream; re-applying is harmless.
	products = FilterProducts(products, req.Filters)
	products = SearchProducts(products, req.Search)
	products = SortProducts(products, req.SortBy)

	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *ListingService) fetch(ctx context.Context, query domain.ListingQuery) ([]domain.Product, error) {
	if query.Category == domain.CategoryUnknown {
		return []domain.Product{}, nil
	}

	cacheKey := listingCacheKey(query)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	var remoteErr error
	if s.remote != nil {
		products, err := s.fetchRemote(ctx, query)
		if err == nil {
			s.setInCache(ctx, cacheKey, products)
			return products, nil
		}
		remoteErr = err
		logging.Ctx(ctx).Warn().Err(err).
			Str("category", query.Category.String()).
			Str("source", query.Source).
			Msg("[LISTING] Remote listing unavailable, using local catalog")
	}

	products, err := s.local.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, errors.Join(remoteErr, err))
	}
	if remoteErr != nil {
		metrics.ListingFallbacks.Inc()
	}
	return products, nil
}

// fetchRemote queries the listing endpoint. With fan-out enabled, an "all"
// query becomes one concurrent request per category, merged in category order.
func (s *ListingService) fetchRemote(ctx context.Context, query domain.ListingQuery) ([]domain.Product, error) {
	if query.Category != domain.CategoryAll || !s.fanoutCategories {
		return s.remote.ListProducts(ctx, query)
	}

	perCategory := max(query.Limit/len(domain.Categories), 1)
	results := make([][]domain.Product, len(domain.Categories))

	eg, egCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var failures []error

	for i, category := range domain.Categories {
		i, category := i, category
		eg.Go(func() error {
			products, err := s.remote.ListProducts(egCtx, domain.ListingQuery{
				Source:   query.Source,
				Category: category,
				Limit:    perCategory,
			})
			if err != nil {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", category, err))
				mu.Unlock()
				return nil
			}
			results[i] = products
			return nil
		})
	}
	_ = eg.Wait()

	// Partial results are still a usable listing; only a total miss falls back.
	if len(failures) == len(domain.Categories) {
		return nil, errors.Join(failures...)
	}
	if len(failures) > 0 {
		logging.Ctx(ctx).Warn().Err(errors.Join(failures...)).
			Int("failed_categories", len(failures)).
			Msg("[LISTING] Some category requests failed")
	}

	return mergeUnique(results), nil
}

// mergeUnique concatenates result groups, keeping the first occurrence of each product id
func mergeUnique(groups [][]domain.Product) []domain.Product {
	seen := make(map[string]bool)
	out := make([]domain.Product, 0)
	for _, group := range groups {
		for _, p := range group {
			if p.ID != "" {
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
			}
			out = append(out, p)
		}
	}
	return out
}

// listingCacheKey format: "listing:{source}:{category}:{limit}", source lowercased and query-escaped
func listingCacheKey(query domain.ListingQuery) string {
	return fmt.Sprintf("listing:%s:%s:%d", cacheKeySource(query.Source), query.Category, query.Limit)
}

// cacheKeySource keeps every character of the source so distinct sources never share a key
func cacheKeySource(source string) string {
	return url.QueryEscape(strings.ToLower(strings.TrimSpace(source)))
}

func (s *ListingService) getFromCache(ctx context.Context, key string) ([]domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("[LISTING] Cache read failed")
		}
		metrics.ListingCacheMisses.Inc()
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("[LISTING] Dropping undecodable cache entry")
		_ = s.cache.Delete(ctx, key)
		metrics.ListingCacheMisses.Inc()
		return nil, false
	}

	metrics.ListingCacheHits.Inc()
	return products, true
}

func (s *ListingService) setInCache(ctx context.Context, key string, products []domain.Product) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("[LISTING] Failed to encode listing for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("[LISTING] Cache write failed")
	}
}
