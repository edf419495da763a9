package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/metrics"
)

// DefaultRemoteTimeout bounds a single remote recommendation call
const DefaultRemoteTimeout = 5 * time.Second

// LocalRecommender runs the ranking pipeline over a catalog source
type LocalRecommender struct {
	catalog domain.CatalogSource
	ranker  *Ranker
}

// NewLocalRecommender creates the local recommendation strategy
func NewLocalRecommender(catalog domain.CatalogSource, ranker *Ranker) *LocalRecommender {
	return &LocalRecommender{catalog: catalog, ranker: ranker}
}

// Name identifies the strategy in logs and metrics
func (l *LocalRecommender) Name() string {
	return "local"
}

// Recommend ranks the local catalog for the request
func (l *LocalRecommender) Recommend(ctx context.Context, req domain.RecommendationRequest) ([]domain.Product, error) {
	products, err := l.catalog.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local catalog: %w", err)
	}
	return l.ranker.Rank(products, req.Filters, req.Interests, req.FashionStyle), nil
}

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	RemoteTimeout time.Duration
}

// RecommendationService picks the recommendation strategy for each call.
// The remote strategy runs first under a bounded timeout; any failure falls
// through to the local strategy so callers always see the same result shape.
type RecommendationService struct {
	remote        domain.Recommender
	local         domain.Recommender
	remoteTimeout time.Duration
}

// NewRecommendationService creates the coordinator. remote may be nil, in which
// case every call is served locally.
func NewRecommendationService(
	remote domain.Recommender,
	local domain.Recommender,
	config RecommendationServiceConfig,
) *RecommendationService {
	timeout := config.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &RecommendationService{
		remote:        remote,
		local:         local,
		remoteTimeout: timeout,
	}
}

// GetRecommendations returns ranked products for the request.
// An error is returned only when both strategies fail.
func (s *RecommendationService) GetRecommendations(
	ctx context.Context,
	req domain.RecommendationRequest,
) ([]domain.Product, error) {
	var remoteErr error

	if s.remote != nil {
		products, err := s.callRemote(ctx, req)
		if err == nil {
			metrics.RecommendationRequests.WithLabelValues(s.remote.Name(), "success").Inc()
			return products, nil
		}
		remoteErr = err
		metrics.RecommendationRequests.WithLabelValues(s.remote.Name(), "failure").Inc()
		logging.Ctx(ctx).Warn().Err(err).
			Str("strategy", s.remote.Name()).
			Msg("[RECOMMEND] Remote recommender unavailable, using local catalog")
	}

	products, err := s.local.Recommend(ctx, req)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues(s.local.Name(), "failure").Inc()
		logging.Ctx(ctx).Error().Err(err).Msg("[RECOMMEND] Local fallback failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrRecommendationUnavailable, errors.Join(remoteErr, err))
	}

	metrics.RecommendationRequests.WithLabelValues(s.local.Name(), "success").Inc()
	logging.Ctx(ctx).Debug().
		Int("count", len(products)).
		Int("interests", len(req.Interests)).
		Msg("[RECOMMEND] Served from local catalog")
	return products, nil
}

func (s *RecommendationService) callRemote(
	ctx context.Context,
	req domain.RecommendationRequest,
) ([]domain.Product, error) {
	remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	type result struct {
		products []domain.Product
		err      error
	}
	done := make(chan result, 1)

	// The remote call may ignore cancellation; never wait on it past the deadline.
	go func() {
		products, err := s.remote.Recommend(remoteCtx, req)
		done <- result{products: products, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if res.products == nil {
			res.products = []domain.Product{}
		}
		return res.products, nil
	case <-remoteCtx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, remoteCtx.Err())
	}
}
