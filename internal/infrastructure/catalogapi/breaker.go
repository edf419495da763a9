package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/metrics"
)

// BreakerConfig holds circuit breaker settings
type BreakerConfig struct {
	MaxRequests  uint32        // requests allowed through while half-open
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open -> half-open delay
	MinRequests  uint32        // requests needed before the failure ratio is considered
	FailureRatio float64
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxRequests == 0 {
		c.MaxRequests = 3
	}
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MinRequests == 0 {
		c.MinRequests = 5
	}
	if c.FailureRatio <= 0 {
		c.FailureRatio = 0.6
	}
	return c
}

func newBreaker(name string, config BreakerConfig) *gobreaker.CircuitBreaker[[]domain.Product] {
	config = config.withDefaults()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]domain.Product](gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= config.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		// A cancelled caller says nothing about the health of the remote side
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// wrapBreakerError marks breaker rejections as remote unavailability
func wrapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return err
}

// BreakerRecommender guards a remote recommender with a circuit breaker so an
// unhealthy remote is skipped without waiting for its timeout
type BreakerRecommender struct {
	inner domain.Recommender
	cb    *gobreaker.CircuitBreaker[[]domain.Product]
}

// NewBreakerRecommender wraps inner with a circuit breaker
func NewBreakerRecommender(inner domain.Recommender, config BreakerConfig) *BreakerRecommender {
	return &BreakerRecommender{
		inner: inner,
		cb:    newBreaker("catalog-api-recommendations", config),
	}
}

// Name reports the wrapped strategy's name
func (b *BreakerRecommender) Name() string {
	return b.inner.Name()
}

// Recommend calls the wrapped recommender unless the circuit is open
func (b *BreakerRecommender) Recommend(ctx context.Context, req domain.RecommendationRequest) ([]domain.Product, error) {
	products, err := b.cb.Execute(func() ([]domain.Product, error) {
		return b.inner.Recommend(ctx, req)
	})
	if err != nil {
		return nil, wrapBreakerError(err)
	}
	return products, nil
}

// State returns the current breaker state
func (b *BreakerRecommender) State() gobreaker.State {
	return b.cb.State()
}

// BreakerListing guards a remote listing source with a circuit breaker
type BreakerListing struct {
	inner domain.ListingSource
	cb    *gobreaker.CircuitBreaker[[]domain.Product]
}

// NewBreakerListing wraps inner with a circuit breaker
func NewBreakerListing(inner domain.ListingSource, config BreakerConfig) *BreakerListing {
	return &BreakerListing{
		inner: inner,
		cb:    newBreaker("catalog-api-listing", config),
	}
}

// ListProducts calls the wrapped listing source unless the circuit is open
func (b *BreakerListing) ListProducts(ctx context.Context, query domain.ListingQuery) ([]domain.Product, error) {
	products, err := b.cb.Execute(func() ([]domain.Product, error) {
		return b.inner.ListProducts(ctx, query)
	})
	if err != nil {
		return nil, wrapBreakerError(err)
	}
	return products, nil
}

// State returns the current breaker state
func (b *BreakerListing) State() gobreaker.State {
	return b.cb.State()
}
