package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRequests counts recommendation calls by serving path and outcome
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylelens_recommendation_requests_total",
			Help: "Recommendation requests by serving path (remote, local) and outcome",
		},
		[]string{"path", "outcome"},
	)

	// RemoteRequestDuration tracks catalog API latency per endpoint
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylelens_remote_request_duration_seconds",
			Help:    "Duration of remote catalog API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	ListingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylelens_listing_cache_hits_total",
			Help: "Listing cache hits",
		},
	)

	ListingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylelens_listing_cache_misses_total",
			Help: "Listing cache misses",
		},
	)

	// ListingFallbacks counts listings served from the local catalog
	ListingFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylelens_listing_fallbacks_total",
			Help: "Listings served from the local catalog after a remote failure",
		},
	)

	TrackingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylelens_tracking_failures_total",
			Help: "Interaction deliveries that failed, by sink",
		},
		[]string{"sink"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stylelens_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)
