package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/metrics"
)

// NamedSink pairs an interaction sink with a label for logs and metrics
type NamedSink struct {
	Name string
	Sink domain.InteractionSink
}

// TrackingServiceConfig holds configuration for the tracking service
type TrackingServiceConfig struct {
	DeliveryTimeout time.Duration
}

// TrackingService delivers interactions to every sink in the background.
// Delivery is best-effort: failures are logged and counted, never returned.
type TrackingService struct {
	sinks   []NamedSink
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewTrackingService creates a tracking service over the given sinks
func NewTrackingService(sinks []NamedSink, config TrackingServiceConfig) *TrackingService {
	timeout := config.DeliveryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TrackingService{
		sinks:   sinks,
		timeout: timeout,
		now:     time.Now,
	}
}

// Track validates the interaction and dispatches it without waiting for delivery.
// The only error is ErrInvalidInteraction for malformed input.
func (s *TrackingService) Track(ctx context.Context, interaction domain.Interaction) (domain.Interaction, error) {
	interaction.UserID = strings.TrimSpace(interaction.UserID)
	interaction.ProductID = strings.TrimSpace(interaction.ProductID)
	if interaction.UserID == "" || interaction.ProductID == "" || !interaction.Kind.Valid() {
		return interaction, domain.ErrInvalidInteraction
	}
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = s.now().UTC()
	}

	requestID := logging.RequestIDFromContext(ctx)
	for _, sink := range s.sinks {
		sink := sink
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.deliver(requestID, sink, interaction)
		}()
	}

	return interaction, nil
}

// deliver runs detached from the request context so a finished request does not cancel it
func (s *TrackingService) deliver(requestID string, sink NamedSink, interaction domain.Interaction) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if requestID != "" {
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}

	if err := sink.Sink.Record(ctx, interaction); err != nil {
		metrics.TrackingFailures.WithLabelValues(sink.Name).Inc()
		logging.Ctx(ctx).Warn().Err(err).
			Str("sink", sink.Name).
			Str("user_id", interaction.UserID).
			Str("product_id", interaction.ProductID).
			Str("kind", string(interaction.Kind)).
			Msg("[TRACKING] Failed to record interaction")
	}
}

// Wait blocks until all in-flight deliveries have finished
func (s *TrackingService) Wait() {
	s.wg.Wait()
}
