package catalogapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/metrics"
)

// Endpoint paths of the catalog API
const (
	recommendationsPath = "/api/recommendations"
	listingPath         = "/api/products/all"
	trackingPath        = "/api/track-interaction"
)

// ClientConfig holds configuration for the catalog API client
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int // listing GET attempts, POSTs are never retried
}

// Client handles communication with the remote catalog API. It serves as the
// remote recommender, the remote listing source and the remote tracking sink.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	maxAttempts int
	backoff     func(attempt int) time.Duration
}

// NewClient creates a new catalog API client
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 20
	}
	attempts := config.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		maxAttempts: attempts,
		backoff:     exponentialBackoff,
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return 500 * time.Millisecond << (attempt - 1)
}

// Name identifies the client as a recommendation strategy
func (c *Client) Name() string {
	return "remote"
}

// doRequest executes one HTTP request with proper headers and returns status and body
func (c *Client) doRequest(ctx context.Context, method, reqURL string, payload any) (int, []byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter error: %w", err)
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "StyleLens/1.0")
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %v", domain.ErrRemoteUnavailable, err)
	}
	return resp.StatusCode, data, nil
}

// decodeProducts validates a product envelope: HTTP 2xx and status "success"
func decodeProducts(status int, data []byte) ([]domain.Product, error) {
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrRemoteUnavailable, status, truncate(data, 200))
	}

	var envelope productEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrRemoteUnavailable, err)
	}
	if envelope.Status != StatusSuccess {
		return nil, fmt.Errorf("%w: status %q: %s", domain.ErrRemoteUnavailable, envelope.Status, envelope.Message)
	}

	return MapProducts(envelope.Products), nil
}

// Recommend asks the remote recommender for products. Single attempt; the
// caller owns timeouts and fallback.
func (c *Client) Recommend(ctx context.Context, req domain.RecommendationRequest) ([]domain.Product, error) {
	start := time.Now()
	status, data, err := c.doRequest(ctx, http.MethodPost, c.baseURL+recommendationsPath, newRecommendationBody(req))
	observe("recommendations", status, err, start)
	if err != nil {
		return nil, err
	}

	products, err := decodeProducts(status, data)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("[CATALOG API] Recommendation request rejected")
		return nil, err
	}

	logging.Ctx(ctx).Debug().Int("count", len(products)).Msg("[CATALOG API] Received recommendations")
	return products, nil
}

// ListProducts fetches a catalog listing, retrying transient failures with
// exponential backoff
func (c *Client) ListProducts(ctx context.Context, query domain.ListingQuery) ([]domain.Product, error) {
	params := url.Values{}
	params.Add("source", query.Source)
	params.Add("limit", strconv.Itoa(query.Limit))
	params.Add("category", query.Category.String())
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, listingPath, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		start := time.Now()
		status, data, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
		observe("listing", status, err, start)

		if err == nil {
			products, decodeErr := decodeProducts(status, data)
			if decodeErr == nil {
				logging.Ctx(ctx).Debug().
					Int("count", len(products)).
					Str("category", query.Category.String()).
					Msg("[CATALOG API] Received listing")
				return products, nil
			}
			err = decodeErr
		}

		lastErr = err
		if ctx.Err() != nil {
			break
		}
		logging.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Msg("[CATALOG API] Listing request failed")

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, ctx.Err())
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	logging.Ctx(ctx).Warn().Str("category", query.Category.String()).Msg("[CATALOG API] All listing retries failed")
	return nil, lastErr
}

// Record forwards an interaction to the tracking endpoint
func (c *Client) Record(ctx context.Context, interaction domain.Interaction) error {
	start := time.Now()
	status, data, err := c.doRequest(ctx, http.MethodPost, c.baseURL+trackingPath, newInteractionBody(interaction))
	observe("tracking", status, err, start)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: status %d, body: %s", domain.ErrRemoteUnavailable, status, truncate(data, 200))
	}
	return nil
}

func observe(endpoint string, status int, err error, start time.Time) {
	label := strconv.Itoa(status)
	if err != nil && status == 0 {
		label = "error"
	}
	metrics.RemoteRequestDuration.WithLabelValues(endpoint, label).Observe(time.Since(start).Seconds())
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
