package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalled int
	setCalled int
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockCatalog is a fixed domain.CatalogSource
type MockCatalog struct {
	products []domain.Product
	err      error
}

func (m *MockCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

// MockRecommender is a scripted domain.Recommender
type MockRecommender struct {
	name     string
	products []domain.Product
	err      error
	delay    time.Duration
	calls    int
	lastReq  domain.RecommendationRequest
	mu       sync.Mutex
}

func (m *MockRecommender) Name() string { return m.name }

func (m *MockRecommender) Recommend(ctx context.Context, req domain.RecommendationRequest) ([]domain.Product, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	m.mu.Unlock()

	if m.delay > 0 {
		// Deliberately ignores ctx to model an uncooperative remote
		time.Sleep(m.delay)
	}
	return m.products, m.err
}

// MockListingSource records listing queries and answers per category
type MockListingSource struct {
	mu       sync.Mutex
	queries  []domain.ListingQuery
	results  map[domain.Category][]domain.Product
	failures map[domain.Category]error
	err      error
}

func NewMockListingSource() *MockListingSource {
	return &MockListingSource{
		results:  make(map[domain.Category][]domain.Product),
		failures: make(map[domain.Category]error),
	}
}

func (m *MockListingSource) ListProducts(ctx context.Context, query domain.ListingQuery) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	if err, ok := m.failures[query.Category]; ok {
		return nil, err
	}
	return m.results[query.Category], nil
}

func (m *MockListingSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// MockSink is a domain.InteractionRepository that remembers what it received
type MockSink struct {
	mu       sync.Mutex
	received []domain.Interaction
	err      error
	counts   map[string]int
	countErr error
}

func (m *MockSink) Record(ctx context.Context, interaction domain.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, interaction)
	return m.err
}

func (m *MockSink) CountByProduct(ctx context.Context) (map[string]int, error) {
	if m.countErr != nil {
		return nil, m.countErr
	}
	return m.counts, nil
}

func (m *MockSink) interactions() []domain.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Interaction(nil), m.received...)
}

// MockProfileRepository is an in-memory domain.ProfileRepository
type MockProfileRepository struct {
	prefs  map[string]domain.UserPreference
	getErr error
	saved  map[string]domain.UserPreference
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		prefs: make(map[string]domain.UserPreference),
		saved: make(map[string]domain.UserPreference),
	}
}

func (m *MockProfileRepository) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	pref, ok := m.prefs[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &pref, nil
}

func (m *MockProfileRepository) SavePreference(ctx context.Context, userID string, pref domain.UserPreference) error {
	m.saved[userID] = pref
	m.prefs[userID] = pref
	return nil
}

// product builds a test product
func product(id, title, category, source string, price float64, tags ...string) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Category: category,
		Source:   source,
		Price:    domain.NewPrice(price),
		Tags:     tags,
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
