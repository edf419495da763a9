package store

import (
	"context"
	"slices"
	"sync"

	"github.com/stylelens/backend/internal/domain"
)

// MemoryProfileStore keeps user preferences in process memory
type MemoryProfileStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.UserPreference
}

// NewMemoryProfileStore creates an empty in-memory profile store
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{prefs: make(map[string]domain.UserPreference)}
}

// GetPreference returns a copy of the stored preference or ErrProfileNotFound
func (s *MemoryProfileStore) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	pref.Interests = slices.Clone(pref.Interests)
	return &pref, nil
}

// SavePreference replaces the stored preference for the user
func (s *MemoryProfileStore) SavePreference(ctx context.Context, userID string, pref domain.UserPreference) error {
	pref.Interests = slices.Clone(pref.Interests)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = pref
	return nil
}

// MemoryInteractionStore keeps tracked interactions in process memory
type MemoryInteractionStore struct {
	mu           sync.RWMutex
	interactions []domain.Interaction
	maxSize      int
}

// NewMemoryInteractionStore creates an interaction store that keeps at most
// maxSize most recent interactions (0 = unbounded)
func NewMemoryInteractionStore(maxSize int) *MemoryInteractionStore {
	return &MemoryInteractionStore{maxSize: maxSize}
}

// Record appends an interaction, evicting the oldest when full
func (s *MemoryInteractionStore) Record(ctx context.Context, interaction domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interactions = append(s.interactions, interaction)
	if s.maxSize > 0 && len(s.interactions) > s.maxSize {
		s.interactions = slices.Delete(s.interactions, 0, len(s.interactions)-s.maxSize)
	}
	return nil
}

// CountByProduct returns the number of recorded interactions per product id
func (s *MemoryInteractionStore) CountByProduct(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, i := range s.interactions {
		counts[i.ProductID]++
	}
	return counts, nil
}

// Len returns the number of stored interactions
func (s *MemoryInteractionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.interactions)
}
