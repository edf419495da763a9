package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylelens/backend/internal/domain"
)

var (
	_ domain.ProfileRepository     = (*MemoryProfileStore)(nil)
	_ domain.ProfileRepository     = (*MongoProfileStore)(nil)
	_ domain.InteractionRepository = (*MemoryInteractionStore)(nil)
	_ domain.InteractionRepository = (*MongoInteractionStore)(nil)
)

func TestMemoryProfileStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfileStore()

	_, err := s.GetPreference(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	interests := []string{"denim", "sneakers"}
	require.NoError(t, s.SavePreference(ctx, "u1", domain.UserPreference{Interests: interests, FashionStyle: "casual"}))
	interests[0] = "changed"

	pref, err := s.GetPreference(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"denim", "sneakers"}, pref.Interests)
	assert.Equal(t, "casual", pref.FashionStyle)

	pref.Interests[1] = "mutated"
	again, _ := s.GetPreference(ctx, "u1")
	assert.Equal(t, "sneakers", again.Interests[1])
}

func TestMemoryInteractionStore_CountByProduct(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryInteractionStore(0)

	for _, id := range []string{"a", "b", "a", "c", "a"} {
		require.NoError(t, s.Record(ctx, domain.Interaction{ProductID: id, Kind: domain.InteractionView}))
	}

	counts, err := s.CountByProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 1, "c": 1}, counts)
}

func TestMemoryInteractionStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryInteractionStore(2)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, domain.Interaction{ProductID: fmt.Sprintf("p%d", i)}))
	}

	assert.Equal(t, 2, s.Len())
	counts, _ := s.CountByProduct(ctx)
	assert.Equal(t, map[string]int{"p3": 1, "p4": 1}, counts)
}

// Runs only against a live MongoDB, e.g. STYLELENS_TEST_MONGO_URI=mongodb://localhost:27017
func TestMongoStores(t *testing.T) {
	uri := os.Getenv("STYLELENS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STYLELENS_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewConnection(ctx, uri, "stylelens_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	defer func() {
		_ = db.Database().Drop(ctx)
		_ = db.Close(ctx)
	}()

	profiles := NewMongoProfileStore(db)
	_, err = profiles.GetPreference(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	require.NoError(t, profiles.SavePreference(ctx, "u1", domain.UserPreference{Interests: []string{"kurta"}, Gender: "men"}))
	pref, err := profiles.GetPreference(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"kurta"}, pref.Interests)
	assert.Equal(t, "men", pref.Gender)

	interactions := NewMongoInteractionStore(db)
	require.NoError(t, interactions.EnsureIndexes(ctx))
	for _, id := range []string{"x", "y", "x"} {
		require.NoError(t, interactions.Record(ctx, domain.Interaction{
			ID:        uuid.NewString(),
			UserID:    "u1",
			ProductID: id,
			Kind:      domain.InteractionClick,
			Timestamp: time.Now().UTC(),
		}))
	}

	counts, err := interactions.CountByProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, counts)
}
