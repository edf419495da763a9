package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stylelens/backend/internal/domain"
)

// ProfileService reads user preferences and turns them into recommendations
type ProfileService struct {
	profiles        domain.ProfileRepository
	recommendations *RecommendationService
}

// NewProfileService creates a profile service
func NewProfileService(profiles domain.ProfileRepository, recommendations *RecommendationService) *ProfileService {
	return &ProfileService{profiles: profiles, recommendations: recommendations}
}

// GetPreference returns the stored preference for a user
func (s *ProfileService) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.profiles.GetPreference(ctx, userID)
}

// SavePreference stores the preference, dropping blank and duplicate interests
func (s *ProfileService) SavePreference(ctx context.Context, userID string, pref domain.UserPreference) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrInvalidRequest
	}
	pref.Interests = normalizeInterests(pref.Interests)
	pref.FashionStyle = strings.TrimSpace(pref.FashionStyle)
	pref.Gender = strings.TrimSpace(pref.Gender)
	return s.profiles.SavePreference(ctx, userID, pref)
}

// RecommendForUser loads the user's preference and returns recommendations.
// A user without a stored profile gets recommendations for an empty preference.
func (s *ProfileService) RecommendForUser(
	ctx context.Context,
	userID string,
	filters domain.FilterCriteria,
) ([]domain.Product, error) {
	pref, err := s.GetPreference(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("load preference: %w", err)
		}
		pref = &domain.UserPreference{}
	}

	return s.recommendations.GetRecommendations(ctx, domain.NewRecommendationRequest(*pref, filters))
}

// normalizeInterests trims phrases and removes blanks and case-insensitive duplicates, keeping order
func normalizeInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		interest = strings.TrimSpace(interest)
		key := strings.ToLower(interest)
		if interest == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, interest)
	}
	return out
}
