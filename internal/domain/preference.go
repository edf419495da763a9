package domain

import (
	"strings"
	"time"
)

// UserPreference is the slice of a user profile the engine reads
type UserPreference struct {
	Interests    []string `json:"interests" bson:"interests"`
	FashionStyle string   `json:"fashionStyle,omitempty" bson:"fashion_style,omitempty"`
	Gender       string   `json:"gender,omitempty" bson:"gender,omitempty"` // passed to the remote recommender only
}

// RecommendationRequest carries everything one recommendation call needs
type RecommendationRequest struct {
	Interests    []string
	FashionStyle string
	Gender       string
	Filters      FilterCriteria
}

// NewRecommendationRequest builds a request from a stored preference and active filters
func NewRecommendationRequest(pref UserPreference, filters FilterCriteria) RecommendationRequest {
	interests := make([]string, len(pref.Interests))
	copy(interests, pref.Interests)
	return RecommendationRequest{
		Interests:    interests,
		FashionStyle: pref.FashionStyle,
		Gender:       pref.Gender,
		Filters:      filters,
	}
}

// SortOrder is a client-side listing refinement applied after ranking
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
	SortName      SortOrder = "name"
)

// ParseSortOrder maps a query value to a SortOrder; unknown values keep the default order
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	case SortRating:
		return SortRating
	case SortName:
		return SortName
	default:
		return SortDefault
	}
}

// InteractionKind is the kind of user/product interaction being tracked
type InteractionKind string

const (
	InteractionView  InteractionKind = "view"
	InteractionClick InteractionKind = "click"
	InteractionLike  InteractionKind = "like"
)

// Valid reports whether the kind is one of the tracked kinds
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionView, InteractionClick, InteractionLike:
		return true
	default:
		return false
	}
}

// Interaction is a single tracked user/product event
type Interaction struct {
	ID        string          `json:"id" bson:"_id"`
	UserID    string          `json:"userId" bson:"user_id"`
	ProductID string          `json:"productId" bson:"product_id"`
	Kind      InteractionKind `json:"interactionType" bson:"kind"`
	Timestamp time.Time       `json:"timestamp" bson:"timestamp"`
}

// ListingQuery is what the remote catalog-listing endpoint accepts
type ListingQuery struct {
	Source   string
	Category Category
	Limit    int
}
