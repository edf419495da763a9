package domain

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// PlaceholderImage is shown for products that arrive without an image reference
const PlaceholderImage = "https://via.placeholder.com/400x400?text=No+Image"

// Product represents one catalog listing
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Price    Price    `json:"price"`
	Image    string   `json:"image,omitempty"`
	Link     string   `json:"link"`
	Category string   `json:"category"`
	Source   string   `json:"source"`
	Rating   float64  `json:"rating,omitempty"` // 0-5, zero when unknown
	Tags     []string `json:"tags,omitempty"`

	// Derived by the engine, never stored
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`
	SemanticScore  *float64 `json:"semanticScore,omitempty"` // remote path only
	TrendingScore  *float64 `json:"trendingScore,omitempty"`
}

// WithRelevance returns a copy of the product carrying the given relevance score
func (p Product) WithRelevance(score float64) Product {
	p.RelevanceScore = &score
	return p
}

// WithTrending returns a copy of the product carrying the given trending score
func (p Product) WithTrending(score float64) Product {
	p.TrendingScore = &score
	return p
}

// Relevance returns the attached relevance score, or 0 when none was computed
func (p Product) Relevance() float64 {
	if p.RelevanceScore == nil {
		return 0
	}
	return *p.RelevanceScore
}

// DisplayImage returns the image reference, falling back to the placeholder
func (p Product) DisplayImage() string {
	if strings.TrimSpace(p.Image) == "" {
		return PlaceholderImage
	}
	return p.Image
}

// Price is a non-negative amount in a single currency unit.
// Valid is false when the source value was missing or malformed; such a price
// never falls inside a numeric bucket.
type Price struct {
	Amount float64
	Valid  bool
}

// NewPrice builds a price, marking it invalid if the amount is negative or not finite
func NewPrice(amount float64) Price {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return Price{}
	}
	return Price{Amount: amount, Valid: true}
}

// MarshalJSON writes the amount, or null for an invalid price
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, p.Amount, 'f', -1, 64), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else yields an
// invalid price instead of an error so one bad record cannot fail a whole payload.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}

	amount, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}
	*p = NewPrice(amount)
	return nil
}
