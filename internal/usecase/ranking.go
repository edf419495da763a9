package usecase

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
)

// RankerConfig holds configuration for the ranking pipeline
type RankerConfig struct {
	MaxResults         int // 0 keeps every ranked product
	EnableDebugLogging bool
}

// Ranker turns a product collection into an ordered, scored result:
// filter -> score -> threshold -> stable sort.
type Ranker struct {
	maxResults         int
	enableDebugLogging bool
}

// NewRanker creates a ranking pipeline with the given configuration
func NewRanker(config RankerConfig) *Ranker {
	maxResults := config.MaxResults
	if maxResults < 0 {
		maxResults = 0
	}
	return &Ranker{
		maxResults:         maxResults,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Rank filters, scores and orders products for the given interests and style.
// Blank interests are dropped first. The threshold step only applies when at
// least one interest remains, so an empty interest list never empties the
// result. Ties keep their input order.
func (r *Ranker) Rank(
	products []domain.Product,
	criteria domain.FilterCriteria,
	interests []string,
	style string,
) []domain.Product {
	interests = nonBlank(interests)
	filtered := FilterProducts(products, criteria)
	scored := ScoreProducts(filtered, interests, style)

	if len(interests) > 0 {
		scored = slices.DeleteFunc(scored, func(p domain.Product) bool {
			return p.Relevance() <= DefaultRelevance
		})
	}

	slices.SortStableFunc(scored, func(a, b domain.Product) int {
		return cmp.Compare(b.Relevance(), a.Relevance())
	})

	if r.maxResults > 0 && len(scored) > r.maxResults {
		scored = scored[:r.maxResults]
	}

	if r.enableDebugLogging {
		event := logging.Debug().
			Int("input", len(products)).
			Int("filtered", len(filtered)).
			Int("ranked", len(scored))
		if len(scored) > 0 {
			event = event.Str("top", scored[0].Title).Float64("top_score", scored[0].Relevance())
		}
		event.Msg("[RANK] Ranked products")
	}

	return scored
}

// nonBlank returns the interests that contain something other than whitespace
func nonBlank(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		if strings.TrimSpace(interest) != "" {
			out = append(out, interest)
		}
	}
	return out
}
