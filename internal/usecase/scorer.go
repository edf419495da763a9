package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/stylelens/backend/internal/domain"
)

// Scoring weights. The phrase and word bonuses stack on purpose: an interest that
// matches as a whole phrase also collects the bonus for each of its long words.
const (
	phraseMatchBonus = 0.5
	wordMatchBonus   = 0.2
	styleMatchBonus  = 0.2
	minWordLength    = 3 // words must be strictly longer than this to count

	// DefaultRelevance is assigned when nothing matched, keeping the product rankable but last
	DefaultRelevance = 0.1
)

// ScoreProduct computes how well a product matches the given interests and style, in [0.1, 1].
func ScoreProduct(p domain.Product, interests []string, style string) float64 {
	searchText := buildSearchText(p)

	score := 0.0
	for _, interest := range interests {
		phrase := strings.ToLower(interest)
		if strings.TrimSpace(phrase) == "" {
			continue
		}

		if strings.Contains(searchText, phrase) {
			score += phraseMatchBonus
		}

		for _, word := range strings.Fields(phrase) {
			if utf8.RuneCountInString(word) > minWordLength && strings.Contains(searchText, word) {
				score += wordMatchBonus
			}
		}
	}

	if style = strings.ToLower(style); strings.TrimSpace(style) != "" && strings.Contains(searchText, style) {
		score += styleMatchBonus
	}

	score = clamp(score, 0, 1)
	if score == 0 {
		return DefaultRelevance
	}
	return score
}

// ScoreProducts returns scored copies of every product, in input order
func ScoreProducts(products []domain.Product, interests []string, style string) []domain.Product {
	scored := make([]domain.Product, len(products))
	for i, p := range products {
		scored[i] = p.WithRelevance(ScoreProduct(p, interests, style))
	}
	return scored
}

// buildSearchText joins title, category and tags into one lowercase string
func buildSearchText(p domain.Product) string {
	parts := make([]string, 0, len(p.Tags)+2)
	parts = append(parts, p.Title, p.Category)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
