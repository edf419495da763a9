package catalogapi

import (
	"strings"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

// StatusSuccess is the envelope status of a successful catalog API response
const StatusSuccess = "success"

// productEnvelope is the response body shared by the recommendation and listing endpoints
type productEnvelope struct {
	Status   string        `json:"status"`
	Count    int           `json:"count"`
	Products []wireProduct `json:"products"`
	Message  string        `json:"message"`
}

// wireProduct is a product as the catalog API sends it. Price may arrive as a
// number, a numeric string or null.
type wireProduct struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Price          domain.Price `json:"price"`
	Image          string       `json:"image"`
	Link           string       `json:"link"`
	Source         string       `json:"source"`
	Category       string       `json:"category"`
	Rating         float64      `json:"rating"`
	Tags           []string     `json:"tags"`
	RelevanceScore *float64     `json:"relevanceScore"`
	SemanticScore  *float64     `json:"semanticScore"`
}

// recommendationBody is the request body of POST /api/recommendations
type recommendationBody struct {
	Interests    []string          `json:"interests"`
	FashionStyle string            `json:"fashionStyle"`
	Gender       string            `json:"gender"`
	Filters      domain.FilterWire `json:"filters"`
}

// interactionBody is the request body of POST /api/track-interaction
type interactionBody struct {
	UserID          string `json:"userId"`
	ProductID       string `json:"productId"`
	InteractionType string `json:"interactionType"`
	Timestamp       string `json:"timestamp"`
}

// MapProducts converts wire products to domain products in order. Records are
// kept as received; only a missing image is replaced by the placeholder.
func MapProducts(in []wireProduct) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, w := range in {
		out = append(out, mapProduct(w))
	}
	return out
}

func mapProduct(w wireProduct) domain.Product {
	image := w.Image
	if strings.TrimSpace(image) == "" {
		image = domain.PlaceholderImage
	}

	return domain.Product{
		ID:             w.ID,
		Title:          w.Title,
		Price:          w.Price,
		Image:          image,
		Link:           w.Link,
		Category:       w.Category,
		Source:         w.Source,
		Rating:         w.Rating,
		Tags:           w.Tags,
		RelevanceScore: w.RelevanceScore,
		SemanticScore:  w.SemanticScore,
	}
}

func newRecommendationBody(req domain.RecommendationRequest) recommendationBody {
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	return recommendationBody{
		Interests:    interests,
		FashionStyle: req.FashionStyle,
		Gender:       req.Gender,
		Filters:      req.Filters.ToWire(),
	}
}

func newInteractionBody(i domain.Interaction) interactionBody {
	return interactionBody{
		UserID:          i.UserID,
		ProductID:       i.ProductID,
		InteractionType: string(i.Kind),
		Timestamp:       i.Timestamp.UTC().Format(time.RFC3339),
	}
}
