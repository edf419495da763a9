package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/usecase"
)

// Response statuses of the product envelope
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Services groups the use cases served over HTTP. Any of them may be nil, in
// which case its endpoints answer 503.
type Services struct {
	Recommendations *usecase.RecommendationService
	Listing         *usecase.ListingService
	Similarity      *usecase.SimilarityService
	Trending        *usecase.TrendingService
	Tracking        *usecase.TrackingService
	Profiles        *usecase.ProfileService
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	services Services
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services) *Handler {
	return &Handler{services: services}
}

// ProductsResponse is the envelope every product endpoint returns
type ProductsResponse struct {
	Status   string           `json:"status"`
	Count    int              `json:"count"`
	Products []domain.Product `json:"products"`
	Message  string           `json:"message,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RecommendationRequest is the body of POST /api/v1/recommendations
type RecommendationRequest struct {
	Interests    []string          `json:"interests"`
	FashionStyle string            `json:"fashionStyle"`
	Gender       string            `json:"gender"`
	Filters      domain.FilterWire `json:"filters"`
	SortBy       string            `json:"sortBy"`
}

// ListingQuery holds the query parameters of GET /api/v1/products
type ListingQuery struct {
	Category   string `form:"category"`
	PriceRange string `form:"priceRange"`
	Source     string `form:"source"`
	Search     string `form:"q"`
	Sort       string `form:"sort"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// FilterQuery holds the filter query parameters shared by recommendation GETs
type FilterQuery struct {
	Category   string `form:"category"`
	PriceRange string `form:"priceRange"`
	Source     string `form:"source"`
	Sort       string `form:"sort"`
}

// LimitQuery holds an optional result limit
type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// InteractionRequest is the body of POST /api/v1/interactions
type InteractionRequest struct {
	UserID          string `json:"userId" binding:"required"`
	ProductID       string `json:"productId" binding:"required"`
	InteractionType string `json:"interactionType" binding:"required,oneof=view click like"`
}

// PreferenceRequest is the body of PUT /api/v1/users/:id/preferences
type PreferenceRequest struct {
	Interests    []string `json:"interests" binding:"max=50"`
	FashionStyle string   `json:"fashionStyle" binding:"max=100"`
	Gender       string   `json:"gender" binding:"max=50"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylelens-backend",
		"version": "1.0.0",
	})
}

// GetRecommendations ranks products for the preferences in the request body
func (h *Handler) GetRecommendations(c *gin.Context) {
	if h.services.Recommendations == nil {
		notConfigured(c, "recommendations")
		return
	}

	var body RecommendationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	req := domain.RecommendationRequest{
		Interests:    body.Interests,
		FashionStyle: strings.TrimSpace(body.FashionStyle),
		Gender:       strings.TrimSpace(body.Gender),
		Filters:      body.Filters.Criteria(),
	}

	products, err := h.services.Recommendations.GetRecommendations(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	products = usecase.SortProducts(products, domain.ParseSortOrder(body.SortBy))
	writeProducts(c, http.StatusOK, products, "Recommendations ranked for your preferences")
}

// ListProducts serves the browse-all listing
func (h *Handler) ListProducts(c *gin.Context) {
	if h.services.Listing == nil {
		notConfigured(c, "product listing")
		return
	}

	var query ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	products, err := h.services.Listing.ListProducts(c.Request.Context(), usecase.ListingRequest{
		Filters: domain.ParseFilterCriteria(query.Category, query.PriceRange, query.Source),
		Search:  query.Search,
		SortBy:  domain.ParseSortOrder(query.Sort),
		Limit:   query.Limit,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeProducts(c, http.StatusOK, products, "")
}

// SimilarProducts returns catalog products resembling the one in the path
func (h *Handler) SimilarProducts(c *gin.Context) {
	if h.services.Similarity == nil {
		notConfigured(c, "similar products")
		return
	}

	var query LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	products, err := h.services.Similarity.SimilarProducts(c.Request.Context(), c.Param("id"), query.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeProducts(c, http.StatusOK, products, "")
}

// Trending returns products ranked by interaction volume and rating
func (h *Handler) Trending(c *gin.Context) {
	if h.services.Trending == nil {
		notConfigured(c, "trending")
		return
	}

	var query LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	products, err := h.services.Trending.Trending(c.Request.Context(), query.Limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeProducts(c, http.StatusOK, products, "Trending products")
}

// TrackInteraction accepts an interaction for background delivery
func (h *Handler) TrackInteraction(c *gin.Context) {
	if h.services.Tracking == nil {
		notConfigured(c, "tracking")
		return
	}

	var body InteractionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	interaction, err := h.services.Tracking.Track(c.Request.Context(), domain.Interaction{
		UserID:    body.UserID,
		ProductID: body.ProductID,
		Kind:      domain.InteractionKind(body.InteractionType),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  statusSuccess,
		"id":      interaction.ID,
		"message": "Interaction tracked successfully",
	})
}

// GetPreferences returns the stored preferences of a user
func (h *Handler) GetPreferences(c *gin.Context) {
	if h.services.Profiles == nil {
		notConfigured(c, "profiles")
		return
	}

	pref, err := h.services.Profiles.GetPreference(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      statusSuccess,
		"userId":      c.Param("id"),
		"preferences": pref,
	})
}

// SavePreferences replaces the stored preferences of a user
func (h *Handler) SavePreferences(c *gin.Context) {
	if h.services.Profiles == nil {
		notConfigured(c, "profiles")
		return
	}

	var body PreferenceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	pref := domain.UserPreference{
		Interests:    body.Interests,
		FashionStyle: body.FashionStyle,
		Gender:       body.Gender,
	}
	if err := h.services.Profiles.SavePreference(c.Request.Context(), c.Param("id"), pref); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Preferences saved",
	})
}

// UserRecommendations ranks products for a user's stored preferences
func (h *Handler) UserRecommendations(c *gin.Context) {
	if h.services.Profiles == nil {
		notConfigured(c, "profiles")
		return
	}

	var query FilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err)
		return
	}

	filters := domain.ParseFilterCriteria(query.Category, query.PriceRange, query.Source)
	products, err := h.services.Profiles.RecommendForUser(c.Request.Context(), c.Param("id"), filters)
	if err != nil {
		h.writeError(c, err)
		return
	}

	products = usecase.SortProducts(products, domain.ParseSortOrder(query.Sort))
	writeProducts(c, http.StatusOK, products, "Recommendations ranked for your profile")
}

// writeProducts renders the product envelope, substituting the placeholder for missing images
func writeProducts(c *gin.Context, status int, products []domain.Product, message string) {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		p.Image = p.DisplayImage()
		out[i] = p
	}

	c.JSON(status, ProductsResponse{
		Status:   statusSuccess,
		Count:    len(out),
		Products: out,
		Message:  message,
	})
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidInteraction):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrProfileNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrRecommendationUnavailable), errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusServiceUnavailable
		message = "products are temporarily unavailable"
	}

	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("[HTTP] Request failed")
	}

	c.JSON(status, ErrorResponse{Status: statusError, Message: message})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: statusError, Message: "invalid request: " + err.Error()})
}

func notConfigured(c *gin.Context, feature string) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Status: statusError, Message: feature + " not configured"})
}
