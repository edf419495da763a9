package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrProfileNotFound is returned when no preference record exists for a user
	ErrProfileNotFound = errors.New("profile not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRemoteUnavailable is returned when a remote catalog API call fails
	ErrRemoteUnavailable = errors.New("remote catalog API request failed")

	// ErrRecommendationUnavailable is returned when both the remote and local recommenders fail
	ErrRecommendationUnavailable = errors.New("recommendations unavailable")

	// ErrCatalogUnavailable is returned when neither the remote listing nor the local catalog can serve products
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrMalformedCatalog is returned when the local catalog cannot be loaded
	ErrMalformedCatalog = errors.New("malformed local catalog")

	// ErrInvalidInteraction is returned when an interaction is missing required fields
	ErrInvalidInteraction = errors.New("invalid interaction")
)
