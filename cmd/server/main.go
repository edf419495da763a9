package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stylelens/backend/config"
	httpDelivery "github.com/stylelens/backend/internal/delivery/http"
	"github.com/stylelens/backend/internal/domain"
	"github.com/stylelens/backend/internal/infrastructure/cache"
	"github.com/stylelens/backend/internal/infrastructure/catalog"
	"github.com/stylelens/backend/internal/infrastructure/catalogapi"
	"github.com/stylelens/backend/internal/infrastructure/store"
	"github.com/stylelens/backend/internal/logging"
	"github.com/stylelens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Str("profile_store", cfg.Profile.Store).
		Msg("[SERVER] Starting StyleLens Backend v1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("[SERVER] Exited with error")
	}
}

// run wires the application and serves until ctx is cancelled
func run(ctx context.Context, cfg *config.Config) error {
	local, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	logging.Info().Int("products", local.Size()).Msg("[CATALOG] Local catalog loaded")

	listingCache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache()

	profiles, interactions, closeStores, err := newStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	// Remote catalog API is optional; without it every path serves locally
	var (
		remoteRecommender domain.Recommender
		remoteListing     domain.ListingSource
		sinks             = []usecase.NamedSink{{Name: "store", Sink: interactions}}
	)
	if cfg.CatalogAPI.BaseURL != "" {
		client := catalogapi.NewClient(catalogapi.ClientConfig{
			BaseURL:           cfg.CatalogAPI.BaseURL,
			Timeout:           cfg.CatalogAPI.Timeout,
			RequestsPerSecond: cfg.CatalogAPI.RequestsPerSecond,
			Burst:             cfg.CatalogAPI.Burst,
			MaxAttempts:       cfg.CatalogAPI.MaxAttempts,
		})
		remoteRecommender, remoteListing = client, client

		if cfg.Breaker.Enabled {
			breakerCfg := catalogapi.BreakerConfig{
				MaxRequests:  cfg.Breaker.MaxRequests,
				Interval:     cfg.Breaker.Interval,
				Timeout:      cfg.Breaker.Timeout,
				MinRequests:  cfg.Breaker.MinRequests,
				FailureRatio: cfg.Breaker.FailureRatio,
			}
			remoteRecommender = catalogapi.NewBreakerRecommender(client, breakerCfg)
			remoteListing = catalogapi.NewBreakerListing(client, breakerCfg)
		}

		if cfg.Tracking.ForwardRemote {
			sinks = append(sinks, usecase.NamedSink{Name: "catalog-api", Sink: client})
		}
		logging.Info().Str("base_url", cfg.CatalogAPI.BaseURL).Bool("breaker", cfg.Breaker.Enabled).Msg("[CATALOG API] Remote catalog configured")
	} else {
		logging.Warn().Msg("[CATALOG API] No base URL configured, serving from the local catalog only")
	}

	// Initialize usecase layer
	ranker := usecase.NewRanker(usecase.RankerConfig{
		MaxResults:         cfg.Recommender.MaxResults,
		EnableDebugLogging: cfg.Recommender.DebugRanking,
	})
	recommendations := usecase.NewRecommendationService(
		remoteRecommender,
		usecase.NewLocalRecommender(local, ranker),
		usecase.RecommendationServiceConfig{RemoteTimeout: cfg.Recommender.RemoteTimeout},
	)
	tracking := usecase.NewTrackingService(sinks, usecase.TrackingServiceConfig{
		DeliveryTimeout: cfg.Tracking.DeliveryTimeout,
	})

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Recommendations: recommendations,
		Listing: usecase.NewListingService(remoteListing, local, listingCache, usecase.ListingServiceConfig{
			CacheTTL:         cfg.Cache.TTL,
			FanoutCategories: cfg.Catalog.FanoutCategories,
		}),
		Similarity: usecase.NewSimilarityService(local),
		Trending:   usecase.NewTrendingService(local, interactions),
		Tracking:   tracking,
		Profiles:   usecase.NewProfileService(profiles, recommendations),
	})

	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("[SERVER] Listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logging.Info().Msg("[SERVER] Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("[SERVER] Graceful shutdown failed")
	}

	// Let in-flight interaction deliveries finish before the stores close
	tracking.Wait()
	logging.Info().Msg("[SERVER] Stopped")
	return nil
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.LocalCatalog, error) {
	if cfg.Path != "" {
		return catalog.LoadLocalCatalog(cfg.Path)
	}
	return catalog.NewLocalCatalog()
}

func newCache(ctx context.Context, cfg config.CacheConfig) (domain.CacheRepository, func(), error) {
	if cfg.Type == "redis" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(connectCtx, cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache(cfg.CleanupInterval)
	return memoryCache, func() { _ = memoryCache.Close() }, nil
}

func newStores(ctx context.Context, cfg *config.Config) (domain.ProfileRepository, domain.InteractionRepository, func(), error) {
	if cfg.Profile.Store == "mongo" {
		connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		db, err := store.NewConnection(connectCtx, cfg.Profile.MongoURI, cfg.Profile.Database)
		if err != nil {
			return nil, nil, nil, err
		}

		interactions := store.NewMongoInteractionStore(db)
		if err := interactions.EnsureIndexes(connectCtx); err != nil {
			logging.Warn().Err(err).Msg("[STORE] Could not create interaction indexes")
		}

		closeDB := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(closeCtx)
		}
		return store.NewMongoProfileStore(db), interactions, closeDB, nil
	}

	return store.NewMemoryProfileStore(), store.NewMemoryInteractionStore(cfg.Tracking.MaxInteractions), func() {}, nil
}
