package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	CatalogAPI  CatalogAPIConfig  `mapstructure:"catalog_api"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Profile     ProfileConfig     `mapstructure:"profile"`
	Tracking    TrackingConfig    `mapstructure:"tracking"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Breaker     BreakerConfig     `mapstructure:"breaker"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	Environment     string        `mapstructure:"environment" validate:"oneof=development staging production test"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// CatalogAPIConfig holds the remote catalog API configuration.
// An empty BaseURL disables every remote path.
type CatalogAPIConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
	MaxAttempts       int           `mapstructure:"max_attempts" validate:"gte=0,lte=10"`
}

// RecommenderConfig holds recommendation coordinator and ranking settings
type RecommenderConfig struct {
	RemoteTimeout time.Duration `mapstructure:"remote_timeout" validate:"gte=0"`
	MaxResults    int           `mapstructure:"max_results" validate:"gte=0"`
	DebugRanking  bool          `mapstructure:"debug_ranking"`
}

// CatalogConfig holds local catalog and listing settings
type CatalogConfig struct {
	Path             string `mapstructure:"path"` // empty uses the embedded catalog
	FanoutCategories bool   `mapstructure:"fanout_categories"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type            string        `mapstructure:"type" validate:"oneof=memory redis"`
	RedisURL        string        `mapstructure:"redis_url" validate:"required_if=Type redis"`
	KeyPrefix       string        `mapstructure:"key_prefix"`
	TTL             time.Duration `mapstructure:"ttl" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gte=0"`
}

// ProfileConfig holds profile and interaction store configuration
type ProfileConfig struct {
	Store    string `mapstructure:"store" validate:"oneof=memory mongo"`
	MongoURI string `mapstructure:"mongo_uri" validate:"required_if=Store mongo"`
	Database string `mapstructure:"database" validate:"required_if=Store mongo"`
}

// TrackingConfig holds interaction tracking configuration
type TrackingConfig struct {
	ForwardRemote   bool          `mapstructure:"forward_remote"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout" validate:"gte=0"`
	MaxInteractions int           `mapstructure:"max_interactions" validate:"gte=0"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip" validate:"gte=0"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

// BreakerConfig holds circuit breaker configuration for the catalog API
type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval" validate:"gte=0"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MinRequests  uint32        `mapstructure:"min_requests"`
	FailureRatio float64       `mapstructure:"failure_ratio" validate:"gte=0,lte=1"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylelens/")

	// STYLELENS_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix("STYLELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default so
// AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Catalog API defaults
	v.SetDefault("catalog_api.base_url", "")
	v.SetDefault("catalog_api.timeout", "10s")
	v.SetDefault("catalog_api.requests_per_second", 10.0)
	v.SetDefault("catalog_api.burst", 20)
	v.SetDefault("catalog_api.max_attempts", 3)

	// Recommender defaults
	v.SetDefault("recommender.remote_timeout", "5s")
	v.SetDefault("recommender.max_results", 0)
	v.SetDefault("recommender.debug_ranking", false)

	// Catalog defaults
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.fanout_categories", true)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", "stylelens:")
	v.SetDefault("cache.ttl", "15m")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Profile defaults
	v.SetDefault("profile.store", "memory")
	v.SetDefault("profile.mongo_uri", "")
	v.SetDefault("profile.database", "stylelens")

	// Tracking defaults
	v.SetDefault("tracking.forward_remote", true)
	v.SetDefault("tracking.delivery_timeout", "5s")
	v.SetDefault("tracking.max_interactions", 10000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.burst", 20)

	// Circuit breaker defaults
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", 3)
	v.SetDefault("breaker.interval", "1m")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.min_requests", 5)
	v.SetDefault("breaker.failure_ratio", 0.6)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// validate validates the configuration against its struct tags
func validate(config *Config) error {
	return configValidator.Struct(config)
}

// loadEnvFile copies variables from a .env file in the working directory into
// the process environment. Variables that are already set win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return err
		}
	}
	return nil
}
