package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	HTTPPort         int           `validate:"min=1,max=65535"`
	GRPCPort         int           `validate:"min=0,max=65535"` // 0 disables gRPC
	ContentDir       string        `validate:"required"`
	LogLevel         string        `validate:"oneof=debug info warn error"`
	LogFormat        string        `validate:"oneof=json console"`
	Environment      string        `validate:"required"`
	ReloadInterval   time.Duration `validate:"gte=0"` // 0 disables hot reload
	StartingGold     int64         `validate:"gte=0"`
	SessionCacheSize int           `validate:"gt=0"`
	SessionTTL       time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		ContentDir:  getEnv("CONTENT_DIR", "configs/content"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Environment: getEnv("ENVIRONMENT", "dev"),
	}

	var err error
	if cfg.HTTPPort, err = getInt("HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.GRPCPort, err = getInt("GRPC_PORT", 9090); err != nil {
		return nil, err
	}
	if cfg.SessionCacheSize, err = getInt("SESSION_CACHE_SIZE", 10000); err != nil {
		return nil, err
	}
	gold, err := getInt("STARTING_GOLD", 1000)
	if err != nil {
		return nil, err
	}
	cfg.StartingGold = int64(gold)
	if cfg.ReloadInterval, err = getDuration("RELOAD_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
