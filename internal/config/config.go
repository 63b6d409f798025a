package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTTTLHours   int
	AppEnv        string
	// AllowedOrigins lists the frontend origins permitted by CORS.
	AllowedOrigins []string
	// TrendingRefreshCron is a standard 5-field cron expression controlling
	// how often the trending flags are recomputed.
	TrendingRefreshCron string
	// TrendingTopN is how many catalog items carry the trending flag.
	TrendingTopN int
	// AuthRatePerSecond and AuthBurst bound requests per client IP on the
	// auth endpoints.
	AuthRatePerSecond float64
	AuthBurst         int
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS: %w", err)
	}

	topN, err := strconv.Atoi(getEnv("TRENDING_TOP_N", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRENDING_TOP_N: %w", err)
	}

	authRate, err := strconv.ParseFloat(getEnv("AUTH_RATE_PER_SECOND", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_RATE_PER_SECOND: %w", err)
	}

	authBurst, err := strconv.Atoi(getEnv("AUTH_BURST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_BURST: %w", err)
	}

	cfg := &Config{
		ServerPort:          port,
		MongoURI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGODB_DB", "entertainment"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret"),
		JWTTTLHours:         ttlHours,
		AppEnv:              getEnv("APP_ENV", "development"),
		AllowedOrigins:      splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		TrendingRefreshCron: getEnv("TRENDING_REFRESH_CRON", "0 * * * *"),
		TrendingTopN:        topN,
		AuthRatePerSecond:   authRate,
		AuthBurst:           authBurst,
	}

	if cfg.IsProduction() && os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
