package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr     string
	CORSOrigins    string // Comma-separated allowed origins, "*" for any
	RateLimitMax   int    // Requests per minute per IP
	RedisURL       string // Rate limiter storage; in-memory when empty
	MetricsEnabled bool
	MaxQueryLength int

	// Sources
	ConfigFile   string // YAML file listing the PDF sources
	FetchTimeout time.Duration

	// Extraction and indexing
	RecordsPath      string
	IndexPath        string
	IndexDatabaseURL string // Postgres target for the index builder; SQLite when empty

	// Logging
	LogLevel string
	LogJSON  bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	loadDotEnv(".env")

	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":8000"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 100),
		RedisURL:       getEnv("REDIS_URL", ""),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MaxQueryLength: getEnvInt("MAX_QUERY_LENGTH", 1000),

		ConfigFile:   getEnv("CONFIG_FILE", "sources.yaml"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),

		RecordsPath:      getEnv("RECORDS_PATH", "data/records.json"),
		IndexPath:        getEnv("INDEX_PATH", "data/poc.db"),
		IndexDatabaseURL: getEnv("INDEX_DATABASE_URL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnv("LOG_JSON", "") != "",
	}
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// AllowedOrigins splits CORSOrigins into a list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}
