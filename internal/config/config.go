package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Logging
	LogLevel  string
	LogPretty bool
	LogFile   string // optional, appended to in addition to stdout

	// Rate limiting
	RateLimitType   string // "memory" or "redis"
	RateLimit       int    // number of requests allowed
	RateLimitWindow int    // time window in seconds

	// Geo data source
	DatasourceType string // "http", "file", or "mysql"
	GeoBaseURL     string // host serving /json/geo_bounding_boxes.json and /json/geo/<CODE>.json
	GeoDataDir     string // directory with geo_bounding_boxes.json and geo/<CODE>.json

	// MySQL configuration
	MySQLDSN string

	// Optional Redis cache layer in front of the data source ("none" or "redis")
	GeoCache string

	// Redis configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// FetchTimeout bounds a single bounding-box or country-feature fetch
	FetchTimeout time.Duration

	// AlertTTL is how long a load-failure message stays visible at /v1/alerts
	AlertTTL time.Duration

	// BatchConcurrency caps parallel resolutions in one batch request
	BatchConcurrency int

	// WarmIndex loads the bounding-box dataset at startup instead of on first lookup
	WarmIndex bool
}

// Load reads configuration from environment variables
// with sensible defaults
func Load() *Config {
	// Load .env file if it exists (for local development)
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "3000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		LogFile:   getEnv("LOG_FILE", ""),

		// Rate limiting (default: memory, 20 requests per 1 second)
		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 20),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		DatasourceType: getEnv("DATASOURCE_TYPE", "file"),
		GeoBaseURL:     getEnv("GEO_BASE_URL", "http://localhost:5173"),
		GeoDataDir:     getEnv("GEO_DATA_DIR", "./data/json"),

		MySQLDSN: getEnv("MYSQL_DSN", ""),

		GeoCache: getEnv("GEO_CACHE", "none"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		FetchTimeout: time.Duration(getEnvAsFloat("FETCH_TIMEOUT_SECONDS", 10) * float64(time.Second)),
		AlertTTL:     time.Duration(getEnvAsFloat("ALERT_TTL_SECONDS", 5) * float64(time.Second)),

		BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 8),
		WarmIndex:        getEnvAsBool("WARM_INDEX", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer
// Returns default if not set or invalid
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsFloat reads an environment variable as a float64
// Returns default if not set, invalid or not positive
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

// getEnvAsBool reads an environment variable as a bool ("true", "1", "false", "0", ...)
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
