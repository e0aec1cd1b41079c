package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides the application configuration.
var Module = fx.Provide(Load)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	CORSOrigins []string

	OTLPEndpoint string

	StoreDriver  string
	MongoURL     string
	DatabaseName string

	AgentEndpoint string
	AgentAPIKey   string
	AgentModel    string
	AgentTimeout  time.Duration

	StripeAPIKey  string
	StripePriceID string

	BasicMonthlyLimit int

	RateLimit RateLimitConfig
	Retention RetentionConfig
}

// RateLimitConfig controls the redis token bucket on search endpoints.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SearchRate    float64
	SearchBurst   int
}

// RetentionConfig controls the periodic old-record sweep.
type RetentionConfig struct {
	Enabled  bool
	Interval time.Duration
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
	DriverNull   = "null"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "travel-agent-backend"),
		AppVersion:  getenv("APP_VERSION", "1.0.0"),
		Environment: environment,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		CORSOrigins: parseList(getenv("CORS_ORIGINS", "*")),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		StoreDriver:  normalizeDriver(getenv("STORE_DRIVER", DriverMongo), environment),
		MongoURL:     getenv("MONGODB_URL", "mongodb://localhost:27017"),
		DatabaseName: getenv("DATABASE_NAME", "travel_planner"),

		AgentEndpoint: getenv("AGENT_ENDPOINT", "https://generativelanguage.googleapis.com"),
		AgentAPIKey:   strings.TrimSpace(getenv("GOOGLE_API_KEY", "")),
		AgentModel:    getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		AgentTimeout:  getenvDuration("AGENT_TIMEOUT", 60*time.Second),

		StripeAPIKey:  strings.TrimSpace(getenv("STRIPE_API_KEY", "")),
		StripePriceID: strings.TrimSpace(getenv("STRIPE_PRICE_ID", "")),

		BasicMonthlyLimit: getenvInt("BASIC_MONTHLY_LIMIT", 15),

		RateLimit: RateLimitConfig{
			Enabled:       getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			RedisPassword: strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
			RedisDB:       getenvInt("REDIS_DB", 0),
			SearchRate:    getenvFloat("RATE_LIMIT_SEARCH_RATE", 1),
			SearchBurst:   getenvInt("RATE_LIMIT_SEARCH_BURST", 5),
		},
		Retention: RetentionConfig{
			Enabled:  getenvBool("RETENTION_SWEEP_ENABLED", true),
			Interval: getenvDuration("RETENTION_SWEEP_INTERVAL", 24*time.Hour),
		},
	}

	return cfg
}

// IsTest reports whether the process runs in offline test mode.
func (c Config) IsTest() bool {
	return strings.EqualFold(c.Environment, "test")
}

func normalizeDriver(raw, environment string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case DriverMemory, DriverNull:
		return value
	case DriverMongo:
		// Test runs never reach a live store.
		if strings.EqualFold(environment, "test") {
			return DriverNull
		}
		return DriverMongo
	default:
		return DriverMongo
	}
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
