package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Gemini      GeminiConfig
	Database    DatabaseConfig
	RateLimit   RateLimitConfig
	Auth        AuthConfig
}

// GeminiConfig holds generation provider configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig holds audit database configuration
type DatabaseConfig struct {
	Enabled          bool
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// AuthConfig holds JWT configuration for the admin endpoints
type AuthConfig struct {
	JWTSecret   string
	ExpiryHours int
}

// Load loads configuration from environment variables and config files.
// A missing GEMINI_API_KEY is deliberately not an error here: credential
// absence is surfaced per request, not at startup.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("GEMINI_MODEL", "gemini-pro")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("GEMINI_TIMEOUT_SECONDS", 60)
	viper.SetDefault("AUDIT_ENABLED", true)
	viper.SetDefault("DB_CONNECTION_STRING", "./data/relay.db")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 1)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 1)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Gemini: GeminiConfig{
			APIKey:  viper.GetString("GEMINI_API_KEY"),
			Model:   viper.GetString("GEMINI_MODEL"),
			BaseURL: viper.GetString("GEMINI_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("GEMINI_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:          viper.GetBool("AUDIT_ENABLED"),
			ConnectionString: viper.GetString("DB_CONNECTION_STRING"),
			MaxOpenConns:     viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:     viper.GetInt("DB_MAX_IDLE_CONNS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Auth: AuthConfig{
			JWTSecret:   viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
