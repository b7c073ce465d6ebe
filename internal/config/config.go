package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	AppURL      string // Backend base URL (links in emails)
	ClientURL   string // Frontend base URL (share links and QR codes)
	ServiceName string

	JWTSecret string
	JWTTTL    int // JWT token expiration time in hours

	GroqAPIKey   string // Empty disables the AI endpoints
	GroqEndpoint string
	GroqModel    string
	AITimeout    time.Duration

	YelpAPIKey   string // Empty makes vendor search answer no businesses
	YelpEndpoint string

	ResendAPIKey string // Empty disables outgoing email
	EmailFrom    string

	LogLevel      string
	LogFormat     string // "json" or "console"
	TracingStdout bool

	RateLimitRPS       float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int     // Burst size for rate limiting
	RateLimitAuthRPS   float64 // Rate limit for auth endpoints (stricter)
	RateLimitAuthBurst int     // Burst size for auth endpoints
	RateLimitAIRPS     float64 // Rate limit for AI proxy endpoints (strictest)
	RateLimitAIBurst   int     // Burst size for AI proxy endpoints
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/vivaha?sslmode=disable"),
		RedisURL:           getEnv("REDIS_URL", ""),
		AppURL:             getEnv("APP_URL", "https://app.vivaha.co"),
		ClientURL:          getEnv("CLIENT_URL", "http://localhost:5174"),
		ServiceName:        getEnv("SERVICE_NAME", "vivaha-api"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getEnvInt("JWT_TTL_HOURS", 720), // 30 days
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqEndpoint:       getEnv("GROQ_ENDPOINT", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		AITimeout:          time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,
		YelpAPIKey:         getEnv("YELP_API_KEY", ""),
		YelpEndpoint:       getEnv("YELP_ENDPOINT", "https://api.yelp.com/v3/businesses/search"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "Vivaha <onboarding@resend.dev>"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		TracingStdout:      getEnvBool("TRACING_STDOUT", false),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		RateLimitAIRPS:     getEnvFloat("RATE_LIMIT_AI_RPS", 1),
		RateLimitAIBurst:   getEnvInt("RATE_LIMIT_AI_BURST", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
