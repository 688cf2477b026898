package config

import (
	"os"
	"strings"
)

// defaultVerifyURL is Cloudflare's Turnstile siteverify endpoint.
// Overridable via TURNSTILE_VERIFY_URL so tests can point at a fake.
const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSAccessKeyID string
	AWSSecretKey   string

	// DatabaseURL, when set, points the DynamoDB client at a non-default
	// endpoint (LocalStack etc.). DatabaseName is a logical label; the
	// diagnostic endpoint reports both as set/not-set.
	DatabaseURL   string
	DatabaseName  string
	WaitlistTable string

	TurnstileSecret    string
	TurnstileVerifyURL string

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "8000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DatabaseName:  getEnv("DATABASE_NAME", ""),
		WaitlistTable: getEnv("DYNAMO_TABLE_WAITLIST", "waitlist"),

		TurnstileSecret:    getEnv("TURNSTILE_SECRET_KEY", ""),
		TurnstileVerifyURL: getEnv("TURNSTILE_VERIFY_URL", defaultVerifyURL),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
