package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Loan service
	APIBaseURL   string
	APITimeout   time.Duration
	ServiceToken string

	// Session tokens
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Document ledger, optional
	DatabaseURL string

	// Document archive, optional
	S3 S3Config

	ChatPollInterval time.Duration
	RateLimit        RateLimitConfig
	Brand            BrandConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether an archive bucket is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// RateLimitConfig bounds requests per session
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// BrandConfig is printed on generated documents
type BrandConfig struct {
	Name     string
	Email    string
	Contact  string
	Address  string
	LogoPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:   getEnv("SMARTLEND_API_URL", ""),
		APITimeout:   getDuration("SMARTLEND_API_TIMEOUT", 15*time.Second),
		ServiceToken: getEnv("SMARTLEND_SERVICE_TOKEN", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTIssuer:    getEnv("JWT_ISSUER", "smartlend"),
		JWTAudience:  getEnv("JWT_AUDIENCE", "smartlend-portal"),
		Port:         getEnv("PORT", "8081"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:          getEnv("ENV", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "ap-south-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		ChatPollInterval: getDuration("CHAT_POLL_INTERVAL", 3*time.Second),
		RateLimit: RateLimitConfig{
			PerMinute: getInt("RATE_LIMIT_PER_MINUTE", 120),
			Burst:     getInt("RATE_LIMIT_BURST", 20),
		},
		Brand: BrandConfig{
			Name:     getEnv("BRAND_NAME", "SmartLend"),
			Email:    getEnv("BRAND_EMAIL", "support@smartlend.app"),
			Contact:  getEnv("BRAND_CONTACT", ""),
			Address:  getEnv("BRAND_ADDRESS", ""),
			LogoPath: getEnv("BRAND_LOGO_PATH", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("SMARTLEND_API_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTIssuer == "" || c.JWTAudience == "" {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE must not be empty")
	}
	if c.ChatPollInterval <= 0 {
		return fmt.Errorf("CHAT_POLL_INTERVAL must be positive")
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("3s") or plain seconds ("3")
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
