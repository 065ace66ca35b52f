// Package config loads and validates environment configuration for the
// storefront service. Required variables are checked once at startup; the
// process refuses to start when any of them is missing, so a weak built-in
// fallback for the signing secret can never be used by accident.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinSecretLength is the minimum accepted length for JWT_SECRET.
const MinSecretLength = 16

// Config holds all runtime configuration for the service.
type Config struct {
	Port        int
	DatabaseURL string

	// JWTSecret signs session tokens. Required, no default.
	JWTSecret string
	TokenTTL  time.Duration

	BcryptCost int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// AllowedOrigins is the CORS origin whitelist.
	AllowedOrigins []string

	// ShopPhone is the WhatsApp number orders are sent to, in international
	// format without the leading plus.
	ShopPhone string
	ShopName  string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := ValidateEnv([]string{"JWT_SECRET", "DATABASE_URL"}); err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters", MinSecretLength)
	}

	port, err := strconv.Atoi(GetEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	bcryptCost, err := strconv.Atoi(GetEnvOrDefault("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	redisDB, err := strconv.Atoi(GetEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      secret,
		TokenTTL:       getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:     bcryptCost,
		RedisAddr:      GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		AllowedOrigins: splitAndTrim(GetEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:5173")),
		ShopPhone:      GetEnvOrDefault("SHOP_PHONE", "917668392051"),
		ShopName:       GetEnvOrDefault("SHOP_NAME", "Kesarwani General Store"),
		ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:    getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}

	return cfg, nil
}

// ValidateEnv validates that all required environment variables are set
func ValidateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		if os.Getenv(varName) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
