package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	ServerPort  string
	Env         string
	DatabaseURL string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Access and refresh tokens are signed with independent secrets.
	AccessSecret  string
	RefreshSecret string
	// Raw lifetime labels as configured (e.g. "15m", "7d"); the access label
	// is echoed back to clients as expiresIn.
	AccessExpiresIn  string
	RefreshExpiresIn string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	accessExpiresIn := getEnv("JWT_ACCESS_EXPIRES_IN", "15m")
	refreshExpiresIn := getEnv("JWT_REFRESH_EXPIRES_IN", "7d")

	return &Config{
		ServerPort:       getEnv("PORT", "3000"),
		Env:              getEnv("APP_ENV", "development"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=tennistrivia port=5432 sslmode=disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		AccessSecret:     getEnv("JWT_ACCESS_SECRET", "change-me-access"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
		AccessExpiresIn:  accessExpiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		AccessTTL:        lifetimeOrDefault(accessExpiresIn, 15*time.Minute),
		RefreshTTL:       lifetimeOrDefault(refreshExpiresIn, 7*24*time.Hour),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func lifetimeOrDefault(s string, def time.Duration) time.Duration {
	d, err := ParseLifetime(s)
	if err != nil {
		return def
	}
	return d
}

// ParseLifetime parses a token lifetime label such as "15m", "12h" or "7d".
// On top of time.ParseDuration syntax it accepts a "d" suffix for whole days.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("parse lifetime %q: %w", s, err)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse lifetime %q: %w", s, err)
	}
	return d, nil
}
