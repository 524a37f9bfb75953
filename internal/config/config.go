package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPPort string
	BaseURL  string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL     time.Duration
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite string

	// WorkshopTZOffset is the fixed civil timezone of the workshop in
	// minutes east of UTC. Attendance days are bucketed in this zone, not
	// in the host zone.
	WorkshopTZOffset int

	ResetTokenTTL  time.Duration
	ChatMinSpacing time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		CookieDomain:     os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:     getEnvBool("COOKIE_SECURE", true),
		CookieSameSite:   strings.ToLower(getEnv("COOKIE_SAMESITE", "lax")),
		WorkshopTZOffset: getEnvInt("WORKSHOP_TZ_OFFSET_MIN", -6*60),
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = sessionTTL

	resetTTL, err := time.ParseDuration(getEnv("RESET_TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse RESET_TOKEN_TTL: %w", err)
	}
	cfg.ResetTokenTTL = resetTTL

	chatSpacing, err := time.ParseDuration(getEnv("CHAT_MIN_SPACING", "2s"))
	if err != nil {
		return nil, fmt.Errorf("parse CHAT_MIN_SPACING: %w", err)
	}
	cfg.ChatMinSpacing = chatSpacing

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required")
	}
	if c.SessionTTL <= 0 || c.SessionTTL > 24*time.Hour {
		errs = append(errs, "SESSION_TTL must be between 1s and 24h")
	}
	if c.ResetTokenTTL <= 0 || c.ResetTokenTTL > 24*time.Hour {
		errs = append(errs, "RESET_TOKEN_TTL must be between 1s and 24h")
	}
	if c.ChatMinSpacing < 0 {
		errs = append(errs, "CHAT_MIN_SPACING must not be negative")
	}
	if c.WorkshopTZOffset < -12*60 || c.WorkshopTZOffset > 14*60 {
		errs = append(errs, "WORKSHOP_TZ_OFFSET_MIN must be a real UTC offset")
	}
	switch c.CookieSameSite {
	case "lax", "strict", "none":
	default:
		errs = append(errs, "COOKIE_SAMESITE must be lax, strict or none")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// WorkshopLocation builds the fixed zone attendance days are observed in.
func (c *Config) WorkshopLocation() *time.Location {
	name := fmt.Sprintf("UTC%+03d:%02d", c.WorkshopTZOffset/60, abs(c.WorkshopTZOffset%60))
	return time.FixedZone(name, c.WorkshopTZOffset*60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
