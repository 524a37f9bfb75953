package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:              "test",
		HTTPPort:         "8080",
		DatabaseURL:      "postgres://localhost/mecaflow",
		RedisAddr:        "localhost:6379",
		SessionTTL:       30 * time.Minute,
		ResetTokenTTL:    time.Hour,
		ChatMinSpacing:   2 * time.Second,
		WorkshopTZOffset: -6 * 60,
		CookieSameSite:   "lax",
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsMissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateRejectsBadSameSite(t *testing.T) {
	cfg := validConfig()
	cfg.CookieSameSite = "always"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid COOKIE_SAMESITE")
	}
}

func TestValidateRejectsImpossibleOffset(t *testing.T) {
	cfg := validConfig()
	cfg.WorkshopTZOffset = 20 * 60
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for impossible UTC offset")
	}
}

func TestWorkshopLocationBucketsDaysInFixedZone(t *testing.T) {
	cfg := validConfig()
	loc := cfg.WorkshopLocation()

	// 04:30 UTC is still the previous civil day at UTC-6.
	instant := time.Date(2025, 3, 11, 4, 30, 0, 0, time.UTC)
	local := instant.In(loc)
	if local.Year() != 2025 || local.Month() != 3 || local.Day() != 10 {
		t.Fatalf("expected local civil date 2025-03-10, got %v", local)
	}
}
