package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "5175" {
		t.Errorf("Port = %q; want 5175", cfg.Port)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v; want 12h", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMin != 120 || cfg.DisplayLocale != "lv" || cfg.RNGSeed != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LISTINGS_FILE", "/data/riga.csv")
	t.Setenv("RNG_SEED", "42")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" || cfg.SessionTTL != 30*time.Minute || cfg.ListingsFile != "/data/riga.csv" || cfg.RNGSeed != 42 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")
	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
