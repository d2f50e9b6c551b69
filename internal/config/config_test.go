package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUANTAROUTE_MODE", "")
	t.Setenv("QUANTAROUTE_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8000" || cfg.Timeout != 30*time.Second || cfg.RouteCacheTTL != 10*time.Minute {
		t.Fatalf("defaults = %+v", cfg)
	}

	b := cfg.Backend()
	if b.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("BaseURL = %q", b.BaseURL)
	}
	if b.HealthURL() != "http://localhost:8080/health" {
		t.Fatalf("HealthURL = %q", b.HealthURL())
	}
	if b.Authorization() != "" {
		t.Fatalf("Authorization = %q, want empty", b.Authorization())
	}
}

func TestLoadRemoteWithKeyAndOverride(t *testing.T) {
	t.Setenv("QUANTAROUTE_MODE", "Remote")
	t.Setenv("QUANTAROUTE_API_KEY", "secret")
	t.Setenv("QUANTAROUTE_TIMEOUT", "5s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	b := cfg.Backend()
	if b.BaseURL != "https://routing.api.quantaroute.com/v1" || b.Timeout != 5*time.Second {
		t.Fatalf("backend = %+v", b)
	}
	if b.Authorization() != "Bearer secret" {
		t.Fatalf("Authorization = %q", b.Authorization())
	}
	if cfg.RedisDB != 2 {
		t.Fatalf("RedisDB = %d, want 2", cfg.RedisDB)
	}

	t.Setenv("QUANTAROUTE_API_URL", "http://10.0.0.5:9000/v1/")
	cfg, _ = Load()
	if got := cfg.Backend().BaseURL; got != "http://10.0.0.5:9000/v1" {
		t.Fatalf("override BaseURL = %q", got)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("QUANTAROUTE_MODE", "staging")
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestGet(t *testing.T) {
	t.Setenv("SOME_KEY", "x")
	if Get("SOME_KEY", "y") != "x" || Get("MISSING_KEY_FOR_TEST", "y") != "y" {
		t.Fatalf("Get fallback broken")
	}
}
