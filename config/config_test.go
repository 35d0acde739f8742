package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("API_TIMEOUT", "")
	cfg := Load()
	if cfg.CacheBackend != "memory" {
		t.Errorf("CacheBackend = %q", cfg.CacheBackend)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.LoginPath != "/auth/login" {
		t.Errorf("LoginPath = %q", cfg.LoginPath)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("BATCH_CONCURRENCY", "not-a-number")
	t.Setenv("COOKIE_SECURE", "yes-please")
	t.Setenv("APP_URL", "https://festify.example.com/")
	cfg := Load()
	if cfg.CacheBackend != "redis" {
		t.Errorf("CacheBackend = %q", cfg.CacheBackend)
	}
	if cfg.APITimeout != 2*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.BatchConcurrency != 4 {
		t.Errorf("BatchConcurrency fallback = %d", cfg.BatchConcurrency)
	}
	if cfg.CookieSecure {
		t.Error("invalid bool should fall back to false")
	}
	if got := cfg.RootURL(); got != "https://festify.example.com/" {
		t.Errorf("RootURL = %q", got)
	}
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", got)
	}
}
