package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if cfg.TTL != 30*time.Second {
		t.Fatalf("TTL: got %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix != "cache" {
		t.Fatalf("prefix: got %q", cfg.Prefix)
	}
	if cfg.MaxBodyBytes != 1048576 {
		t.Fatalf("max body: got %d", cfg.MaxBodyBytes)
	}
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_PREFIX", "catalog")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Fatal("cache should be disabled")
	}
	if cfg.TTL != 2*time.Minute {
		t.Fatalf("TTL: got %v, want 2m", cfg.TTL)
	}
	if cfg.Prefix != "catalog" {
		t.Fatalf("prefix: got %q", cfg.Prefix)
	}
}

func TestLoadCacheConfigBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	if cfg := LoadCacheConfig(); cfg.TTL != time.Second {
		t.Fatalf("TTL fallback: got %v, want 1s", cfg.TTL)
	}
}
