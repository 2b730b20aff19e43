package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresRiotKey(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without RIOT_API_KEY")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "na1" || cfg.APIPort != 8000 || !cfg.CacheEnabled {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Debug {
		t.Fatal("debug defaults on")
	}
	if cfg.DiskTTL != time.Hour {
		t.Fatalf("DiskTTL = %v, want 1h", cfg.DiskTTL)
	}
}

func TestLoad_DebugFromEnvironment(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("DEBUG", "true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Debug {
		t.Fatal("DEBUG=true not reflected in config")
	}
}
