package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("expected default sqlite driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected default json log format, got %s", cfg.Log.Format)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRIFTWELL_SERVER_PORT", "9090")
	t.Setenv("DRIFTWELL_STORAGE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090 from env, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected memory driver from env, got %s", cfg.Storage.Driver)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DRIFTWELL_STORAGE_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown storage driver")
	}
}

func TestCORSOrigins(t *testing.T) {
	c := CORSConfig{}
	if got := c.Origins(); got != nil {
		t.Errorf("expected nil for empty origins, got %v", got)
	}

	c = CORSConfig{AllowedOrigins: "https://a.example,https://b.example"}
	got := c.Origins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("expected two origins split on comma, got %v", got)
	}
}
