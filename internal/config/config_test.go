package config

import (
	"testing"
	"time"

	"github.com/Adda-Baaj/simple-uber/pkg/uber"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UBER_TOKEN", " secret ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIToken != "secret" {
		t.Fatalf("APIToken = %q", cfg.APIToken)
	}
	if cfg.BaseURL() != uber.ProductionAPI {
		t.Fatalf("BaseURL = %s", cfg.BaseURL())
	}
	if cfg.APIVersion != "v1" {
		t.Fatalf("APIVersion = %s", cfg.APIVersion)
	}
	if cfg.WatchInterval != time.Minute {
		t.Fatalf("WatchInterval = %v", cfg.WatchInterval)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if err := cfg.RequireToken(); err != nil {
		t.Fatalf("RequireToken: %v", err)
	}
	if v := cfg.MarshalLog()["token_set"]; v != true {
		t.Fatalf("token_set = %v", v)
	}
}

func TestLoadSandboxAndOverride(t *testing.T) {
	t.Setenv("API_ENVIRONMENT", "Sandbox")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL() != uber.SandboxAPI {
		t.Fatalf("BaseURL = %s", cfg.BaseURL())
	}

	t.Setenv("API_BASE_URL", "http://localhost:8080")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL() != "http://localhost:8080" {
		t.Fatalf("BaseURL = %s", cfg.BaseURL())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"API_ENVIRONMENT":      "staging",
		"WATCH_INTERVAL":       "0",
		"HTTP_TIMEOUT_SECONDS": "-1",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}

func TestRequireTokenEmpty(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireToken(); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
