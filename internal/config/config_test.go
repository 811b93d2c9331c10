// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so tests see pure defaults.
// envOrDefault treats empty the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"GENZET_API_URL",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"QUERY_TTL_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Host != "0.0.0.0" || cfg.Port != "3000" {
		t.Errorf("addr defaults: got %s", cfg.Addr())
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("Env default: got %q", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("APIBaseURL default: got %q", cfg.APIBaseURL)
	}
	if cfg.UseValkey() {
		t.Error("UseValkey should be false when VALKEY_HOST is unset")
	}
	if cfg.QueryTTL != 30*time.Second {
		t.Errorf("QueryTTL default: got %v", cfg.QueryTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8081")
	t.Setenv("GENZET_API_URL", "https://api.genzet.example/api")
	t.Setenv("VALKEY_HOST", "cache.internal")
	t.Setenv("QUERY_TTL_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Port != "8081" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.APIBaseURL != "https://api.genzet.example/api" {
		t.Errorf("APIBaseURL: got %q", cfg.APIBaseURL)
	}
	if !cfg.UseValkey() {
		t.Error("UseValkey should be true when VALKEY_HOST is set")
	}
	if cfg.QueryTTL != 2*time.Minute {
		t.Errorf("QueryTTL: got %v", cfg.QueryTTL)
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	clearEnv(t)

	for _, bad := range []string{"abc", "-5", "0"} {
		t.Setenv("QUERY_TTL_SECONDS", bad)
		if _, err := Load(); err == nil {
			t.Errorf("Load with QUERY_TTL_SECONDS=%q: expected error", bad)
		}
	}
}

func TestLoadProductionRequiresAPIURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load in production without GENZET_API_URL: expected error")
	}

	t.Setenv("GENZET_API_URL", "https://api.genzet.example/api")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev should be false in production")
	}
}
