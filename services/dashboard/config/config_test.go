package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CATALOG_URL", "http://example.test/sensor-summary.json")
	t.Setenv("DATA_BASE_URL", "http://example.test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 8080 || cfg.ValueField != "P1" || cfg.FetchTimeout != 30*time.Second {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr())
	}
}

func TestLoadRequiresCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_URL", "")
	t.Setenv("DATA_BASE_URL", "http://example.test")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail without CATALOG_URL")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	setRequired(t)
	t.Setenv("FETCH_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail on unparseable FETCH_TIMEOUT")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Load should fail on non-positive PORT")
	}
}

func TestDataURL(t *testing.T) {
	cfg := Config{DataBaseURL: "http://example.test/base/"}

	if got := cfg.DataURL("/data/foo.csv"); got != "http://example.test/base/data/foo.csv" {
		t.Fatalf("DataURL = %q", got)
	}
	if got := cfg.DataURL("https://cdn.test/foo.csv"); got != "https://cdn.test/foo.csv" {
		t.Fatalf("absolute DataURL = %q", got)
	}
}
