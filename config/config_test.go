package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "")
	t.Setenv("MIN_DELAY_MS", "")
	t.Setenv("MAX_DELAY_MS", "")
	t.Setenv("SCRAPER_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://www.idealista.com" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if len(cfg.Zones) != 4 || cfg.Zones[0].Name != "playa_del_cura" {
		t.Errorf("Zones: got %+v", cfg.Zones)
	}
	if cfg.MinDelay != 3*time.Second || cfg.MaxDelay != 5*time.Second {
		t.Errorf("delay range: got %v-%v, want 3s-5s", cfg.MinDelay, cfg.MaxDelay)
	}
	if cfg.Selectors != DefaultSelectors {
		t.Errorf("Selectors: got %+v", cfg.Selectors)
	}
}

func TestLoadClampsInvertedDelay(t *testing.T) {
	t.Setenv("MIN_DELAY_MS", "4000")
	t.Setenv("MAX_DELAY_MS", "1000")
	t.Setenv("SCRAPER_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDelay != 4*time.Second {
		t.Errorf("MaxDelay: got %v, want 4s", cfg.MaxDelay)
	}
}

func TestZoneURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://portal.example"}

	tests := []struct {
		path string
		want string
	}{
		{"/venta-viviendas/x/centro/", "https://portal.example/venta-viviendas/x/centro/"},
		{"venta-viviendas/x/centro/", "https://portal.example/venta-viviendas/x/centro/"},
	}
	for _, tt := range tests {
		if got := cfg.ZoneURL(Zone{Name: "centro", Path: tt.path}); got != tt.want {
			t.Errorf("ZoneURL(%q) = %q; want %q", tt.path, got, tt.want)
		}
	}
}

func TestApplyScraperFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.yaml")
	body := `
zones:
  - name: la_mata
    path: /venta-viviendas/torrevieja-alicante/la-mata/
user_agents:
  - "agent-a"
selectors:
  price: span.price-row
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Zones: DefaultZones, UserAgents: DefaultUserAgents, Selectors: DefaultSelectors}
	if err := cfg.ApplyScraperFile(path); err != nil {
		t.Fatalf("ApplyScraperFile: %v", err)
	}

	if len(cfg.Zones) != 1 || cfg.Zones[0].Name != "la_mata" {
		t.Errorf("Zones: got %+v", cfg.Zones)
	}
	if len(cfg.UserAgents) != 1 || cfg.UserAgents[0] != "agent-a" {
		t.Errorf("UserAgents: got %v", cfg.UserAgents)
	}
	if cfg.Selectors.Price != "span.price-row" {
		t.Errorf("Price selector: got %q", cfg.Selectors.Price)
	}
	if cfg.Selectors.Listing != DefaultSelectors.Listing {
		t.Errorf("Listing selector should keep default, got %q", cfg.Selectors.Listing)
	}
}

func TestApplyScraperFileRejectsDuplicateZone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.yaml")
	body := `
zones:
  - {name: centro, path: /a/}
  - {name: centro, path: /b/}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	if err := cfg.ApplyScraperFile(path); err == nil {
		t.Error("expected error for duplicate zone name")
	}
}

func TestApplyScraperFileMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ApplyScraperFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
