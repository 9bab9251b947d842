package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Fetch backends accepted by FETCH_MODE.
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Zone is one named neighbourhood and the listing path it is scraped from.
type Zone struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Selectors locate the listing fields inside a results page.
type Selectors struct {
	Listing    string `yaml:"listing"`
	Price      string `yaml:"price"`
	Detail     string `yaml:"detail"`
	Link       string `yaml:"link"`
	AreaMarker string `yaml:"area_marker"`
}

// Config holds all application configuration loaded from environment variables
// and, optionally, a YAML scraper file.
type Config struct {
	BaseURL        string
	City           string
	AcceptLanguage string
	Zones          []Zone
	UserAgents     []string
	Selectors      Selectors

	FetchMode      string
	RequestTimeout time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	ChromeBin      string

	OutputDir string
	LogLevel  string
	LogColor  bool
}

// DefaultZones are the Torrevieja neighbourhoods scraped when no scraper file
// overrides them.
var DefaultZones = []Zone{
	{Name: "playa_del_cura", Path: "/venta-viviendas/torrevieja-alicante/playa-del-cura/"},
	{Name: "centro", Path: "/venta-viviendas/torrevieja-alicante/centro/"},
	{Name: "acequion", Path: "/venta-viviendas/torrevieja-alicante/acequion/"},
	{Name: "playa_los_locos", Path: "/venta-viviendas/torrevieja-alicante/playa-los-locos/"},
}

var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
}

var DefaultSelectors = Selectors{
	Listing:    "div.item-info-container",
	Price:      "span.item-price",
	Detail:     "span.item-detail",
	Link:       "a.item-link",
	AreaMarker: "m",
}

// Load reads the .env file and returns a populated Config struct. When
// SCRAPER_CONFIG points at a YAML file its zones, user agents and selectors
// replace the built-in defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{
		BaseURL:        strings.TrimRight(getEnv("PORTAL_BASE_URL", "https://www.idealista.com"), "/"),
		City:           getEnv("CITY", "torrevieja"),
		AcceptLanguage: getEnv("ACCEPT_LANGUAGE", "es-ES,es;q=0.9"),
		Zones:          append([]Zone(nil), DefaultZones...),
		UserAgents:     append([]string(nil), DefaultUserAgents...),
		Selectors:      DefaultSelectors,

		FetchMode:      strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		MinDelay:       time.Duration(getEnvInt("MIN_DELAY_MS", 3000)) * time.Millisecond,
		MaxDelay:       time.Duration(getEnvInt("MAX_DELAY_MS", 5000)) * time.Millisecond,
		ChromeBin:      getEnv("CHROME_BIN", ""),

		OutputDir: getEnv("OUTPUT_DIR", "data"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogColor:  getEnvBool("LOG_COLOR", true),
	}

	if cfg.MaxDelay < cfg.MinDelay {
		log.Printf("[config] MAX_DELAY_MS below MIN_DELAY_MS, using %v for both", cfg.MinDelay)
		cfg.MaxDelay = cfg.MinDelay
	}

	if path := getEnv("SCRAPER_CONFIG", ""); path != "" {
		if err := cfg.ApplyScraperFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ZoneURL returns the absolute listing URL for the zone.
func (c *Config) ZoneURL(z Zone) string {
	path := z.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			log.Printf("[config] Invalid bool for %s=%q, using default %t", key, val, fallback)
			return fallback
		}
		return b
	}
	return fallback
}
