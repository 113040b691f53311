package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"snakeidle/internal/catalog"
)

type Config struct {
	Port         string
	CatalogFile  string
	DownloadsDir string
	StaticDir    string
	SiteTitle    string
	VersionOrder catalog.OrderMode
	WatchCatalog bool
	LogLevel     string
	Env          string
}

// Development reports whether APP_ENV asks for human-readable logs.
func (c Config) Development() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(lookup func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:         get("APP_PORT", "5000"),
		CatalogFile:  get("CATALOG_FILE", "versions.json"),
		DownloadsDir: get("DOWNLOADS_DIR", "downloads"),
		StaticDir:    get("STATIC_DIR", "static"),
		SiteTitle:    get("SITE_TITLE", "Snake Idle"),
		LogLevel:     get("LOG_LEVEL", "info"),
		Env:          get("APP_ENV", "production"),
	}

	mode, err := catalog.ParseOrderMode(lookup("CATALOG_VERSION_ORDER"))
	if err != nil {
		return Config{}, fmt.Errorf("CATALOG_VERSION_ORDER: %w", err)
	}
	cfg.VersionOrder = mode

	if v := lookup("CATALOG_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("CATALOG_WATCH: %w", err)
		}
		cfg.WatchCatalog = b
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("APP_PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.CatalogFile == "" {
		return Config{}, errors.New("CATALOG_FILE is required")
	}
	return cfg, nil
}
