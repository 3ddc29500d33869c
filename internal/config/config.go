// Package config builds the immutable service configuration from viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/cinerelay/internal/kinopoisk"
	"github.com/lepinkainen/cinerelay/internal/poster"
	"github.com/lepinkainen/cinerelay/internal/tmdb"
)

// DefaultCORSOrigins are the frontend deployments allowed by default.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://127.0.0.1:5173",
	"https://vkluchilchill.vercel.app",
	"https://movie-frontend-rosy.vercel.app",
}

// Config is established once at startup and never mutated.
type Config struct {
	Provider       string
	APIKey         string
	APIBaseURL     string
	ImageBaseURL   string
	StorageBaseURL string
	Language       string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	RatePerSecond  int
	SSLVerify      bool
	Listen         string
	CORSOrigins    []string
	Poster         PosterConfig
	Log            LogConfig
}

// PosterConfig configures the poster relay.
type PosterConfig struct {
	AllowedHosts []string
	MaxAge       time.Duration
}

// LogConfig configures logging. An empty File logs to stdout only.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// envBindings maps config keys to environment variables, first match wins.
var envBindings = map[string][]string{
	"provider":         {"CATALOG_PROVIDER"},
	"api_key":          {"CATALOG_API_KEY", "TMDB_API_KEY", "TMDB_API_KEY_V3", "KINOPOISK_API_KEY"},
	"api_base_url":     {"CATALOG_API_BASE_URL"},
	"image_base_url":   {"TMDB_IMAGE_BASE"},
	"storage_base_url": {"FILMS_STORAGE_BASE"},
	"language":         {"CATALOG_LANGUAGE"},
	"timeout":          {"CATALOG_TIMEOUT"},
	"ssl_verify":       {"TMDB_SSL_VERIFY"},
	"listen":           {"LISTEN_ADDR"},
	"cors_origins":     {"CORS_ALLOWED_ORIGINS"},
	"log.level":        {"LOG_LEVEL"},
	"log.file":         {"LOG_FILE"},
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", tmdb.Name)
	v.SetDefault("storage_base_url", "https://flcksbr.top/film/")
	v.SetDefault("language", tmdb.DefaultLanguage)
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("retry.attempts", 3)
	v.SetDefault("retry.delay", time.Second)
	v.SetDefault("ssl_verify", "true")
	v.SetDefault("listen", ":8000")
	v.SetDefault("cors_origins", DefaultCORSOrigins)
	v.SetDefault("poster.allowed_hosts", poster.DefaultAllowedHosts)
	v.SetDefault("poster.max_age", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// Load reads and validates the configuration.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Provider:       strings.ToLower(strings.TrimSpace(v.GetString("provider"))),
		APIKey:         strings.TrimSpace(v.GetString("api_key")),
		APIBaseURL:     strings.TrimSpace(v.GetString("api_base_url")),
		ImageBaseURL:   strings.TrimSpace(v.GetString("image_base_url")),
		StorageBaseURL: strings.TrimSpace(v.GetString("storage_base_url")),
		Language:       strings.TrimSpace(v.GetString("language")),
		Timeout:        v.GetDuration("timeout"),
		RetryAttempts:  v.GetInt("retry.attempts"),
		RetryDelay:     v.GetDuration("retry.delay"),
		SSLVerify:      ParseToggle(v.GetString("ssl_verify")),
		Listen:         v.GetString("listen"),
		CORSOrigins:    stringList(v, "cors_origins"),
		Poster: PosterConfig{
			AllowedHosts: stringList(v, "poster.allowed_hosts"),
			MaxAge:       v.GetDuration("poster.max_age"),
		},
		Log: LogConfig{
			Level:      strings.ToLower(v.GetString("log.level")),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
		},
	}

	switch cfg.Provider {
	case tmdb.Name:
		cfg.APIBaseURL = orDefault(cfg.APIBaseURL, tmdb.DefaultBaseURL)
		cfg.ImageBaseURL = orDefault(cfg.ImageBaseURL, tmdb.DefaultImageBaseURL)
		cfg.RatePerSecond = tmdb.DefaultRatePerSecond
	case kinopoisk.Name:
		cfg.APIBaseURL = orDefault(cfg.APIBaseURL, kinopoisk.DefaultBaseURL)
		cfg.ImageBaseURL = orDefault(cfg.ImageBaseURL, kinopoisk.DefaultImageBaseURL)
		cfg.RatePerSecond = kinopoisk.DefaultRatePerSecond
	default:
		return Config{}, fmt.Errorf("unknown provider %q (expected %s or %s)", cfg.Provider, tmdb.Name, kinopoisk.Name)
	}
	if v.IsSet("rate_per_second") {
		cfg.RatePerSecond = v.GetInt("rate_per_second")
	}

	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.RetryAttempts < 1 {
		return Config{}, fmt.Errorf("retry.attempts must be at least 1, got %d", cfg.RetryAttempts)
	}
	for key, raw := range map[string]string{
		"api_base_url":     cfg.APIBaseURL,
		"image_base_url":   cfg.ImageBaseURL,
		"storage_base_url": cfg.StorageBaseURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
	}

	return cfg, nil
}

// ParseToggle reads an on/off flag. Only 0, false, no and off disable it.
func ParseToggle(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

// stringList accepts both YAML lists and comma separated strings.
func stringList(v *viper.Viper, key string) []string {
	var items []string
	switch raw := v.Get(key).(type) {
	case string:
		items = strings.Split(raw, ",")
	case []string:
		items = raw
	case []any:
		for _, item := range raw {
			items = append(items, fmt.Sprint(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
