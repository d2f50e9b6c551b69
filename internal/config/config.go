// Package config reads gateway settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

var modeURLs = map[string]string{
	ModeLocal:  "http://localhost:8080/v1",
	ModeRemote: "https://routing.api.quantaroute.com/v1",
}

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Mode           string        `mapstructure:"QUANTAROUTE_MODE"`
	APIURL         string        `mapstructure:"QUANTAROUTE_API_URL"`
	APIKey         string        `mapstructure:"QUANTAROUTE_API_KEY"`
	Timeout        time.Duration `mapstructure:"QUANTAROUTE_TIMEOUT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`
	RouteCacheTTL  time.Duration `mapstructure:"ROUTE_CACHE_TTL"`
	GoogleMapsKey  string        `mapstructure:"GOOGLE_MAPS_API_KEY"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`
	DefaultProfile string        `mapstructure:"DEFAULT_PROFILE"`
}

var defaults = map[string]any{
	"PORT":                "8000",
	"QUANTAROUTE_MODE":    ModeLocal,
	"QUANTAROUTE_API_URL": "",
	"QUANTAROUTE_API_KEY": "",
	"QUANTAROUTE_TIMEOUT": "30s",
	"DATABASE_URL":        "",
	"REDIS_ADDR":          "",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"ROUTE_CACHE_TTL":     "10m",
	"GOOGLE_MAPS_API_KEY": "",
	"LOG_LEVEL":           "info",
	"LOG_FORMAT":          "text",
	"DEFAULT_PROFILE":     "car",
}

// Load reads the configuration from environment variables. Every key has a
// default so viper can unmarshal keys that were never set.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if _, ok := modeURLs[cfg.Mode]; !ok {
		return nil, fmt.Errorf("load config: QUANTAROUTE_MODE %q: want %q or %q", cfg.Mode, ModeLocal, ModeRemote)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("load config: QUANTAROUTE_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return &cfg, nil
}

// Backend is the resolved connection setting for the routing API. It is
// built once at startup and passed to the adapter.
type Backend struct {
	Mode    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func (c *Config) Backend() Backend {
	base := modeURLs[c.Mode]
	if c.APIURL != "" {
		base = c.APIURL
	}
	return Backend{
		Mode:    c.Mode,
		BaseURL: strings.TrimRight(base, "/"),
		APIKey:  c.APIKey,
		Timeout: c.Timeout,
	}
}

// HealthURL is the health endpoint, which lives beside the versioned API
// rather than under it.
func (b Backend) HealthURL() string {
	return strings.TrimSuffix(b.BaseURL, "/v1") + "/health"
}

// Authorization returns the header value to send, or "" when no key is set.
func (b Backend) Authorization() string {
	if strings.TrimSpace(b.APIKey) == "" {
		return ""
	}
	return "Bearer " + b.APIKey
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
