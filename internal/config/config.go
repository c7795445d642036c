// Package config reads the service configuration from the environment
// once at startup. Every knob has a default that keeps the calculator
// usable with no configuration at all: a local sqlite cache, no remote
// endpoint, and the standard probe cadence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache bounds: the recent-menus list keeps between 10 and 50 entries.
const (
	MinCacheLimit     = 10
	MaxCacheLimit     = 50
	DefaultCacheLimit = 50
)

// DefaultProbeInterval is how often connectivity is re-checked while
// the service believes it is offline.
const DefaultProbeInterval = 2 * time.Minute

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	LogLevel string
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr    string
	Session SessionConfig
}

// SessionConfig controls the session cookie used for flash messages
// and edit-mode state.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// DatabaseConfig selects the local store backing the cache and the
// price-list library: a postgres URL when provided, otherwise a sqlite
// file next to the binary.
type DatabaseConfig struct {
	URL             string
	SQLitePath      string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// SheetsConfig points at the remote Apps Script deployment. A blank
// URL leaves the service in permanent local-only mode.
type SheetsConfig struct {
	URL           string
	Timeout       time.Duration
	ProbeInterval time.Duration
}

// CacheConfig bounds the local snapshot list.
type CacheConfig struct {
	Limit int
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
		Session: SessionConfig{
			Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "hppcalc_session"),
			CookieDomain: os.Getenv("SESSION_COOKIE_DOMAIN"),
			CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
		},
	}

	cfg.Database = DatabaseConfig{
		URL:             firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL")),
		SQLitePath:      firstNonEmpty(os.Getenv("SQLITE_PATH"), "hppcalc.db"),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
	}

	cfg.Sheets = SheetsConfig{
		URL:           firstNonEmpty(os.Getenv("SHEETS_URL"), os.Getenv("GOOGLE_SCRIPT_URL")),
		Timeout:       parseDurationWithDefault(os.Getenv("SHEETS_TIMEOUT"), 30*time.Second),
		ProbeInterval: parseDurationWithDefault(os.Getenv("PROBE_INTERVAL"), DefaultProbeInterval),
	}

	cfg.Cache = CacheConfig{
		Limit: clampCacheLimit(parseIntWithDefault(os.Getenv("CACHE_LIMIT"), DefaultCacheLimit)),
	}

	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func clampCacheLimit(limit int) int {
	if limit < MinCacheLimit {
		return MinCacheLimit
	}
	if limit > MaxCacheLimit {
		return MaxCacheLimit
	}
	return limit
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
