package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults reproduce the literal values the service has always shipped with.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = "8000"
	DefaultAllowedOrigin   = "http://localhost:8080"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the process settings read at startup.
type Config struct {
	Host            string
	Port            string
	AllowedOrigins  []string
	Debug           bool
	HandlerDelay    time.Duration
	DocsEnabled     bool
	MetricsAddr     string
	ShutdownTimeout time.Duration
}

// Default returns the configuration used when no environment overrides exist.
func Default() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		AllowedOrigins:  []string{DefaultAllowedOrigin},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Addr returns the host:port pair the public listener binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads an optional .env file from the working directory and then
// resolves the configuration from the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve each variable.
// Unset or blank variables keep their defaults.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("HOST"); ok {
		cfg.Host = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return Config{}, fmt.Errorf("PORT: invalid port %q", v)
		}
		cfg.Port = strconv.FormatUint(port, 10)
	}
	if v, ok := get("CORS_ALLOWED_ORIGINS"); ok {
		origins := splitList(v)
		if len(origins) == 0 {
			return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS: no origins in %q", v)
		}
		cfg.AllowedOrigins = origins
	}

	var err error
	if cfg.Debug, err = parseBool(get, "DEBUG", cfg.Debug); err != nil {
		return Config{}, err
	}
	if cfg.DocsEnabled, err = parseBool(get, "DOCS_ENABLED", cfg.DocsEnabled); err != nil {
		return Config{}, err
	}
	if cfg.HandlerDelay, err = parseDuration(get, "HANDLER_DELAY", cfg.HandlerDelay); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(get, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if v, ok := get("METRICS_ADDR"); ok {
		if _, _, err := net.SplitHostPort(v); err != nil {
			return Config{}, fmt.Errorf("METRICS_ADDR: %w", err)
		}
		cfg.MetricsAddr = v
	}
	return cfg, nil
}

func parseBool(get func(string) (string, bool), key string, def bool) (bool, error) {
	v, ok := get(key)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func parseDuration(get func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := get(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return def, fmt.Errorf("%s: negative duration %q", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
