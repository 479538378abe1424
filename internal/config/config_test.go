package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Addr(); got != "0.0.0.0:8000" {
		t.Fatalf("expected 0.0.0.0:8000, got %q", got)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:8080"}) {
		t.Fatalf("unexpected default origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Debug || cfg.DocsEnabled {
		t.Fatalf("expected debug and docs disabled by default, got %+v", cfg)
	}
	if cfg.HandlerDelay != 0 {
		t.Fatalf("expected no handler delay, got %s", cfg.HandlerDelay)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("expected metrics listener disabled, got %q", cfg.MetricsAddr)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"HOST":                 "127.0.0.1",
		"PORT":                 "9000",
		"CORS_ALLOWED_ORIGINS": " http://a.test , ,http://b.test",
		"DEBUG":                "true",
		"HANDLER_DELAY":        "250ms",
		"DOCS_ENABLED":         "1",
		"METRICS_ADDR":         ":9090",
		"SHUTDOWN_TIMEOUT":     "3s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Addr(); got != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", got)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if !cfg.Debug || !cfg.DocsEnabled {
		t.Fatalf("expected debug and docs enabled, got %+v", cfg)
	}
	if cfg.HandlerDelay != 250*time.Millisecond {
		t.Fatalf("unexpected delay %s", cfg.HandlerDelay)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected metrics addr %q", cfg.MetricsAddr)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
}

func TestFromLookupBlankValuesKeepDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"HOST": "  ",
		"PORT": "",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Addr(); got != "0.0.0.0:8000" {
		t.Fatalf("expected defaults, got %q", got)
	}
}

func TestFromLookupInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port not numeric", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"origins only separators", "CORS_ALLOWED_ORIGINS", ", ,"},
		{"debug not boolean", "DEBUG", "maybe"},
		{"docs not boolean", "DOCS_ENABLED", "yes please"},
		{"delay not duration", "HANDLER_DELAY", "10"},
		{"delay negative", "HANDLER_DELAY", "-1s"},
		{"shutdown not duration", "SHUTDOWN_TIMEOUT", "soon"},
		{"metrics addr without port", "METRICS_ADDR", "localhost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(map[string]string{tt.key: tt.val}))
			if err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
			if !strings.HasPrefix(err.Error(), tt.key+":") {
				t.Fatalf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("HANDLER_DELAY=2s\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HANDLER_DELAY", "")
	if err := os.Unsetenv("HANDLER_DELAY"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HandlerDelay != 2*time.Second {
		t.Fatalf("expected delay from env file, got %s", cfg.HandlerDelay)
	}
}

func TestLoadEnvironmentWinsOverEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PORT=9100\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("PORT", "9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9200" {
		t.Fatalf("expected environment to win, got %q", cfg.Port)
	}
}

func TestLoadMissingEnvFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}
