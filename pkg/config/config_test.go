package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
	"github.com/adam-huganir/yutc-diagram/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Theme != diagram.DefaultTheme() {
		t.Errorf("Default().Theme = %+v", cfg.Theme)
	}
	if cfg.Render.Format != "png" || cfg.Render.Backend != "embedded" {
		t.Errorf("Default().Render = %+v", cfg.Render)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[theme]
background = "white"
fontsize = 14

[render]
format = "svg"
direction = "TB"

[cache]
ttl = "1h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Theme.Background != "white" || cfg.Theme.FontSize != 14 {
		t.Errorf("Theme = %+v", cfg.Theme)
	}
	if cfg.Theme.Palette != "oranges9" {
		t.Errorf("unset keys should keep defaults, Palette = %q", cfg.Theme.Palette)
	}
	if cfg.Render.Format != "svg" || cfg.Render.Direction != "TB" || cfg.Render.Backend != "embedded" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if ttl, _ := cfg.Cache.TTLDuration(); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
}

func TestLoadJSONFormat(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[render]\nformat = \"json\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Format != FormatJSON {
		t.Errorf("Render.Format = %q, want json", cfg.Render.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[theme\n"},
		{"unknown key", "[render]\nformats = \"png\"\n"},
		{"bad format", "[render]\nformat = \"gif\"\n"},
		{"bad backend", "[render]\nbackend = \"cloud\"\n"},
		{"bad direction", "[render]\ndirection = \"up\"\n"},
		{"bad layout", "[theme]\nlayout = \"spring\"\n"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, path, err := LoadDefault()
	if err != nil || path != "" {
		t.Fatalf("LoadDefault() without file = %q, %v", path, err)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("LoadDefault() should return defaults, got %+v", cfg.Render)
	}

	want := filepath.Join(dir, AppName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("[render]\nformat = \"svg\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if path != want || cfg.Render.Format != "svg" {
		t.Errorf("LoadDefault() = %q, %+v", path, cfg.Render)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", AppName) {
		t.Errorf("CacheDir() = %q", dir)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".cache", AppName) {
		t.Errorf("CacheDir() = %q, want under %s/.cache", dir, home)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(Default(), &buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "[theme]") {
		t.Errorf("Encode() output missing [theme]:\n%s", buf.String())
	}

	path := writeConfig(t, buf.String())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip = %+v, want %+v", cfg, Default())
	}
}
