// Package config loads yutc-diagram settings from a TOML file.
//
// Every setting has a default, so the file is optional. Keys present in the
// file override the defaults; command-line flags override the file.
//
//	[theme]
//	title = "yutc"
//	fontsize = 12
//	palette = "oranges9"
//	accent = "9"
//	background = "grey"
//	layout = "dot"
//
//	[render]
//	format = "png"            # png, svg, jpg, dot or json (graph export)
//	backend = "embedded"      # or "system"
//	toolkit_dir = ""          # Graphviz bin directory for the system backend
//	direction = "LR"
//	detailed = false
//
//	[cache]
//	disabled = false
//	ttl = "720h"
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
	"github.com/adam-huganir/yutc-diagram/pkg/errors"
	"github.com/adam-huganir/yutc-diagram/pkg/render"
	"github.com/adam-huganir/yutc-diagram/pkg/render/toolkit"
)

// AppName names the configuration and cache directories.
const AppName = "yutc-diagram"

// Config is the complete application configuration.
type Config struct {
	Theme  diagram.Theme `toml:"theme"`
	Render Render        `toml:"render"`
	Cache  Cache         `toml:"cache"`
}

// Render holds rendering settings.
type Render struct {
	Format     string `toml:"format"`
	Backend    string `toml:"backend"`
	ToolkitDir string `toml:"toolkit_dir"`
	Direction  string `toml:"direction"`
	Detailed   bool   `toml:"detailed"`
}

// Cache holds artifact cache settings.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	TTL      string `toml:"ttl"`
}

// TTLDuration parses TTL; an empty TTL never expires.
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.TTL)
}

// FormatJSON exports the graph as JSON instead of rendering it.
const FormatJSON = "json"

// Directions lists the accepted Graphviz rankdir values.
var Directions = []string{"TB", "LR", "BT", "RL"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme: diagram.DefaultTheme(),
		Render: Render{
			Format:     render.FormatPNG,
			Backend:    render.BackendEmbedded,
			ToolkitDir: toolkit.DefaultDir(),
			Direction:  "LR",
		},
		Cache: Cache{TTL: "720h"},
	}
}

// Validate reports the first invalid setting as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := c.Theme.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	if c.Render.Format != FormatJSON {
		if err := render.ValidateFormat(c.Render.Format); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.format")
		}
	}
	if err := render.ValidateBackend(c.Render.Backend); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.backend")
	}
	if !slices.Contains(Directions, c.Render.Direction) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.direction: %q is not one of TB, LR, BT, RL", c.Render.Direction)
	}
	if ttl, err := c.Cache.TTLDuration(); err != nil || ttl < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl: invalid duration %q", c.Cache.TTL)
	}
	return nil
}

// Load reads the TOML file at path on top of Default. Unknown keys are
// rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists and returns
// Default otherwise. The returned path is empty when no file was read.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// DefaultPath returns $XDG_CONFIG_HOME/yutc-diagram/config.toml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the artifact cache directory using the XDG convention
// (~/.cache/yutc-diagram/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Encode writes cfg as TOML, used by `config show`.
func Encode(cfg Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}
