// Package cli implements the yutc-diagram command-line interface.
//
// # Commands
//
//   - render: draw the yutc architecture diagram to an image file
//   - inspect: list the nodes and edges of the diagram or of a DOT file
//   - serve: preview the diagram over HTTP
//   - cache: manage the rendered-artifact cache
//   - config: show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers log with the command's logger.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/adam-huganir/yutc-diagram/pkg/buildinfo"
	"github.com/adam-huganir/yutc-diagram/pkg/cache"
	"github.com/adam-huganir/yutc-diagram/pkg/config"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "yutc-diagram draws the yutc architecture diagram",
		Long:          `yutc-diagram renders the architecture diagram of the yutc CLI (its commands, sub-commands and template functions) with Graphviz.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/yutc-diagram/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default file when present.
func (c *CLI) loadConfig() error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
		c.Logger.Debug("Loaded config", "path", c.configPath)
		return nil
	}

	cfg, path, err := config.LoadDefault()
	if err != nil {
		return err
	}
	c.cfg = cfg
	if path != "" {
		c.Logger.Debug("Loaded config", "path", path)
	}
	return nil
}

// newCache returns the artifact cache, or a NullCache when caching is off
// or the cache directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache || c.cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}
