package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adam-huganir/yutc-diagram/pkg/cache"
	"github.com/adam-huganir/yutc-diagram/pkg/config"
	"github.com/adam-huganir/yutc-diagram/pkg/dag"
	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
	"github.com/adam-huganir/yutc-diagram/pkg/errors"
	dagio "github.com/adam-huganir/yutc-diagram/pkg/io"
	"github.com/adam-huganir/yutc-diagram/pkg/observability"
	"github.com/adam-huganir/yutc-diagram/pkg/render"
	"github.com/adam-huganir/yutc-diagram/pkg/render/nodelink"
	"github.com/adam-huganir/yutc-diagram/pkg/render/toolkit"
)

// formatJSON exports the graph itself instead of rendering it.
const formatJSON = config.FormatJSON

// renderOpts holds the rendering flags shared by render and serve.
// Empty values fall back to the configuration file.
type renderOpts struct {
	format     string // output format: png, svg, jpg, dot, json
	backend    string // embedded or system
	toolkitDir string // Graphviz bin directory searched by the system backend
	graphFile  string // JSON graph rendered instead of the built-in diagram
	direction  string // Graphviz rankdir
	detailed   bool   // show the node kind below each label
	noCache    bool   // bypass the artifact cache
}

// addFlags registers the flags common to render and serve.
func (o *renderOpts) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.backend, "backend", "", "rendering backend: embedded (default), system")
	fs.StringVar(&o.toolkitDir, "toolkit-dir", "", "Graphviz bin directory prepended to PATH (system backend)")
	fs.StringVar(&o.graphFile, "graph", "", "render a JSON graph file instead of the yutc diagram")
	fs.StringVar(&o.direction, "direction", "", "layout direction: LR (default), TB, RL, BT")
	fs.BoolVar(&o.detailed, "detailed", false, "show the node kind below each label")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// withDefaults fills unset options from cfg. Flags always win over the file.
func (o renderOpts) withDefaults(cfg config.Config) renderOpts {
	if o.format == "" {
		o.format = cfg.Render.Format
	}
	if o.backend == "" {
		o.backend = cfg.Render.Backend
	}
	if o.toolkitDir == "" {
		o.toolkitDir = cfg.Render.ToolkitDir
	}
	if o.direction == "" {
		o.direction = cfg.Render.Direction
	}
	o.detailed = o.detailed || cfg.Render.Detailed
	return o
}

// validate checks the options that do not depend on the environment.
func (o renderOpts) validate() error {
	if o.format != formatJSON {
		if err := render.ValidateFormat(o.format); err != nil {
			return err
		}
	}
	if !slices.Contains(config.Directions, o.direction) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid direction: %s (must be one of TB, LR, BT, RL)", o.direction)
	}
	return render.ValidateBackend(o.backend)
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <output>",
		Short: "Render the yutc architecture diagram",
		Long: `Render the yutc architecture diagram to an image file.

The output argument is a file path. A known extension selects the format
unless --format is given. Without an extension the format's extension is
appended; a directory receives diagram.<format>.`,
		Example: `  yutc-diagram render docs/diagram.png
  yutc-diagram render docs/ --format svg
  yutc-diagram render docs/diagram --backend system`,
		Args: outputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := opts
			if o.format == "" {
				o.format = formatFromPath(args[0])
			}
			o = o.withDefaults(c.cfg)
			if err := o.validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], o)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), svg, jpg, dot, json")
	opts.addFlags(cmd.Flags())

	return cmd
}

// outputArg requires exactly one positional output path.
func outputArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errors.New(errors.ErrCodeInvalidInput, "missing output path (usage: %s)", cmd.UseLine())
	case 1:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "expected one output path, got %d arguments", len(args))
	}
}

// formatFromPath infers the output format from a known file extension.
// It returns "" when the extension says nothing.
func formatFromPath(path string) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case render.FormatPNG, render.FormatSVG, render.FormatJPG, render.FormatDOT, formatJSON:
		return ext
	case "jpeg":
		return render.FormatJPG
	case "gv":
		return render.FormatDOT
	}
	return ""
}

// runRender builds the graph, renders it and writes the result.
func (c *CLI) runRender(ctx context.Context, out, status io.Writer, arg string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	path, err := render.OutputPath(arg, opts.format)
	if err != nil {
		return err
	}

	g, err := c.loadGraph(opts.graphFile)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	spinner := newSpinner(ctx, status, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()
	data, cached, err := c.renderGraph(ctx, g, opts)
	if err == nil {
		err = render.WriteFile(path, data)
	}
	switch {
	case spinner.Cancelled():
		spinner.StopWithError(status, "Render cancelled")
		return ctx.Err()
	case err != nil:
		spinner.StopWithError(status, fmt.Sprintf("Render of %s failed", opts.format))
		return err
	}
	logger.Debugf("Wrote %d bytes", len(data))

	spinner.StopWithSuccess(out, "Rendered "+StyleHighlight.Render(opts.format))
	printFile(out, path)
	if ext := formatFromPath(path); ext != "" && ext != opts.format {
		printWarning(out, "%s holds %s data despite its extension", path, opts.format)
	}
	printStats(out, g.NodeCount(), g.EdgeCount(), cached)
	return nil
}

// loadGraph returns the graph from path, or the built-in yutc diagram when
// path is empty. The configured theme fills in whatever the graph leaves
// unset.
func (c *CLI) loadGraph(path string) (*dag.DAG, error) {
	if path == "" {
		return diagram.ArchitectureWithTheme(c.cfg.Theme), nil
	}
	g, err := dagio.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	diagram.ThemeOf(g).Merge(c.cfg.Theme).Apply(g)
	return g, nil
}

// renderGraph converts g to the requested format, consulting the cache
// first. It reports whether the result came from the cache.
func (c *CLI) renderGraph(ctx context.Context, g *dag.DAG, opts renderOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	if opts.format == formatJSON {
		var buf bytes.Buffer
		if err := dagio.WriteJSON(g, &buf); err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "export graph")
		}
		return buf.Bytes(), false, nil
	}

	theme := diagram.ThemeOf(g)
	dot := nodelink.ToDOT(g, nodelink.Options{
		Theme:     theme,
		Detailed:  opts.detailed,
		Direction: opts.direction,
	})

	r, err := render.New(render.Options{
		Backend:    opts.backend,
		ToolkitDir: opts.toolkitDir,
		Layout:     theme.Layout,
	})
	if err != nil {
		return nil, false, err
	}
	if sys, ok := r.(interface{ Bin() string }); ok {
		if v, err := toolkit.Version(ctx, sys.Bin()); err == nil {
			logger.Debug("Using native Graphviz", "bin", sys.Bin(), "version", v)
		}
	}

	store := c.newCache(opts.noCache)
	defer store.Close()

	key := cache.ArtifactKey(dot, opts.format, r.Name())
	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("Cache read failed", "err", err)
	} else if ok {
		logger.Debug("Cache hit", "format", opts.format, "backend", r.Name())
		observability.Cache().OnCacheHit(ctx, opts.format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, opts.format)

	observability.Render().OnRenderStart(ctx, opts.format, r.Name())
	prog := newProgress(logger)
	data, err := r.Render(ctx, dot, opts.format)
	observability.Render().OnRenderComplete(ctx, opts.format, r.Name(), len(data), time.Since(prog.start), err)
	if err != nil {
		return nil, false, err
	}
	prog.done(fmt.Sprintf("Rendered %s with %s backend", opts.format, r.Name()))

	ttl, _ := c.cfg.Cache.TTLDuration()
	if err := store.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("Cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, opts.format, len(data))
	}
	return data, false, nil
}

// readDOT reads DOT source from path.
func readDOT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return string(data), nil
}
