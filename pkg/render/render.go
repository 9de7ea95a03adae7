package render

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adam-huganir/yutc-diagram/pkg/errors"
	"github.com/adam-huganir/yutc-diagram/pkg/render/nodelink"
	"github.com/adam-huganir/yutc-diagram/pkg/render/toolkit"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatJPG = "jpg"
	FormatDOT = "dot"
)

// Backends.
const (
	BackendEmbedded = "embedded"
	BackendSystem   = "system"
)

// DefaultBaseName is the file name used when the output path is a directory.
const DefaultBaseName = "diagram"

var (
	validFormats  = []string{FormatPNG, FormatSVG, FormatJPG, FormatDOT}
	validBackends = []string{BackendEmbedded, BackendSystem}
)

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(validFormats, ", "))
	}
	return nil
}

// ValidateBackend checks that backend is supported.
func ValidateBackend(backend string) error {
	if !slices.Contains(validBackends, backend) {
		return errors.New(errors.ErrCodeInvalidBackend, "invalid backend: %s (must be one of %s)", backend, strings.Join(validBackends, ", "))
	}
	return nil
}

// Renderer renders DOT source to an output format.
type Renderer interface {
	Render(ctx context.Context, dot, format string) ([]byte, error)
	// Name identifies the backend, used in cache keys and logs.
	Name() string
}

// Options selects and configures a backend.
type Options struct {
	Backend    string // BackendEmbedded when empty
	ToolkitDir string // searched before PATH by the system backend
	Layout     string // Graphviz layout engine, "dot" when empty
}

// New returns the renderer for opts.Backend. The system backend locates the
// toolkit eagerly so a missing install fails before any work is done.
func New(opts Options) (Renderer, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendEmbedded
	}
	if err := ValidateBackend(backend); err != nil {
		return nil, err
	}

	switch backend {
	case BackendSystem:
		if err := toolkit.PrependPath(opts.ToolkitDir); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "update PATH")
		}
		bin, err := toolkit.Locate(opts.ToolkitDir)
		if err != nil {
			return nil, err
		}
		return &systemRenderer{bin: bin, layout: opts.Layout}, nil
	default:
		return &embeddedRenderer{layout: opts.Layout}, nil
	}
}

type embeddedRenderer struct {
	layout string
}

func (r *embeddedRenderer) Name() string { return BackendEmbedded }

func (r *embeddedRenderer) Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}
	data, err := nodelink.Render(ctx, dot, format, nodelink.RenderOptions{Layout: r.layout})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "embedded graphviz")
	}
	return data, nil
}

type systemRenderer struct {
	bin    string
	layout string
}

func (r *systemRenderer) Name() string { return BackendSystem }

// Bin returns the path of the located dot executable.
func (r *systemRenderer) Bin() string { return r.bin }

func (r *systemRenderer) Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == FormatDOT {
		return []byte(dot), nil
	}
	bin := r.bin
	if r.layout != "" && r.layout != toolkit.Binary {
		// Graphviz installs every engine next to dot under its own name.
		if alt := filepath.Join(filepath.Dir(r.bin), r.layout+filepath.Ext(r.bin)); fileExists(alt) {
			bin = alt
		}
	}
	return toolkit.Render(ctx, bin, dot, format)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OutputPath resolves the CLI's positional argument to a file path:
//
//   - an existing directory gets DefaultBaseName.<format> inside it;
//   - a path without extension gets .<format> appended;
//   - any other path is used as given.
func OutputPath(arg, format string) (string, error) {
	if err := errors.ValidateOutputPath(arg); err != nil {
		return "", err
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return filepath.Join(arg, DefaultBaseName+"."+format), nil
	}
	if strings.HasSuffix(arg, string(filepath.Separator)) || strings.HasSuffix(arg, "/") {
		return filepath.Join(arg, DefaultBaseName+"."+format), nil
	}
	if filepath.Ext(arg) == "" {
		return arg + "." + format, nil
	}
	return arg, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
