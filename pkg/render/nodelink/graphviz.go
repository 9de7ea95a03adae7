package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Formats the in-process Graphviz can produce.
var Formats = []string{"png", "svg", "jpg"}

// RenderOptions configures in-process rendering.
type RenderOptions struct {
	// Layout selects the Graphviz layout engine; "dot" when empty.
	Layout string
}

// Render lays out and renders DOT source in-process. format is one of
// [Formats].
func Render(ctx context.Context, dot, format string, opts RenderOptions) ([]byte, error) {
	if !supported(format) {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if opts.Layout != "" {
		gv.SetLayout(graphviz.Layout(opts.Layout))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format(format), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("render %s: empty output", format)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, "svg", RenderOptions{})
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, "png", RenderOptions{})
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
