package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderPNG_Architecture(t *testing.T) {
	dot := ToDOT(diagram.Architecture(), Options{Theme: diagram.DefaultTheme()})
	png, err := RenderPNG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, pngSignature) {
		t.Errorf("RenderPNG() output is not a PNG (%d bytes)", len(png))
	}
}

func TestRender_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	if _, err := Render(context.Background(), `digraph { a }`, "bmp", RenderOptions{}); err == nil {
		t.Error("Render() should reject unsupported format")
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, `digraph { a }`, "svg", RenderOptions{}); err != context.Canceled {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
