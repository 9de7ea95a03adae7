package diagram

import (
	"fmt"
	"strconv"

	"github.com/adam-huganir/yutc-diagram/pkg/dag"
)

// Metadata keys under which a Theme is stored on a graph.
const (
	MetaTitle      = "title"
	MetaFontSize   = "fontsize"
	MetaPalette    = "palette"
	MetaAccent     = "accent"
	MetaBackground = "bgcolor"
	MetaLayout     = "layout"
)

// Theme holds graph-level rendering attributes.
type Theme struct {
	Title      string `toml:"title" json:"title,omitempty"`
	FontSize   int    `toml:"fontsize" json:"fontsize,omitempty"`
	Palette    string `toml:"palette" json:"palette,omitempty"`    // Graphviz colour scheme, e.g. "oranges9"
	Accent     string `toml:"accent" json:"accent,omitempty"`      // colour within Palette used for the frame and call edges
	Background string `toml:"background" json:"bgcolor,omitempty"` // graph background colour
	Layout     string `toml:"layout" json:"layout,omitempty"`      // Graphviz layout engine
}

// DefaultTheme returns the theme the yutc documentation diagram is drawn with.
func DefaultTheme() Theme {
	return Theme{
		Title:      "yutc",
		FontSize:   12,
		Palette:    "oranges9",
		Accent:     "9",
		Background: "grey",
		Layout:     "dot",
	}
}

// Layouts lists the Graphviz layout engines a theme may name.
var Layouts = []string{"dot", "neato", "fdp", "sfdp", "circo", "twopi", "osage", "patchwork"}

// Validate reports the first invalid field.
func (t Theme) Validate() error {
	if t.FontSize < 0 {
		return fmt.Errorf("font size must not be negative: %d", t.FontSize)
	}
	if t.Layout == "" {
		return nil
	}
	for _, l := range Layouts {
		if l == t.Layout {
			return nil
		}
	}
	return fmt.Errorf("unknown layout engine %q", t.Layout)
}

// Merge returns t with every empty field replaced by the one from base.
func (t Theme) Merge(base Theme) Theme {
	if t.Title == "" {
		t.Title = base.Title
	}
	if t.FontSize == 0 {
		t.FontSize = base.FontSize
	}
	if t.Palette == "" {
		t.Palette = base.Palette
	}
	if t.Accent == "" {
		t.Accent = base.Accent
	}
	if t.Background == "" {
		t.Background = base.Background
	}
	if t.Layout == "" {
		t.Layout = base.Layout
	}
	return t
}

// Apply stores the theme in the graph metadata, overwriting earlier values.
func (t Theme) Apply(g *dag.DAG) {
	m := g.Meta()
	set := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	set(MetaTitle, t.Title)
	set(MetaPalette, t.Palette)
	set(MetaAccent, t.Accent)
	set(MetaBackground, t.Background)
	set(MetaLayout, t.Layout)
	if t.FontSize > 0 {
		m[MetaFontSize] = t.FontSize
	}
}

// ThemeOf reads the theme stored in a graph's metadata. Fields that are
// absent stay empty; numbers decoded from JSON (float64) and strings are
// accepted for the font size.
func ThemeOf(g *dag.DAG) Theme {
	m := g.Meta()
	str := func(k string) string {
		if s, ok := m[k].(string); ok {
			return s
		}
		return ""
	}
	t := Theme{
		Title:      str(MetaTitle),
		Palette:    str(MetaPalette),
		Accent:     str(MetaAccent),
		Background: str(MetaBackground),
		Layout:     str(MetaLayout),
	}
	switch v := m[MetaFontSize].(type) {
	case int:
		t.FontSize = v
	case int64:
		t.FontSize = int(v)
	case float64:
		t.FontSize = int(v)
	case string:
		t.FontSize, _ = strconv.Atoi(v)
	}
	return t
}
