package diagram

import (
	"slices"
	"testing"

	"github.com/adam-huganir/yutc-diagram/pkg/dag"
)

func TestArchitectureNodes(t *testing.T) {
	g := Architecture()

	want := []string{NodeYutc, NodeTemplate, NodeForEach, NodeLoadTemplates, NodeExecuteTemplate}
	if got := dag.NodeIDs(g.Nodes()); !slices.Equal(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}
	for _, n := range g.Nodes() {
		if n.Cluster != Cluster {
			t.Errorf("node %s cluster = %q, want %q", n.ID, n.Cluster, Cluster)
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestArchitectureEdges(t *testing.T) {
	g := Architecture()

	var plain, styled []dag.Edge
	for _, e := range g.Edges() {
		if e.IsStyled() {
			styled = append(styled, e)
		} else {
			plain = append(plain, e)
		}
	}

	if len(plain) != 2 {
		t.Fatalf("plain edges = %d, want 2", len(plain))
	}
	for i, to := range []string{NodeTemplate, NodeForEach} {
		if plain[i].From != NodeYutc || plain[i].To != to {
			t.Errorf("plain[%d] = %s->%s, want yutc->%s", i, plain[i].From, plain[i].To, to)
		}
	}

	if len(styled) != 1 {
		t.Fatalf("styled edges = %d, want 1", len(styled))
	}
	e := styled[0]
	if e.From != NodeLoadTemplates || e.To != NodeExecuteTemplate {
		t.Errorf("styled edge = %s->%s", e.From, e.To)
	}
	if e.Style != dag.EdgeStyleDashed || e.Color != "9" {
		t.Errorf("styled edge attrs = %q/%q, want dashed/9", e.Style, e.Color)
	}
}

func TestArchitectureWithThemeAccent(t *testing.T) {
	theme := DefaultTheme()
	theme.Accent = "5"
	g := ArchitectureWithTheme(theme)

	for _, e := range g.Edges() {
		if e.IsStyled() && e.Color != "5" {
			t.Errorf("styled edge colour = %q, want 5", e.Color)
		}
	}
	if got := ThemeOf(g).Accent; got != "5" {
		t.Errorf("ThemeOf().Accent = %q, want 5", got)
	}
}
