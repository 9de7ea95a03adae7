package nodelink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/adam-huganir/yutc-diagram/pkg/dag"
	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
)

// Options configures node-link diagram generation.
type Options struct {
	// Theme supplies graph-level attributes. Empty fields are omitted.
	Theme diagram.Theme

	// Detailed adds the node kind below each label.
	Detailed bool

	// Direction is the Graphviz rankdir; "LR" when empty.
	Direction string
}

// clusterPrefix makes Graphviz draw a subgraph as a framed cluster.
const clusterPrefix = "cluster_"

// ToDOT converts a graph to Graphviz DOT source. The output is deterministic:
// nodes and edges appear in insertion order, clustered nodes inside one
// subgraph per cluster in order of first use.
func ToDOT(g *dag.DAG, opts Options) string {
	th := opts.Theme
	dir := opts.Direction
	if dir == "" {
		dir = "LR"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(nonEmpty(th.Title, "G")))
	writeAttr(&buf, "  ", "rankdir", dir)
	writeAttr(&buf, "  ", "label", th.Title)
	if th.FontSize > 0 {
		writeAttr(&buf, "  ", "fontsize", strconv.Itoa(th.FontSize))
	}
	writeAttr(&buf, "  ", "colorscheme", th.Palette)
	writeAttr(&buf, "  ", "color", th.Accent)
	writeAttr(&buf, "  ", "bgcolor", th.Background)
	writeAttr(&buf, "  ", "layout", th.Layout)

	nodeDefaults := []string{"shape=box", `style="rounded,filled"`, "fillcolor=white"}
	if th.FontSize > 0 {
		nodeDefaults = append(nodeDefaults, "fontsize="+strconv.Itoa(th.FontSize))
	}
	fmt.Fprintf(&buf, "  node [%s];\n", strings.Join(nodeDefaults, ", "))
	if th.Palette != "" {
		fmt.Fprintf(&buf, "  edge [colorscheme=%s];\n", quote(th.Palette))
	}

	for _, name := range g.Clusters() {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %s {\n", quote(clusterPrefix+name))
		writeAttr(&buf, "    ", "label", name)
		writeAttr(&buf, "    ", "colorscheme", th.Palette)
		writeAttr(&buf, "    ", "color", th.Accent)
		for _, n := range g.NodesInCluster(name) {
			writeNode(&buf, "    ", *n, opts.Detailed)
		}
		buf.WriteString("  }\n")
	}

	if loose := g.NodesInCluster(""); len(loose) > 0 {
		buf.WriteString("\n")
		for _, n := range loose {
			writeNode(&buf, "  ", *n, opts.Detailed)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeAttr(buf *bytes.Buffer, indent, key, val string) {
	if val == "" {
		return
	}
	fmt.Fprintf(buf, "%s%s=%s;\n", indent, key, quote(val))
}

func writeNode(buf *bytes.Buffer, indent string, n dag.Node, detailed bool) {
	fmt.Fprintf(buf, "%s%s [label=%s];\n", indent, quote(n.ID), quote(fmtLabel(n, detailed)))
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}
	return n.DisplayLabel() + "\n(" + n.Kind.String() + ")"
}

func fmtEdgeAttrs(e dag.Edge) []string {
	var attrs []string
	if e.Style != dag.EdgeStylePlain {
		attrs = append(attrs, "style="+quote(string(e.Style)))
	}
	if e.Color != "" {
		attrs = append(attrs, "color="+quote(e.Color))
	}
	return attrs
}

// quote renders s as a DOT double-quoted string. Backslashes are doubled
// so a trailing one cannot escape the closing quote; newlines become the
// DOT "\n" escape so multi-line labels survive.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
