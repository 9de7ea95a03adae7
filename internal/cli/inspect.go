package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adam-huganir/yutc-diagram/pkg/diagram"
	"github.com/adam-huganir/yutc-diagram/pkg/render/nodelink"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "inspect [file.dot]",
		Short: "List the nodes and edges of a diagram",
		Long: `List the nodes, edges and graph attributes of the yutc diagram, or of a
DOT file written earlier with "render --format dot".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := c.inspectSource(cmd.Context(), args, opts.withDefaults(c.cfg))
			if err != nil {
				return err
			}
			sum, err := nodelink.Inspect(src)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), name, sum)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.graphFile, "graph", "", "inspect a JSON graph file instead of the yutc diagram")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show the node kind below each label")

	return cmd
}

// inspectSource returns the DOT source to inspect and a display name.
func (c *CLI) inspectSource(ctx context.Context, args []string, opts renderOpts) (string, string, error) {
	if len(args) == 1 {
		src, err := readDOT(args[0])
		return src, args[0], err
	}

	g, err := c.loadGraph(opts.graphFile)
	if err != nil {
		return "", "", err
	}
	loggerFromContext(ctx).Debugf("Generating DOT for %d nodes", g.NodeCount())

	name := diagram.ThemeOf(g).Title
	if opts.graphFile != "" {
		name = opts.graphFile
	}
	return nodelink.ToDOT(g, nodelink.Options{
		Theme:     diagram.ThemeOf(g),
		Detailed:  opts.detailed,
		Direction: opts.direction,
	}), name, nil
}

func printSummary(w io.Writer, name string, sum nodelink.Summary) {
	fmt.Fprintln(w, StyleTitle.Render(name))
	fmt.Fprintln(w)

	keys := make([]string, 0, len(sum.Attrs))
	for k := range sum.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printKeyValue(w, k, sum.Attrs[k])
	}
	if len(sum.Clusters) > 0 {
		printKeyValue(w, "clusters", strings.Join(sum.Clusters, ", "))
	}
	fmt.Fprintln(w)

	nodeRows := make([][]string, 0, len(sum.Nodes))
	for _, n := range sum.Nodes {
		nodeRows = append(nodeRows, []string{n.ID, n.Label, n.Cluster})
	}
	printTable(w, []string{"Node", "Label", "Cluster"}, nodeRows)

	edgeRows := make([][]string, 0, len(sum.Edges))
	styled := 0
	for _, e := range sum.Edges {
		if e.Styled() {
			styled++
		}
		edgeRows = append(edgeRows, []string{e.From, e.To, e.Attrs["style"], e.Attrs["color"]})
	}
	printTable(w, []string{"From", "To", "Style", "Color"}, edgeRows)

	printDetail(w, "%d nodes · %d edges (%d styled)", len(sum.Nodes), len(sum.Edges), styled)
}
