package diagram

import (
	"github.com/adam-huganir/yutc-diagram/pkg/dag"
)

// Cluster is the name of the frame around the whole diagram.
const Cluster = "yutc"

// Node IDs of the yutc architecture.
const (
	NodeYutc            = "yutc"
	NodeTemplate        = "template"
	NodeForEach         = "forEach"
	NodeLoadTemplates   = "loadTemplates"
	NodeExecuteTemplate = "executeTemplate"
)

// Architecture returns the yutc architecture diagram drawn with DefaultTheme.
func Architecture() *dag.DAG {
	return ArchitectureWithTheme(DefaultTheme())
}

// ArchitectureWithTheme returns the yutc architecture diagram with the
// given theme applied. The accent colour of the theme colours the call edge.
func ArchitectureWithTheme(theme Theme) *dag.DAG {
	g := dag.New(nil)
	theme.Apply(g)

	nodes := []dag.Node{
		// command
		{ID: NodeYutc, Kind: dag.NodeKindCommand},
		// sub-commands
		{ID: NodeTemplate, Kind: dag.NodeKindSubcommand},
		{ID: NodeForEach, Kind: dag.NodeKindSubcommand},
		// functions
		{ID: NodeLoadTemplates, Kind: dag.NodeKindFunction},
		{ID: NodeExecuteTemplate, Kind: dag.NodeKindFunction},
	}
	for _, n := range nodes {
		n.Cluster = Cluster
		mustAdd(g.AddNode(n))
	}

	mustAdd(g.AddEdge(dag.Edge{From: NodeYutc, To: NodeTemplate}))
	mustAdd(g.AddEdge(dag.Edge{From: NodeYutc, To: NodeForEach}))
	mustAdd(g.AddEdge(dag.Edge{
		From:  NodeLoadTemplates,
		To:    NodeExecuteTemplate,
		Style: dag.EdgeStyleDashed,
		Color: theme.Accent,
	}))
	return g
}

// mustAdd panics on errors that can only come from a broken literal above.
func mustAdd(err error) {
	if err != nil {
		panic("diagram: " + err.Error())
	}
}
