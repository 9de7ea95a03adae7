package dag

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the graph.
// Metadata maps are never nil after being added to a DAG.
type Metadata map[string]any

// NodeKind classifies what a node stands for in the diagrammed program.
type NodeKind int

const (
	// NodeKindCommand is a top-level command (the program itself).
	NodeKindCommand NodeKind = iota
	// NodeKindSubcommand is a sub-command reachable from a command.
	NodeKindSubcommand
	// NodeKindFunction is an internal function.
	NodeKindFunction
)

var kindNames = map[NodeKind]string{
	NodeKindCommand:    "command",
	NodeKindSubcommand: "subcommand",
	NodeKindFunction:   "function",
}

// String returns the lower-case name of the kind.
func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ParseNodeKind converts a kind name back to a NodeKind.
// The empty string maps to NodeKindCommand.
func ParseNodeKind(s string) (NodeKind, error) {
	if s == "" {
		return NodeKindCommand, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Node is a labelled vertex of the diagram.
type Node struct {
	ID      string   // Unique identifier
	Label   string   // Display label (defaults to ID)
	Kind    NodeKind // What the node represents
	Cluster string   // Enclosing cluster name, empty for none
	Meta    Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns Label, or ID when no label was set.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// EdgeStyle is the Graphviz line style of an edge.
type EdgeStyle string

const (
	EdgeStylePlain  EdgeStyle = ""
	EdgeStyleDashed EdgeStyle = "dashed"
	EdgeStyleDotted EdgeStyle = "dotted"
	EdgeStyleBold   EdgeStyle = "bold"
)

// ParseEdgeStyle validates an edge style name.
func ParseEdgeStyle(s string) (EdgeStyle, error) {
	switch st := EdgeStyle(s); st {
	case EdgeStylePlain, EdgeStyleDashed, EdgeStyleDotted, EdgeStyleBold:
		return st, nil
	}
	return "", fmt.Errorf("unknown edge style %q", s)
}

// Edge represents a directed connection between two nodes.
type Edge struct {
	From  string    // Source node ID
	To    string    // Target node ID
	Style EdgeStyle // Line style, plain when empty
	Color string    // Graphviz colour (name or palette index), default when empty
	Meta  Metadata  // Arbitrary key-value metadata (never nil after AddEdge)
}

// IsStyled reports whether the edge carries any visual attribute.
func (e Edge) IsStyled() bool { return e.Style != EdgeStylePlain || e.Color != "" }

// DAG is a directed graph of diagram nodes.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes that this node has edges to.
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.Nodes() {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.Nodes() {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Clusters returns the distinct non-empty cluster names in order of first use.
func (d *DAG) Clusters() []string {
	var names []string
	for _, n := range d.Nodes() {
		if n.Cluster != "" && !slices.Contains(names, n.Cluster) {
			names = append(names, n.Cluster)
		}
	}
	return names
}

// NodesInCluster returns the nodes of the named cluster in insertion order.
// An empty name selects nodes outside any cluster.
func (d *DAG) NodesInCluster(name string) []*Node {
	var nodes []*Node
	for _, n := range d.Nodes() {
		if n.Cluster == name {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Validate checks graph integrity and returns nil if valid.
//
// Returns ErrInvalidEdgeEndpoint if an edge references a missing node, or
// ErrGraphHasCycle if a cycle is detected. Cycle detection runs in O(N+E)
// time using depth-first search.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	return d.detectCycles()
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
			}
			if hasCycle {
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
