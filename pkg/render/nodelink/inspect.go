package nodelink

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"
)

// NodeInfo describes a node found in DOT source.
type NodeInfo struct {
	ID      string
	Label   string
	Cluster string // cluster name without the "cluster_" prefix
	Attrs   map[string]string
}

// EdgeInfo describes an edge found in DOT source.
type EdgeInfo struct {
	From  string
	To    string
	Attrs map[string]string
}

// Styled reports whether the edge sets a line style or colour.
func (e EdgeInfo) Styled() bool {
	return e.Attrs["style"] != "" || e.Attrs["color"] != ""
}

// Summary is the structural content of a DOT graph.
type Summary struct {
	Name     string
	Directed bool
	Attrs    map[string]string // graph-level attributes
	Clusters []string
	Nodes    []NodeInfo
	Edges    []EdgeInfo
}

// NodeIDs returns the node IDs in order of first appearance.
func (s Summary) NodeIDs() []string {
	ids := make([]string, len(s.Nodes))
	for i, n := range s.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Inspect parses DOT source and summarises the first graph in it. Nodes
// that only appear in edge statements are included, as Graphviz would
// create them implicitly.
func Inspect(src string) (Summary, error) {
	f, err := dot.ParseString(src)
	if err != nil {
		return Summary{}, fmt.Errorf("parse DOT: %w", err)
	}
	if len(f.Graphs) == 0 {
		return Summary{}, fmt.Errorf("parse DOT: no graph found")
	}
	g := f.Graphs[0]

	in := &inspector{
		index: make(map[string]int),
		sum: Summary{
			Name:     unquote(g.ID),
			Directed: g.Directed,
			Attrs:    make(map[string]string),
		},
	}
	in.walk(g.Stmts, "")
	return in.sum, nil
}

type inspector struct {
	sum   Summary
	index map[string]int // node ID -> position in sum.Nodes
}

func (in *inspector) walk(stmts []ast.Stmt, cluster string) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			n := in.node(unquote(s.Node.ID), cluster)
			for _, a := range s.Attrs {
				n.Attrs[a.Key] = unquote(a.Val)
			}
			if l, ok := n.Attrs["label"]; ok {
				n.Label = l
			}
		case *ast.EdgeStmt:
			attrs := make(map[string]string, len(s.Attrs))
			for _, a := range s.Attrs {
				attrs[a.Key] = unquote(a.Val)
			}
			from := in.vertex(s.From, cluster)
			for e := s.To; e != nil; e = e.To {
				to := in.vertex(e.Vertex, cluster)
				for _, f := range from {
					for _, t := range to {
						in.sum.Edges = append(in.sum.Edges, EdgeInfo{From: f, To: t, Attrs: copyAttrs(attrs)})
					}
				}
				from = to
			}
		case *ast.Subgraph:
			in.walk(s.Stmts, in.subgraphCluster(s, cluster))
		case *ast.Attr:
			if cluster == "" {
				in.sum.Attrs[s.Key] = unquote(s.Val)
			}
		}
	}
}

// subgraphCluster registers a cluster subgraph and returns the cluster name
// its nodes belong to. Plain subgraphs keep the enclosing cluster.
func (in *inspector) subgraphCluster(s *ast.Subgraph, parent string) string {
	id := unquote(s.ID)
	if !strings.HasPrefix(id, clusterPrefix) {
		return parent
	}
	name := strings.TrimPrefix(id, clusterPrefix)
	in.sum.Clusters = append(in.sum.Clusters, name)
	return name
}

// vertex resolves an edge endpoint to node IDs, registering the nodes.
func (in *inspector) vertex(v ast.Vertex, cluster string) []string {
	switch v := v.(type) {
	case *ast.Node:
		id := unquote(v.ID)
		in.node(id, cluster)
		return []string{id}
	case *ast.Subgraph:
		in.walk(v.Stmts, in.subgraphCluster(v, cluster))
		return subgraphIDs(v.Stmts)
	}
	return nil
}

// subgraphIDs lists the node IDs mentioned in a subgraph body, in order.
func subgraphIDs(stmts []ast.Stmt) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	var fromVertex func(v ast.Vertex)
	fromVertex = func(v ast.Vertex) {
		switch v := v.(type) {
		case *ast.Node:
			add(unquote(v.ID))
		case *ast.Subgraph:
			for _, id := range subgraphIDs(v.Stmts) {
				add(id)
			}
		}
	}
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			add(unquote(s.Node.ID))
		case *ast.EdgeStmt:
			fromVertex(s.From)
			for e := s.To; e != nil; e = e.To {
				fromVertex(e.Vertex)
			}
		case *ast.Subgraph:
			fromVertex(s)
		}
	}
	return ids
}

// node returns the entry for id, creating it in cluster when first seen.
func (in *inspector) node(id, cluster string) *NodeInfo {
	if i, ok := in.index[id]; ok {
		return &in.sum.Nodes[i]
	}
	in.index[id] = len(in.sum.Nodes)
	in.sum.Nodes = append(in.sum.Nodes, NodeInfo{ID: id, Label: id, Cluster: cluster, Attrs: make(map[string]string)})
	return &in.sum.Nodes[len(in.sum.Nodes)-1]
}

func copyAttrs(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// unquote strips DOT double quotes and decodes the \" and \\ escapes.
// Other escapes such as \n are kept verbatim, the way Graphviz stores them.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
