// Package dag provides the directed graph behind every architecture diagram.
//
// # Overview
//
// A diagram is a small, declarative graph: labelled nodes (commands,
// sub-commands and functions), optionally grouped into named clusters, and
// directed edges that either express command hierarchy (plain) or a call
// relationship (styled with a line style and/or colour). Layout is never
// computed here; the graph is handed to Graphviz as-is.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs and edges can only connect
// existing nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "yutc", Kind: dag.NodeKindCommand})
//	g.AddNode(dag.Node{ID: "template", Kind: dag.NodeKindSubcommand})
//	g.AddEdge(dag.Edge{From: "yutc", To: "template"})
//
// [DAG.Nodes] and [DAG.Edges] return elements in insertion order, so the DOT
// source generated from a graph is stable from run to run.
//
// # Validation
//
// [DAG.Validate] checks that every edge references existing nodes and that
// the graph is acyclic. Graphs built with AddNode/AddEdge already satisfy
// the first property; graphs assembled by hand or decoded from files may
// not.
//
// # Metadata
//
// Nodes, edges and the graph itself carry a [Metadata] map. Graph metadata
// holds rendering options such as the theme (see the diagram package).
package dag
