package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/adam-huganir/yutc-diagram/pkg/dag"
	"github.com/adam-huganir/yutc-diagram/pkg/errors"
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an INVALID_GRAPH error if the JSON is malformed, an
// identifier is unusable in DOT, a kind or style is unknown, a node ID is
// duplicated, an edge references an unknown node, or the graph has a cycle.
// The error names the offending node or edge. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode graph")
	}

	g := dag.New(data.Meta)
	for _, n := range data.Nodes {
		if err := errors.ValidateIdentifier(n.ID); err != nil {
			return nil, err
		}
		if n.Cluster != "" {
			if err := errors.ValidateIdentifier(n.Cluster); err != nil {
				return nil, err
			}
		}
		kind, err := dag.ParseNodeKind(n.Kind)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
		nd := dag.Node{ID: n.ID, Label: n.Label, Kind: kind, Cluster: n.Cluster, Meta: n.Meta}
		if err := g.AddNode(nd); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
	}
	for _, e := range data.Edges {
		style, err := dag.ParseEdgeStyle(e.Style)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
		ed := dag.Edge{From: e.From, To: e.To, Style: style, Color: e.Color, Meta: e.Meta}
		if err := g.AddEdge(ed); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s->%s", e.From, e.To)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "validate graph")
	}
	return g, nil
}

// ImportJSON reads a JSON graph file at path.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
