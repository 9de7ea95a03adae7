// Package io provides JSON import and export for diagram graphs.
//
// # Overview
//
// The built-in yutc diagram can be exported to JSON, edited, and rendered
// again with `render --graph file.json`, which is the simplest way to draw a
// different architecture with the same tooling.
//
// # JSON Format
//
//	{
//	  "meta": {"title": "yutc", "fontsize": 12, "palette": "oranges9"},
//	  "nodes": [
//	    {"id": "yutc", "kind": "command", "cluster": "yutc"},
//	    {"id": "template", "kind": "subcommand", "cluster": "yutc"}
//	  ],
//	  "edges": [
//	    {"from": "yutc", "to": "template"},
//	    {"from": "a", "to": "b", "style": "dashed", "color": "9"}
//	  ]
//	}
//
// # Node Fields
//
//   - id (required): unique identifier, also the default label
//   - label: display label
//   - kind: "command" (default), "subcommand" or "function"
//   - cluster: name of the frame the node is drawn in
//   - meta: object with arbitrary key-value pairs
//
// # Edge Fields
//
//   - from, to (required): node IDs
//   - style: "dashed", "dotted" or "bold"; plain when omitted
//   - color: Graphviz colour name or palette index
//
// Graph-level "meta" holds the theme keys understood by the diagram package.
package io
