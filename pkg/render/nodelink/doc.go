// Package nodelink renders diagram graphs as node-link diagrams with Graphviz.
//
// # Overview
//
// Rendering is a two-step affair. [ToDOT] turns a graph into Graphviz DOT
// source, then [Render] hands that source to an in-process Graphviz
// (compiled to WebAssembly by github.com/goccy/go-graphviz) which lays it
// out and rasterises it:
//
//	Graph → ToDOT() → DOT → Render() → PNG / SVG / JPG
//
// The DOT source is the intermediate representation: it can be saved,
// handed to a native Graphviz toolkit instead (see package toolkit), or
// read back with [Inspect] to check what a diagram actually contains.
//
// # Theme
//
// Graph-level attributes (title, font size, colour scheme, background and
// layout engine) come from [Options.Theme]. Colours of the frame and of
// styled edges are indices into the theme's colour scheme, so changing the
// palette recolours the whole diagram.
//
// # Inspection
//
// [Inspect] parses DOT with gonum's DOT grammar and reports nodes, edges,
// clusters and graph attributes without invoking Graphviz.
package nodelink
