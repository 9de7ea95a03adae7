// Package render turns a diagram graph into a file-ready artifact.
//
// # Overview
//
// The package sits on top of two Graphviz drivers and picks between them:
//
//   - [BackendEmbedded]: Graphviz compiled to WebAssembly and run
//     in-process (package nodelink). Needs nothing installed.
//   - [BackendSystem]: a native Graphviz toolkit found on disk
//     (package toolkit), optionally from an explicit bin directory.
//
// Both receive the same DOT source produced by [nodelink.ToDOT]. The "dot"
// format returns that source without invoking Graphviz at all.
//
//	r, err := render.New(render.Options{Backend: render.BackendEmbedded})
//	png, err := r.Render(ctx, dot, render.FormatPNG)
//
// # Output Paths
//
// [OutputPath] resolves the single positional argument of the CLI to the
// file that will be written.
package render
