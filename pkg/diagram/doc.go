// Package diagram defines the architecture diagram of the yutc CLI.
//
// The diagram is a fixed graph: the yutc command, its two sub-commands and
// the two internal functions every sub-command goes through, all inside a
// single "yutc" cluster. Command hierarchy edges are plain; the call from
// loadTemplates to executeTemplate is drawn dashed in the theme's accent
// colour.
//
// [Architecture] builds the graph, and [Theme] carries the graph-level
// rendering attributes (title, font size, palette, background, layout
// engine). The theme is stored in the graph's metadata by [Theme.Apply] so
// the graph can be exported, re-imported and rendered without losing it.
package diagram
