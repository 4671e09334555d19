// Package nodelink renders architecture diagrams as node-link graphs with
// Graphviz.
//
// # Overview
//
// [ToDOT] translates a [diagram.Spec] into Graphviz DOT source. Clusters
// become nested `subgraph cluster_*` blocks, node shapes follow the node
// kind, and association edges are drawn without arrowheads.
//
// [Graphviz] implements [render.Renderer] on top of that source using
// [github.com/goccy/go-graphviz], which runs Graphviz in-process, so no
// system installation is required.
//
//	r := nodelink.NewGraphviz()
//	png, err := r.Render(ctx, spec, render.FormatPNG)
//
// # Determinism
//
// ToDOT emits clusters, nodes and edges in Spec order and graph attributes
// in sorted key order, so the same Spec always yields byte-identical DOT.
package nodelink
