// Package render defines the boundary between diagram assembly and the
// layout engine.
//
// # Overview
//
// A [Renderer] turns a [diagram.Spec] into bytes in one [Format]. The core
// depends only on this interface; the Graphviz implementation lives in the
// [nodelink] subpackage.
//
//	r := nodelink.NewGraphviz()
//	data, err := r.Render(ctx, spec, render.FormatPNG)
//	path, err := render.WriteArtifact("secure_backup_architecture.png", data)
//
// # Formats
//
//   - png: raster image (default)
//   - svg: vector image
//   - dot: the Graphviz source itself, useful for debugging layouts
//
// [WriteArtifact] replaces any existing file atomically, so a failed run
// never leaves a truncated image behind.
//
// [nodelink]: github.com/matzehuels/planviz/pkg/render/nodelink
package render
