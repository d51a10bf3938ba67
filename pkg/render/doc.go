// Package render turns a computed panel layout into output files.
//
// # Formats
//
//   - PNG: rasterized with fogleman/gg and the embedded Go fonts ([PNG])
//   - SVG: a standalone vector document ([SVG])
//   - JSON: boxes, edges and columns in image coordinates ([JSON])
//   - DOT: Graphviz source with pinned node positions ([DOT])
//
// # Engines
//
// PNG and SVG can also be produced by Graphviz ([Graphviz]). The DOT source
// pins every node with pos="x,y!" and neato keeps those positions, so both
// engines draw the same arrangement; only the typography differs.
//
//	l := layout.Compute(panel, layout.Options{ShowLines: true})
//	png, err := render.PNG(l, render.WithTheme(theme))
//	svg, err := render.Render(ctx, l, render.FormatSVG, render.EngineGraphviz)
//
// # Coordinates
//
// Layout coordinates are centered on the panel box. Every renderer shifts
// them so that the bounding box of all boxes starts at the theme margin.
//
// # File Names
//
// [SafeFileName] derives the output file name from the panel label.
package render
