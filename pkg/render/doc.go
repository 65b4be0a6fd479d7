// Package render draws pipeline topologies as Graphviz diagrams.
//
// # Overview
//
// [ToDOT] converts a [topology.Graph] into DOT source laid out left to right,
// with one node per component and one edge per input. [RenderSVG] runs the
// DOT source through Graphviz (compiled to WebAssembly by go-graphviz, so no
// system binary is needed).
//
//	dot := render.ToDOT(g, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Node Styles
//
// Components are shaped by kind:
//
//	source     ellipse, light green
//	transform  rounded box, light blue
//	sink       double octagon, light orange
//
// With [Options.ShowDangling], inputs that name missing components are drawn
// as dashed grey placeholder nodes so broken references stand out.
//
// # Determinism
//
// Nodes are emitted by kind, then by name, and edges by consumer then input,
// so identical graphs always produce byte-identical DOT.
package render
