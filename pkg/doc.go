// Package pkg provides the libraries behind pipegraph, a tool for building
// and editing data-pipeline topologies.
//
// # Overview
//
// A pipeline configuration wires sources to transforms and transforms to
// sinks. Pipegraph keeps that wiring as an immutable graph value: every edit
// returns a new graph, so earlier snapshots stay valid and a rejected edit
// costs nothing.
//
//	Document (TOML / YAML / JSON)
//	         ↓
//	    [document] decode
//	         ↓
//	    [topology] FromConfig → edits → ToConfig
//	         ↓
//	    [document] encode, or [render] DOT/SVG
//
// # Quick Start
//
//	g := topology.Begin(map[string]any{"data_dir": "/var/lib/vector"})
//	g, _ = g.AddSource("in", map[string]any{"type": "stdin"})
//	g, _ = g.AddSink("out", []string{"in"}, map[string]any{"type": "console"})
//	g, _ = g.InjectAfter("in", "parse", map[string]any{"type": "remap"})
//
//	_ = document.WriteFile(g, "pipeline.toml")
//
// # Main Packages
//
// [topology] - The graph value, its components and every edit operation,
// plus document import/export and linting.
//
// [document] - Codecs between the configuration document and TOML, YAML or
// JSON bytes.
//
// [render] - Graphviz DOT export and SVG rendering.
//
// [cache] - Content-addressed byte cache used to memoize rendered diagrams.
//
// [errors] - Structured error codes shared by all packages.
//
// [observability] - Optional hooks for edit, render and cache events.
//
// [buildinfo] - Version information injected at build time.
package pkg
