// Package topology models the component graph of a data-pipeline
// configuration and converts it to and from the runtime's configuration
// document.
//
// # Overview
//
// A pipeline is made of named components of three kinds, ordered
// [Source] < [Transform] < [Sink]. Each component lists the components it
// consumes from in its input set, and carries an opaque settings map that
// this package never inspects.
//
// A [Graph] is an immutable value. Every edit returns a new Graph and leaves
// the receiver untouched, so earlier snapshots stay valid and edits compose:
//
//	g := topology.Begin(map[string]any{"data_dir": "/var/lib/vector"})
//	g, _ = g.AddSource("in", map[string]any{"type": "stdin"})
//	g, _ = g.AddTransform("parse", []string{"in"}, map[string]any{"type": "remap"})
//	g, _ = g.AddSink("out", []string{"parse"}, map[string]any{"type": "console"})
//	doc := g.ToConfig()
//
// # Identifiers
//
// Component names are canonicalized with [Canonical] at every entry point.
// A leading ':' (symbolic spelling) and surrounding whitespace are dropped,
// so ":in", "in" and " in " all name the same component.
//
// # Edits
//
//   - [Graph.AddSource], [Graph.AddTransform], [Graph.AddSink]: insert a component
//   - [Graph.Link], [Graph.Unlink]: add or remove an edge, oriented by kind
//   - [Graph.InjectBefore], [Graph.InjectAfter]: splice a transform into edges
//   - [Graph.Remove], [Graph.Update], [Graph.Rename]: whole-component edits
//
// Link orients an edge from the lower kind to the higher one, and the Inject
// operations refuse to splice a transform in front of a source or after a
// sink. Nothing else checks kind order: input lists given to Add and links
// between components of the same kind are stored as given. Use [Graph.Lint]
// to find dangling inputs, misordered edges and cycles.
//
// # Document Shape
//
// [Graph.ToConfig] produces the runtime's native layout, which [FromConfig]
// reads back:
//
//	{
//	  "data_dir":   "/var/lib/vector",
//	  "sources":    {"in":    {"type": "stdin"}},
//	  "transforms": {"parse": {"type": "remap", "inputs": ["in"]}},
//	  "sinks":      {"out":   {"type": "console", "inputs": ["parse"]}}
//	}
//
// # Errors
//
// Failed edits return a [*ComponentError] wrapping one of
// [ErrComponentNotFound], [ErrDuplicateComponent], [ErrWrongKind] or
// [ErrInvalidDocument]. The error carries the graph the edit was applied to,
// and the edit returns the receiver unchanged alongside it:
//
//	next, err := g.Link("in", "out")
//	if errors.Is(err, topology.ErrComponentNotFound) {
//	    // next is g, unchanged
//	}
//
// # Concurrency
//
// Graph values are safe for concurrent use. No operation mutates a Graph
// after it is returned, and settings maps are copied on the way in and out.
package topology
