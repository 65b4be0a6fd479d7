package topology

import (
	"maps"
	"slices"
)

// Graph is an immutable pipeline topology: global settings plus a mapping
// from canonical component name to [Component].
//
// The zero value is an empty graph with no global settings. Graph values are
// cheap to copy; edits return new values and never modify the receiver.
type Graph struct {
	global     map[string]any
	components map[string]Component
}

// Begin creates an empty graph carrying the given top-level settings.
// The settings map is copied; a nil map is treated as empty.
func Begin(global map[string]any) Graph {
	return Graph{
		global:     copySettings(global),
		components: map[string]Component{},
	}
}

// Global returns a copy of the graph's top-level settings.
func (g Graph) Global() map[string]any { return copySettings(g.global) }

// WithGlobal returns a graph whose top-level settings are replaced by global.
func (g Graph) WithGlobal(global map[string]any) Graph {
	g.global = copySettings(global)
	return g
}

// Len returns the number of components.
func (g Graph) Len() int { return len(g.components) }

// Has reports whether a component with the given name exists.
func (g Graph) Has(name string) bool {
	_, ok := g.components[Canonical(name)]
	return ok
}

// Component returns the component stored under name. The returned Config is
// a copy and may be modified freely.
func (g Graph) Component(name string) (Component, bool) {
	c, ok := g.components[Canonical(name)]
	if ok {
		c.Config = copySettings(c.Config)
	}
	return c, ok
}

// Names returns all component names in lexicographic order.
func (g Graph) Names() []string {
	return slices.Sorted(maps.Keys(g.components))
}

// NamesOf returns the names of all components of kind k in lexicographic order.
func (g Graph) NamesOf(k Kind) []string {
	var names []string
	for name, c := range g.components {
		if c.Kind == k {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Consumers returns, in lexicographic order, the names of all components
// whose inputs include name.
func (g Graph) Consumers(name string) []string {
	name = Canonical(name)
	var out []string
	for n, c := range g.components {
		if _, ok := c.inputs[name]; ok {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// AddSource returns a graph with a new source component.
// Returns ErrDuplicateComponent if name is already in use.
func (g Graph) AddSource(name string, config map[string]any) (Graph, error) {
	return g.add("add source", name, NewComponent(Source, nil, config))
}

// AddTransform returns a graph with a new transform consuming from inputs.
// Returns ErrDuplicateComponent if name is already in use. Inputs are not
// checked for existence or kind ordering.
func (g Graph) AddTransform(name string, inputs []string, config map[string]any) (Graph, error) {
	return g.add("add transform", name, NewComponent(Transform, inputs, config))
}

// AddSink returns a graph with a new sink consuming from inputs.
// Returns ErrDuplicateComponent if name is already in use. Inputs are not
// checked for existence or kind ordering.
func (g Graph) AddSink(name string, inputs []string, config map[string]any) (Graph, error) {
	return g.add("add sink", name, NewComponent(Sink, inputs, config))
}

// Add returns a graph with a new component of kind k. Inputs are ignored for
// sources.
func (g Graph) Add(k Kind, name string, inputs []string, config map[string]any) (Graph, error) {
	return g.add("add "+k.String(), name, NewComponent(k, inputs, config))
}

func (g Graph) add(op, name string, c Component) (Graph, error) {
	name = Canonical(name)
	if _, exists := g.components[name]; exists {
		return g, g.duplicate(op, name)
	}
	next := g.clone()
	next.components[name] = c
	return next, nil
}

// clone returns a graph sharing component values but owning its component map.
// Component input sets are copied lazily by the with* helpers.
func (g Graph) clone() Graph {
	next := Graph{
		global:     g.global,
		components: make(map[string]Component, len(g.components)+1),
	}
	maps.Copy(next.components, g.components)
	return next
}
