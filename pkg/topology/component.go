package topology

import (
	"maps"
	"slices"
)

// Component is a named node of the pipeline graph.
//
// The input set is unexported so that every stored name is canonical; build
// components with [NewComponent] and adjust inputs with [Component.WithInputs].
// Config is owned by the caller and is never inspected.
type Component struct {
	Kind   Kind
	Config map[string]any

	inputs map[string]struct{}
}

// NewComponent creates a component of the given kind. Input names are
// canonicalized and deduplicated. Sources ignore inputs.
func NewComponent(kind Kind, inputs []string, config map[string]any) Component {
	c := Component{Kind: kind, Config: copySettings(config)}
	if kind != Source {
		c.inputs = canonicalSet(inputs)
	}
	return c
}

// Inputs returns the component's input names in lexicographic order.
func (c Component) Inputs() []string {
	return slices.Sorted(maps.Keys(c.inputs))
}

// HasInput reports whether name is one of the component's inputs.
func (c Component) HasInput(name string) bool {
	_, ok := c.inputs[Canonical(name)]
	return ok
}

// InputCount returns the number of inputs.
func (c Component) InputCount() int { return len(c.inputs) }

// WithInputs returns a copy of c whose input set is replaced by names.
// Unlike NewComponent, this does not drop inputs for sources.
func (c Component) WithInputs(names ...string) Component {
	c.inputs = canonicalSet(names)
	return c
}

// withInput returns a copy of c with name added to its inputs.
func (c Component) withInput(name string) Component {
	set := maps.Clone(c.inputs)
	if set == nil {
		set = make(map[string]struct{}, 1)
	}
	set[name] = struct{}{}
	c.inputs = set
	return c
}

// withoutInput returns a copy of c with name removed from its inputs.
// The receiver is returned unchanged when name is not an input.
func (c Component) withoutInput(name string) Component {
	if _, ok := c.inputs[name]; !ok {
		return c
	}
	set := maps.Clone(c.inputs)
	delete(set, name)
	c.inputs = set
	return c
}

// replaceInput returns a copy of c with old swapped for repl in its inputs.
func (c Component) replaceInput(old, repl string) Component {
	if _, ok := c.inputs[old]; !ok {
		return c
	}
	set := maps.Clone(c.inputs)
	delete(set, old)
	set[repl] = struct{}{}
	c.inputs = set
	return c
}

// normalized re-canonicalizes the input set of a component supplied by a
// caller and takes a private copy of its settings.
func (c Component) normalized() Component {
	c.Config = copySettings(c.Config)
	set := make(map[string]struct{}, len(c.inputs))
	for n := range c.inputs {
		set[Canonical(n)] = struct{}{}
	}
	c.inputs = set
	return c
}

// copySettings creates a shallow copy of a settings map.
// A nil map is copied to an empty one so serialized entries are never null.
func copySettings(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	maps.Copy(out, m)
	return out
}
