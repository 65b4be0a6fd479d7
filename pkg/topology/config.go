package topology

import (
	"fmt"
	"maps"
	"slices"
)

// InputsKey is the settings field that carries a transform's or sink's inputs
// in the serialized document.
const InputsKey = "inputs"

// Document is the serialized form of a graph: top-level settings plus one
// section per kind, each mapping component name to its settings.
type Document map[string]any

// Section returns the section map for kind k, or nil if it is missing or not
// a mapping.
func (d Document) Section(k Kind) map[string]any {
	m, _ := asMap(d[k.Section()])
	return m
}

// IsSection reports whether key is one of the three section keys.
func IsSection(key string) bool {
	switch key {
	case SectionSources, SectionTransforms, SectionSinks:
		return true
	}
	return false
}

// ToConfig flattens the graph into its document form.
//
// The result holds the global settings plus the "sources", "transforms" and
// "sinks" sections, which are always present. Transform and sink entries get
// an "inputs" list in lexicographic order; source entries never do. Section
// keys override global settings with the same name. The returned document
// shares no maps with the graph.
func (g Graph) ToConfig() Document {
	doc := Document(copySettings(g.global))
	sections := make(map[Kind]map[string]any, len(Kinds))
	for _, k := range Kinds {
		sections[k] = map[string]any{}
		doc[k.Section()] = sections[k]
	}

	for name, c := range g.components {
		section, ok := sections[c.Kind]
		if !ok {
			continue
		}
		settings := copySettings(c.Config)
		if c.Kind != Source {
			inputs := c.Inputs()
			if inputs == nil {
				inputs = []string{}
			}
			settings[InputsKey] = inputs
		}
		section[name] = settings
	}
	return doc
}

// FromConfig rebuilds a graph from a document produced by [Graph.ToConfig]
// or written by hand in the same shape.
//
// Keys other than the three section keys become global settings. Sections
// are applied in source, transform, sink order, and entries within a section
// in name order, so duplicate names are reported exactly as the Add methods
// would report them. For transforms and sinks the "inputs" field is moved
// out of the settings into the input set; source settings are kept whole.
//
// Returns ErrInvalidDocument when a section or entry is not a mapping or an
// inputs field is not a name or list of names, and ErrDuplicateComponent when
// a name appears twice.
func FromConfig(doc Document) (Graph, error) {
	const op = "import"
	global := make(map[string]any, len(doc))
	for k, v := range doc {
		if !IsSection(k) {
			global[k] = v
		}
	}
	g := Begin(global)

	for _, kind := range Kinds {
		raw, present := doc[kind.Section()]
		if !present || raw == nil {
			continue
		}
		section, ok := asMap(raw)
		if !ok {
			return Graph{}, &ComponentError{
				Op:     op,
				Name:   kind.Section(),
				Detail: fmt.Sprintf("section must be a mapping, got %T", raw),
				Err:    ErrInvalidDocument,
			}
		}

		for _, name := range slices.Sorted(maps.Keys(section)) {
			settings, ok := asMap(section[name])
			if !ok && section[name] != nil {
				return Graph{}, &ComponentError{
					Op:     op,
					Name:   Canonical(name),
					Detail: fmt.Sprintf("%s entry must be a mapping, got %T", kind, section[name]),
					Err:    ErrInvalidDocument,
				}
			}

			config := copySettings(settings)
			var inputs []string
			if kind != Source {
				var err error
				if inputs, err = parseInputs(config[InputsKey]); err != nil {
					return Graph{}, &ComponentError{Op: op, Name: Canonical(name), Detail: err.Error(), Err: ErrInvalidDocument}
				}
				delete(config, InputsKey)
			}

			var err error
			if g, err = g.Add(kind, name, inputs, config); err != nil {
				return Graph{}, err
			}
		}
	}
	return g, nil
}

// parseInputs converts a decoded inputs field into names. A single scalar is
// accepted as a one-element list.
func parseInputs(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))
		for i, item := range x {
			name, ok := CanonicalValue(item)
			if !ok {
				return nil, fmt.Errorf("inputs[%d] must be a component name, got %T", i, item)
			}
			out = append(out, name)
		}
		return out, nil
	default:
		name, ok := CanonicalValue(x)
		if !ok {
			return nil, fmt.Errorf("inputs must be a list of component names, got %T", v)
		}
		return []string{name}, nil
	}
}

// asMap accepts the mapping types produced by the JSON, YAML and TOML
// decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
