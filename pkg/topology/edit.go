package topology

// Link returns a graph with an edge between a and b.
//
// The upstream end is the component of the lower kind. When both have the
// same kind, a is upstream of b. The upstream name is added to the downstream
// component's inputs. Linking is idempotent, and a component may be linked to
// itself; Lint reports such shapes.
//
// Returns ErrComponentNotFound if either component is absent.
func (g Graph) Link(a, b string) (Graph, error) {
	const op = "link"
	up, down, err := g.orient(op, a, b)
	if err != nil {
		return g, err
	}
	next := g.clone()
	next.components[down] = next.components[down].withInput(up)
	return next, nil
}

// orient returns the canonical (upstream, downstream) pair for an edge
// between a and b.
func (g Graph) orient(op, a, b string) (string, string, error) {
	a, b = Canonical(a), Canonical(b)
	ca, ok := g.components[a]
	if !ok {
		return "", "", g.notFound(op, a)
	}
	cb, ok := g.components[b]
	if !ok {
		return "", "", g.notFound(op, b)
	}
	if cb.Kind.Less(ca.Kind) {
		return b, a, nil
	}
	return a, b, nil
}

// Unlink returns a graph with any edge between a and b removed, in either
// direction. Missing edges are ignored.
//
// Returns ErrComponentNotFound if either component is absent.
func (g Graph) Unlink(a, b string) (Graph, error) {
	const op = "unlink"
	a, b = Canonical(a), Canonical(b)
	if _, ok := g.components[a]; !ok {
		return g, g.notFound(op, a)
	}
	if _, ok := g.components[b]; !ok {
		return g, g.notFound(op, b)
	}
	next := g.clone()
	next.components[a] = next.components[a].withoutInput(b)
	next.components[b] = next.components[b].withoutInput(a)
	return next, nil
}

// InjectBefore returns a graph with a new transform placed in front of
// downstream. The transform takes over all of downstream's inputs and becomes
// its only input.
//
// Returns ErrComponentNotFound if downstream is absent, ErrWrongKind if it
// is a source, and ErrDuplicateComponent if name is already in use.
func (g Graph) InjectBefore(downstream, name string, config map[string]any) (Graph, error) {
	const op = "inject before"
	downstream, name = Canonical(downstream), Canonical(name)
	target, ok := g.components[downstream]
	if !ok {
		return g, g.notFound(op, downstream)
	}
	if target.Kind == Source {
		return g, g.wrongKind(op, downstream, "a source cannot gain an upstream component")
	}
	if _, exists := g.components[name]; exists {
		return g, g.duplicate(op, name)
	}

	injected := NewComponent(Transform, target.Inputs(), config)
	next := g.clone()
	next.components[name] = injected
	next.components[downstream] = target.WithInputs(name)
	return next, nil
}

// InjectAfter returns a graph with a new transform placed behind upstream.
// The transform consumes from upstream, and every other component that
// consumed from upstream consumes from the transform instead.
//
// Returns ErrComponentNotFound if upstream is absent, ErrWrongKind if it is a
// sink, and ErrDuplicateComponent if name is already in use.
func (g Graph) InjectAfter(upstream, name string, config map[string]any) (Graph, error) {
	const op = "inject after"
	upstream, name = Canonical(upstream), Canonical(name)
	source, ok := g.components[upstream]
	if !ok {
		return g, g.notFound(op, upstream)
	}
	if source.Kind == Sink {
		return g, g.wrongKind(op, upstream, "a sink has no consumers to splice into")
	}
	if _, exists := g.components[name]; exists {
		return g, g.duplicate(op, name)
	}

	next := g.clone()
	for n, c := range next.components {
		if n == upstream {
			continue
		}
		next.components[n] = c.replaceInput(upstream, name)
	}
	next.components[name] = NewComponent(Transform, []string{upstream}, config)
	return next, nil
}

// Remove returns a graph without the named component. Every other component
// that listed it as an input has that input dropped. Removing an absent
// component only prunes references to it.
func (g Graph) Remove(name string) Graph {
	name = Canonical(name)
	next := g.clone()
	delete(next.components, name)
	for n, c := range next.components {
		next.components[n] = c.withoutInput(name)
	}
	return next
}

// UpdateFunc receives the current component and whether it exists, and
// returns the replacement and whether to keep it.
type UpdateFunc func(c Component, ok bool) (Component, bool)

// Update applies f to the component stored under name. An absent component is
// passed as the zero Component with ok false.
//
// If f returns keep false the component is removed as by [Graph.Remove].
// Otherwise the replacement's inputs are re-canonicalized and it is stored
// under name. The replacement may change kind; ordering is not re-checked.
func (g Graph) Update(name string, f UpdateFunc) Graph {
	name = Canonical(name)
	cur, ok := g.Component(name)
	repl, keep := f(cur, ok)
	if !keep {
		return g.Remove(name)
	}
	next := g.clone()
	next.components[name] = repl.normalized()
	return next
}

// Rename returns a graph where the component old is stored under newName and
// every input referencing old references newName instead.
//
// Returns ErrComponentNotFound if old is absent and ErrDuplicateComponent if
// newName is already in use by another component.
func (g Graph) Rename(old, newName string) (Graph, error) {
	const op = "rename"
	old, newName = Canonical(old), Canonical(newName)
	c, ok := g.components[old]
	if !ok {
		return g, g.notFound(op, old)
	}
	if old == newName {
		return g, nil
	}
	if _, exists := g.components[newName]; exists {
		return g, g.duplicate(op, newName)
	}

	next := g.clone()
	delete(next.components, old)
	next.components[newName] = c
	for n, comp := range next.components {
		next.components[n] = comp.replaceInput(old, newName)
	}
	return next, nil
}
