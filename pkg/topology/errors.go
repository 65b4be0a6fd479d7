package topology

import (
	"fmt"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

var (
	// ErrComponentNotFound is returned when an edit names a component that
	// does not exist in the graph.
	ErrComponentNotFound = perrors.New(perrors.ErrCodeComponentNotFound, "component not found")

	// ErrDuplicateComponent is returned when a component is added under a name
	// that is already in use.
	ErrDuplicateComponent = perrors.New(perrors.ErrCodeDuplicateComponent, "component already exists")

	// ErrWrongKind is returned when an edit's kind precondition fails, such as
	// injecting a transform before a source or after a sink.
	ErrWrongKind = perrors.New(perrors.ErrCodeWrongKind, "wrong component kind")

	// ErrInvalidDocument is returned by [FromConfig] for sections or entries
	// that do not have the expected shape.
	ErrInvalidDocument = perrors.New(perrors.ErrCodeInvalidDocument, "invalid configuration document")
)

// ComponentError describes a failed edit. It records the operation, the
// offending component name, the component itself when it exists, and the
// graph the edit was applied to.
type ComponentError struct {
	Op        string     // Operation name, e.g. "link"
	Name      string     // Offending component name (canonical)
	Component *Component // Offending component, nil when absent
	Graph     Graph      // Graph state at the time of failure
	Detail    string     // Optional extra context
	Err       error      // One of the package sentinels
}

// Error implements the error interface.
func (e *ComponentError) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
	if e.Component != nil {
		msg = fmt.Sprintf("%s %s %q: %v", e.Op, e.Component.Kind, e.Name, e.Err)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *ComponentError) Unwrap() error { return e.Err }

func (g Graph) notFound(op, name string) error {
	return &ComponentError{Op: op, Name: name, Graph: g, Err: ErrComponentNotFound}
}

func (g Graph) duplicate(op, name string) error {
	c := g.components[name]
	return &ComponentError{Op: op, Name: name, Component: &c, Graph: g, Err: ErrDuplicateComponent}
}

func (g Graph) wrongKind(op, name, detail string) error {
	c := g.components[name]
	return &ComponentError{Op: op, Name: name, Component: &c, Graph: g, Detail: detail, Err: ErrWrongKind}
}
