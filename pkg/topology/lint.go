package topology

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
)

// IssueCode classifies a structural problem found by [Graph.Lint].
type IssueCode string

const (
	// IssueDanglingInput: an input names a component that does not exist.
	IssueDanglingInput IssueCode = "dangling-input"
	// IssueSourceInputs: a source lists inputs.
	IssueSourceInputs IssueCode = "source-inputs"
	// IssueSinkUpstream: a sink is used as another component's input.
	IssueSinkUpstream IssueCode = "sink-upstream"
	// IssueSelfLoop: a component lists itself as an input.
	IssueSelfLoop IssueCode = "self-loop"
	// IssueCycle: inputs form a cycle through two or more components.
	IssueCycle IssueCode = "cycle"
	// IssueInvalidKind: a component's kind is outside the three known kinds.
	IssueInvalidKind IssueCode = "invalid-kind"
)

// Issue is a single structural problem. Issues are reported, never enforced:
// the graph remains usable and serializable.
type Issue struct {
	Code      IssueCode
	Component string // Component the issue was found on
	Input     string // Offending input, if any
}

// Error implements the error interface so issues can be aggregated.
func (i Issue) Error() string {
	switch i.Code {
	case IssueDanglingInput:
		return fmt.Sprintf("%s: input %q does not exist", i.Component, i.Input)
	case IssueSourceInputs:
		return fmt.Sprintf("%s: source has input %q", i.Component, i.Input)
	case IssueSinkUpstream:
		return fmt.Sprintf("%s: input %q is a sink", i.Component, i.Input)
	case IssueSelfLoop:
		return fmt.Sprintf("%s: consumes from itself", i.Component)
	case IssueCycle:
		return fmt.Sprintf("%s: input %q closes a cycle", i.Component, i.Input)
	case IssueInvalidKind:
		return fmt.Sprintf("%s: unknown component kind", i.Component)
	default:
		return fmt.Sprintf("%s: %s", i.Component, i.Code)
	}
}

// Lint inspects the graph for edges that the construction operations do not
// prevent: dangling inputs, inputs on sources, sinks used as inputs,
// self-loops and cycles. Issues are ordered by component name.
func (g Graph) Lint() []Issue {
	var issues []Issue
	for _, name := range g.Names() {
		c := g.components[name]
		if !c.Kind.Valid() {
			issues = append(issues, Issue{Code: IssueInvalidKind, Component: name})
		}
		for _, in := range c.Inputs() {
			up, exists := g.components[in]
			switch {
			case in == name:
				issues = append(issues, Issue{Code: IssueSelfLoop, Component: name, Input: in})
			case !exists:
				issues = append(issues, Issue{Code: IssueDanglingInput, Component: name, Input: in})
			case c.Kind == Source:
				issues = append(issues, Issue{Code: IssueSourceInputs, Component: name, Input: in})
			case up.Kind == Sink:
				issues = append(issues, Issue{Code: IssueSinkUpstream, Component: name, Input: in})
			}
		}
	}

	issues = append(issues, g.detectCycles()...)
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if a.Component < b.Component {
			return -1
		}
		if a.Component > b.Component {
			return 1
		}
		return 0
	})
	return issues
}

// Validate returns every issue reported by [Graph.Lint] combined into one
// error, or nil when there are none. Use multierr.Errors to split it.
func (g Graph) Validate() error {
	var err error
	for _, issue := range g.Lint() {
		err = multierr.Append(err, issue)
	}
	return err
}

// detectCycles walks inputs depth-first and reports each back edge.
// Self-loops are reported separately by Lint.
func (g Graph) detectCycles() []Issue {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.components))
	var issues []Issue

	var dfs func(name string)
	dfs = func(name string) {
		color[name] = gray
		for _, in := range g.components[name].Inputs() {
			if in == name {
				continue
			}
			if _, ok := g.components[in]; !ok {
				continue
			}
			switch color[in] {
			case white:
				dfs(in)
			case gray:
				issues = append(issues, Issue{Code: IssueCycle, Component: name, Input: in})
			}
		}
		color[name] = black
	}

	for _, name := range g.Names() {
		if color[name] == white {
			dfs(name)
		}
	}
	return issues
}
