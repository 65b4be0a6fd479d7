package topology

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// Kind is the category of a component. Kinds are totally ordered:
// Source < Transform < Sink.
type Kind int

const (
	// Source produces events and never has inputs.
	Source Kind = iota
	// Transform consumes from sources or other transforms.
	Transform
	// Sink consumes from sources or transforms and has no consumers.
	Sink
)

// Document section keys, one per kind.
const (
	SectionSources    = "sources"
	SectionTransforms = "transforms"
	SectionSinks      = "sinks"
)

// Kinds lists every kind in order.
var Kinds = [...]Kind{Source, Transform, Sink}

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Transform:
		return "transform"
	case Sink:
		return "sink"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Section returns the document section key for the kind.
func (k Kind) Section() string {
	switch k {
	case Source:
		return SectionSources
	case Transform:
		return SectionTransforms
	case Sink:
		return SectionSinks
	default:
		return ""
	}
}

// Valid reports whether k is one of the three kinds.
func (k Kind) Valid() bool { return k >= Source && k <= Sink }

// Less reports whether k is ordered strictly before o.
func (k Kind) Less(o Kind) bool { return k < o }

// ParseKind parses a kind name. Both singular and section spellings are
// accepted ("sink" and "sinks").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", SectionSources:
		return Source, nil
	case "transform", SectionTransforms:
		return Transform, nil
	case "sink", SectionSinks:
		return Sink, nil
	default:
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "unknown component kind %q (want source, transform or sink)", s)
	}
}
