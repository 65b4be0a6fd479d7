package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DiagramKeyOpts holds the render settings that change a diagram's bytes.
type DiagramKeyOpts struct {
	Format string // output format; empty means svg
}

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey returns the key for a diagram rendered from DOT source.
	DiagramKey(dot string, opts DiagramKeyOpts) string
}

// DefaultKeyer builds keys of the form "diagram:<format>:<sha256 of dot>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DiagramKey(dot string, opts DiagramKeyOpts) string {
	format := opts.Format
	if format == "" {
		format = "svg"
	}
	return "diagram:" + format + ":" + Hash([]byte(dot))
}

// ScopedKeyer prefixes every key from an inner keyer. The CLI scopes keys by
// build, since Graphviz output may change between releases:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Scope()+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) DiagramKey(dot string, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(dot, opts)
}

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
