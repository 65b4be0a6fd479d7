package topology

import (
	"fmt"
	"strings"
)

// Canonical returns the canonical form of a component identifier.
// Surrounding whitespace and a single leading ':' are removed.
func Canonical(name string) string {
	name = strings.TrimSpace(name)
	return strings.TrimPrefix(name, ":")
}

// CanonicalValue canonicalizes an identifier decoded from a document.
// Strings, fmt.Stringer values, numbers and booleans are accepted; other
// values (maps, slices, nil) report false.
func CanonicalValue(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return Canonical(x), true
	case fmt.Stringer:
		return Canonical(x.String()), true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Canonical(fmt.Sprint(x)), true
	default:
		return "", false
	}
}

// canonicalSet builds an input set from names.
func canonicalSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[Canonical(n)] = struct{}{}
	}
	return set
}
