package cli

import (
	"maps"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// parseSettings turns repeated --set key=value flags into a settings map.
// Dotted keys nest: "codec.type=json" yields {"codec": {"type": "json"}}.
func parseSettings(exprs []string) (map[string]any, error) {
	out := make(map[string]any, len(exprs))
	if err := applySettings(out, exprs); err != nil {
		return nil, err
	}
	return out, nil
}

// applySettings merges --set expressions into dst. Nested maps along a
// dotted path are cloned before writing, so maps shared with a graph
// snapshot are never mutated.
func applySettings(dst map[string]any, exprs []string) error {
	for _, expr := range exprs {
		key, raw, err := perrors.ValidateSetting(expr)
		if err != nil {
			return err
		}
		path := strings.Split(key, ".")
		for _, p := range path {
			if p == "" {
				return perrors.New(perrors.ErrCodeInvalidInput, "invalid setting key %q", key)
			}
		}
		setPath(dst, path, parseValue(raw))
	}
	return nil
}

// unsetPath removes a dotted key from dst, cloning nested maps on the way.
func unsetPath(dst map[string]any, key string) {
	path := strings.Split(key, ".")
	m := dst
	for _, p := range path[:len(path)-1] {
		child, ok := m[p].(map[string]any)
		if !ok {
			return
		}
		child = maps.Clone(child)
		m[p] = child
		m = child
	}
	delete(m, path[len(path)-1])
}

func setPath(m map[string]any, path []string, v any) {
	for _, p := range path[:len(path)-1] {
		child, ok := m[p].(map[string]any)
		if ok {
			child = maps.Clone(child)
		} else {
			child = make(map[string]any)
		}
		m[p] = child
		m = child
	}
	m[path[len(path)-1]] = v
}

// parseValue interprets raw as a TOML value so that numbers, booleans,
// arrays and inline tables keep their type. Anything that is not valid TOML
// is taken as a bare string.
func parseValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "\r\n") {
		return raw
	}
	var doc map[string]any
	if _, err := toml.Decode("v = "+raw, &doc); err != nil {
		return raw
	}
	if v, ok := doc["v"]; ok && len(doc) == 1 {
		return v
	}
	return raw
}
