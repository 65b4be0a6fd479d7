package document

import (
	"path/filepath"
	"strings"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// Format identifies a document encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{TOML, YAML, JSON}

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	default:
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q (must be 'toml', 'yaml' or 'json')", s)
	}
}

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", perrors.New(perrors.ErrCodeInvalidFormat, "cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Extension returns the canonical file extension for the format, with dot.
func (f Format) Extension() string {
	return "." + string(f)
}
