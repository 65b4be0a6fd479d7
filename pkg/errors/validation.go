package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds component names accepted from the command line.
const maxNameLength = 256

// ValidateComponentName validates a component name supplied by a user.
//
// The topology core accepts any canonical string; this check is applied at the
// CLI boundary so that names stay usable as document keys in every format:
//   - No empty names
//   - No control characters
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateComponentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "component name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "component name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "component name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "component name cannot contain whitespace: %q", name)
		}
	}

	return nil
}

// ValidateSetting validates a "key=value" setting expression and returns its parts.
func ValidateSetting(expr string) (key, value string, err error) {
	key, value, ok := strings.Cut(expr, "=")
	if !ok {
		return "", "", New(ErrCodeInvalidInput, "setting %q must have the form key=value", expr)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", New(ErrCodeInvalidInput, "setting %q has an empty key", expr)
	}
	return key, value, nil
}

// ValidateDocumentPath validates the path of a pipeline document.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must end in a recognized extension (.json, .yaml, .yml, .toml)
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "unsupported document extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}
