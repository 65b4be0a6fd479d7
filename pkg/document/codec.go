package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// =============================================================================
// Graph API
// =============================================================================

// Marshal encodes a graph in the given format.
func Marshal(g topology.Graph, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g.ToConfig(), f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a graph from data in the given format.
func Unmarshal(data []byte, f Format) (topology.Graph, error) {
	return Read(bytes.NewReader(data), f)
}

// Write encodes a graph to w in the given format.
func Write(w io.Writer, g topology.Graph, f Format) error {
	return Encode(w, g.ToConfig(), f)
}

// Read decodes a graph from r in the given format.
// Returns INVALID_DOCUMENT errors for malformed input and the topology errors
// of [topology.FromConfig] for structural problems.
func Read(r io.Reader, f Format) (topology.Graph, error) {
	doc, err := Decode(r, f)
	if err != nil {
		return topology.Graph{}, err
	}
	return topology.FromConfig(doc)
}

// WriteFile encodes a graph into path, choosing the format by extension.
// The document is fully encoded before the file is touched, so an encoding
// failure leaves any existing file intact.
func WriteFile(g topology.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(g, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile decodes the graph stored at path, choosing the format by extension.
func ReadFile(path string) (topology.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return topology.Graph{}, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return topology.Graph{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return topology.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return topology.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// =============================================================================
// Document API
// =============================================================================

// Encode writes a raw document to w.
func Encode(w io.Writer, doc topology.Document, f Format) error {
	var err error
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(map[string]any(doc)); err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(map[string]any(doc))
	default:
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidDocument, err, "encode %s", f)
	}
	return nil
}

// Decode reads a raw document from r. An empty input decodes to an empty
// document.
func Decode(r io.Reader, f Format) (topology.Document, error) {
	raw := map[string]any{}
	var err error
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err = dec.Decode(&raw); err == io.EOF {
			err = nil
		}
	case YAML:
		if err = yaml.NewDecoder(r).Decode(&raw); err == io.EOF {
			err = nil
		}
	case TOML:
		_, err = toml.NewDecoder(r).Decode(&raw)
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidDocument, err, "decode %s", f)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return topology.Document(normalizeMap(raw)), nil
}
