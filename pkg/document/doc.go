// Package document reads and writes pipeline configuration documents.
//
// A document is the serialized form of a [topology.Graph]: top-level settings
// plus "sources", "transforms" and "sinks" sections. This package handles the
// on-disk encodings only; the mapping between graph and document lives in
// package topology.
//
// # Formats
//
//   - [JSON]: encoding/json, two-space indent
//   - [YAML]: gopkg.in/yaml.v3, two-space indent
//   - [TOML]: github.com/BurntSushi/toml
//
// The format of a file is chosen by extension with [FormatFromPath].
//
// # Usage
//
//	g, err := document.ReadFile("vector.toml")     // File → Graph
//	g, err = g.AddSink("debug", []string{"in"}, nil)
//	err = document.WriteFile(g, "vector.yaml")     // Graph → File (converts)
//	data, err := document.Marshal(g, document.JSON) // Graph → []byte
//
// # Decoded Values
//
// Each decoder produces slightly different Go types (YAML yields int, TOML
// int64 and []map[string]any for arrays of tables, JSON float64). Decoded
// documents are normalized so that mappings are map[string]any, sequences
// are []any and whole JSON numbers become int64.
package document
