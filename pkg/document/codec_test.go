package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// sample builds a small pipeline using only string, bool and nested map
// settings so the decoded form is identical in every format.
func sample(t *testing.T) topology.Graph {
	t.Helper()
	g := topology.Begin(map[string]any{
		"data_dir": "/var/lib/vector",
		"api":      map[string]any{"enabled": true, "address": "127.0.0.1:8686"},
	})
	var err error
	steps := []func(topology.Graph) (topology.Graph, error){
		func(g topology.Graph) (topology.Graph, error) {
			return g.AddSource("logs", map[string]any{"type": "file", "include": []any{"/var/log/*.log"}})
		},
		func(g topology.Graph) (topology.Graph, error) {
			return g.AddSource("stdin", map[string]any{"type": "stdin"})
		},
		func(g topology.Graph) (topology.Graph, error) {
			return g.AddTransform("parse", []string{"logs", "stdin"}, map[string]any{"type": "remap", "source": ". = parse_json!(.message)"})
		},
		func(g topology.Graph) (topology.Graph, error) {
			return g.AddSink("console", []string{"parse"}, map[string]any{"type": "console", "encoding": map[string]any{"codec": "json"}})
		},
		func(g topology.Graph) (topology.Graph, error) {
			return g.AddSink("drop", nil, map[string]any{"type": "blackhole"})
		},
	}
	for _, step := range steps {
		if g, err = step(g); err != nil {
			t.Fatalf("build sample: %v", err)
		}
	}
	return g
}

func TestRoundTrip(t *testing.T) {
	g := sample(t)
	want := g.ToConfig()

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(g, f)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			back, err := Unmarshal(data, f)
			if err != nil {
				t.Fatalf("Unmarshal: %v\n%s", err, data)
			}
			if diff := cmp.Diff(want, back.ToConfig()); diff != "" {
				t.Errorf("round trip (-want +got):\n%s\n%s", diff, data)
			}
		})
	}
}

func TestConvertBetweenFormats(t *testing.T) {
	g := sample(t)
	want := g.ToConfig()

	for _, from := range Formats {
		for _, to := range Formats {
			t.Run(string(from)+"-"+string(to), func(t *testing.T) {
				data, err := Marshal(g, from)
				if err != nil {
					t.Fatal(err)
				}
				mid, err := Unmarshal(data, from)
				if err != nil {
					t.Fatal(err)
				}
				data, err = Marshal(mid, to)
				if err != nil {
					t.Fatal(err)
				}
				out, err := Unmarshal(data, to)
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(want, out.ToConfig()); diff != "" {
					t.Errorf("conversion (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestDecodeHandWritten(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "toml",
			format: TOML,
			input: `
data_dir = "/tmp"

[sources.in]
type = "stdin"

[sinks.out]
type = "console"
inputs = ["in"]
`,
		},
		{
			name:   "yaml",
			format: YAML,
			input: `
data_dir: /tmp
sources:
  in:
    type: stdin
sinks:
  out:
    type: console
    inputs: [in]
`,
		},
		{
			name:   "json",
			format: JSON,
			input:  `{"data_dir": "/tmp", "sources": {"in": {"type": "stdin"}}, "sinks": {"out": {"type": "console", "inputs": ["in"]}}}`,
		},
	}

	want := topology.Document{
		"data_dir":   "/tmp",
		"sources":    map[string]any{"in": map[string]any{"type": "stdin"}},
		"transforms": map[string]any{},
		"sinks":      map[string]any{"out": map[string]any{"type": "console", "inputs": []string{"in"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(want, g.ToConfig()); diff != "" {
				t.Errorf("ToConfig() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeNormalizesValues(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   topology.Document
	}{
		{
			name:   "json numbers",
			format: JSON,
			input:  `{"batch": 10, "ratio": 0.5}`,
			want:   topology.Document{"batch": int64(10), "ratio": 0.5},
		},
		{
			name:   "toml array of tables",
			format: TOML,
			input:  "[[routes]]\nname = \"a\"\n\n[[routes]]\nname = \"b\"\n",
			want: topology.Document{"routes": []any{
				map[string]any{"name": "a"},
				map[string]any{"name": "b"},
			}},
		},
		{
			name:   "yaml integers",
			format: YAML,
			input:  "batch: 10\nlimits: [1, 2]\nratio: 0.5\n",
			want:   topology.Document{"batch": int64(10), "limits": []any{int64(1), int64(2)}, "ratio": 0.5},
		},
		{
			name:   "yaml nested",
			format: YAML,
			input:  "outer:\n  inner:\n    - x\n    - y\n",
			want:   topology.Document{"outer": map[string]any{"inner": []any{"x", "y"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, doc); diff != "" {
				t.Errorf("Decode() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			g, err := Read(strings.NewReader(""), f)
			if err != nil {
				t.Fatalf("Read(empty): %v", err)
			}
			if g.Len() != 0 {
				t.Errorf("Len() = %d, want 0", g.Len())
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		input    string
		wantCode perrors.Code
	}{
		{"json syntax", JSON, `{"sources": `, perrors.ErrCodeInvalidDocument},
		{"yaml syntax", YAML, "sources: [\n", perrors.ErrCodeInvalidDocument},
		{"toml syntax", TOML, "[sources\n", perrors.ErrCodeInvalidDocument},
		{"bad section", JSON, `{"sinks": ["out"]}`, perrors.ErrCodeInvalidDocument},
		{"duplicate", YAML, "sources:\n  a: {}\nsinks:\n  a: {}\n", perrors.ErrCodeDuplicateComponent},
		{"unknown format", Format("hcl"), `x = 1`, perrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if got := perrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err = %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestWriteJSONIndent(t *testing.T) {
	g, _ := topology.Begin(nil).AddSource("in", nil)

	var buf bytes.Buffer
	if err := Write(&buf, g, JSON); err != nil {
		t.Fatal(err)
	}
	want := `{
  "sinks": {},
  "sources": {
    "in": {}
  },
  "transforms": {}
}
`
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	g := sample(t)

	for _, name := range []string{"pipeline.toml", "pipeline.yaml", "pipeline.yml", "pipeline.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(g, path); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			back, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if diff := cmp.Diff(g.ToConfig(), back.ToConfig()); diff != "" {
				t.Errorf("file round trip (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.toml")); !perrors.Is(err, perrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v, want FILE_NOT_FOUND", err)
	}
	if err := WriteFile(g, filepath.Join(dir, "pipeline")); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("no extension: err = %v, want INVALID_FORMAT", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"sources": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(bad)
	if !perrors.Is(err, perrors.ErrCodeInvalidDocument) || !strings.Contains(err.Error(), bad) {
		t.Errorf("bad file: err = %v, want INVALID_DOCUMENT mentioning path", err)
	}
}
