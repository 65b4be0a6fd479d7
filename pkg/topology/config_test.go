package topology

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToConfigEmpty(t *testing.T) {
	tests := []struct {
		name   string
		global map[string]any
		want   Document
	}{
		{
			name:   "nil",
			global: nil,
			want:   Document{"sources": map[string]any{}, "transforms": map[string]any{}, "sinks": map[string]any{}},
		},
		{
			name:   "settings",
			global: map[string]any{"data_dir": "/tmp", "api": map[string]any{"enabled": true}},
			want: Document{
				"data_dir":   "/tmp",
				"api":        map[string]any{"enabled": true},
				"sources":    map[string]any{},
				"transforms": map[string]any{},
				"sinks":      map[string]any{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Begin(tt.global).ToConfig()); diff != "" {
				t.Errorf("ToConfig() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToConfigScenario(t *testing.T) {
	want := Document{
		"sources":    map[string]any{"s1": map[string]any{}},
		"transforms": map[string]any{"t1": map[string]any{"inputs": []string{"s1"}}},
		"sinks":      map[string]any{"k1": map[string]any{"inputs": []string{"t1"}}},
	}
	if diff := cmp.Diff(want, basic(t).ToConfig()); diff != "" {
		t.Errorf("ToConfig() (-want +got):\n%s", diff)
	}
}

func TestToConfigSortedInputsAndSettings(t *testing.T) {
	g := Begin(nil)
	g, _ = g.AddSource("b", map[string]any{"type": "file"})
	g, _ = g.AddSource("a", nil)
	g, _ = g.AddSink("out", []string{"b", "a"}, map[string]any{"type": "console", "encoding": map[string]any{"codec": "json"}})

	want := Document{
		"sources": map[string]any{
			"a": map[string]any{},
			"b": map[string]any{"type": "file"},
		},
		"transforms": map[string]any{},
		"sinks": map[string]any{
			"out": map[string]any{
				"type":     "console",
				"encoding": map[string]any{"codec": "json"},
				"inputs":   []string{"a", "b"},
			},
		},
	}
	doc := g.ToConfig()
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("ToConfig() (-want +got):\n%s", diff)
	}

	doc.Section(Sink)["out"].(map[string]any)["type"] = "mutated"
	c, _ := g.Component("out")
	if c.Config["type"] != "console" {
		t.Error("mutating the document changed the graph")
	}
}

func TestFromConfig(t *testing.T) {
	doc := Document{
		"data_dir": "/var/lib/vector",
		"sources": map[string]any{
			"in": map[string]any{"type": "stdin"},
		},
		"transforms": map[string]any{
			"parse": map[string]any{"type": "remap", "inputs": []any{":in"}},
		},
		"sinks": map[string]any{
			"out":  map[string]any{"type": "console", "inputs": []any{"parse", "in"}},
			"null": map[string]any{"type": "blackhole", "inputs": "parse"},
		},
	}

	g, err := FromConfig(doc)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	if got := g.Global(); got["data_dir"] != "/var/lib/vector" || len(got) != 1 {
		t.Errorf("Global() = %v", got)
	}
	tests := []struct {
		name       string
		kind       Kind
		wantInputs []string
		wantType   string
	}{
		{"in", Source, nil, "stdin"},
		{"parse", Transform, []string{"in"}, "remap"},
		{"out", Sink, []string{"in", "parse"}, "console"},
		{"null", Sink, []string{"parse"}, "blackhole"},
	}
	for _, tt := range tests {
		c, ok := g.Component(tt.name)
		if !ok {
			t.Fatalf("%s missing", tt.name)
		}
		if c.Kind != tt.kind {
			t.Errorf("%s.Kind = %v, want %v", tt.name, c.Kind, tt.kind)
		}
		if diff := cmp.Diff(tt.wantInputs, c.Inputs()); diff != "" {
			t.Errorf("%s inputs (-want +got):\n%s", tt.name, diff)
		}
		if c.Config["type"] != tt.wantType {
			t.Errorf("%s type = %v, want %v", tt.name, c.Config["type"], tt.wantType)
		}
		if _, ok := c.Config[InputsKey]; ok {
			t.Errorf("%s config still carries inputs", tt.name)
		}
	}
}

func TestFromConfigSourceKeepsSettings(t *testing.T) {
	g, err := FromConfig(Document{
		"sources": map[string]any{"in": map[string]any{"inputs": []any{"x"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c, _ := g.Component("in")
	if c.InputCount() != 0 {
		t.Errorf("source inputs = %v, want none", c.Inputs())
	}
	if _, ok := c.Config[InputsKey]; !ok {
		t.Error("source settings should be kept whole")
	}
}

func TestFromConfigSinksSection(t *testing.T) {
	g, err := FromConfig(Document{
		"transforms": map[string]any{"t": map[string]any{}},
		"sinks":      map[string]any{"k": map[string]any{"inputs": []any{"t"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if k, _ := g.Component("k"); k.Kind != Sink {
		t.Errorf("k.Kind = %v, want sink", k.Kind)
	}
	if tr, _ := g.Component("t"); tr.Kind != Transform {
		t.Errorf("t.Kind = %v, want transform", tr.Kind)
	}
}

func TestFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want error
	}{
		{
			name: "section not a map",
			doc:  Document{"sources": []any{"a"}},
			want: ErrInvalidDocument,
		},
		{
			name: "entry not a map",
			doc:  Document{"sinks": map[string]any{"k": "console"}},
			want: ErrInvalidDocument,
		},
		{
			name: "inputs not names",
			doc:  Document{"sinks": map[string]any{"k": map[string]any{"inputs": []any{map[string]any{}}}}},
			want: ErrInvalidDocument,
		},
		{
			name: "inputs wrong type",
			doc:  Document{"transforms": map[string]any{"t": map[string]any{"inputs": map[string]any{}}}},
			want: ErrInvalidDocument,
		},
		{
			name: "duplicate across sections",
			doc: Document{
				"sources": map[string]any{"x": map[string]any{}},
				"sinks":   map[string]any{"x": map[string]any{}},
			},
			want: ErrDuplicateComponent,
		},
		{
			name: "duplicate by spelling",
			doc:  Document{"sources": map[string]any{"x": nil, ":x": nil}},
			want: ErrDuplicateComponent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromConfig(tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("FromConfig() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromConfigAcceptsDecoderMaps(t *testing.T) {
	g, err := FromConfig(Document{
		"sources": map[any]any{"in": map[any]any{"type": "stdin"}},
		"sinks":   map[string]any{"out": map[string]any{"inputs": []string{"in"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c, _ := g.Component("in")
	if c.Config["type"] != "stdin" {
		t.Errorf("in.Config = %v", c.Config)
	}
}

func TestRoundTrip(t *testing.T) {
	g := Begin(map[string]any{"timezone": "UTC"})
	g, _ = g.AddSource("s1", map[string]any{"type": "file", "include": []any{"/var/log/*.log"}})
	g, _ = g.AddSource("s2", map[string]any{"type": "stdin"})
	g, _ = g.AddTransform("t1", nil, map[string]any{"type": "remap"})
	g, _ = g.AddTransform("t2", nil, nil)
	g, _ = g.AddSink("k1", nil, map[string]any{"type": "console"})
	g, _ = g.Link("s1", "t1")
	g, _ = g.Link("t1", "s2")
	g, _ = g.Link("t1", "t2")
	g, _ = g.Link("k1", "t2")
	g, _ = g.Link("s2", "k1")
	g, _ = g.Unlink("s2", "k1")

	want := g.ToConfig()
	back, err := FromConfig(want)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if diff := cmp.Diff(want, back.ToConfig()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}
