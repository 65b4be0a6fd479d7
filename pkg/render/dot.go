package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pipegraph/pkg/topology"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the component kind and scalar settings to node labels.
	// When false, only the component name is shown.
	Detailed bool
	// ShowDangling draws inputs that reference missing components.
	ShowDangling bool
}

var kindAttrs = map[topology.Kind]string{
	topology.Source:    `shape=ellipse, style=filled, fillcolor="#d9f2d9"`,
	topology.Transform: `shape=box, style="rounded,filled", fillcolor="#d6e6f7"`,
	topology.Sink:      `shape=doubleoctagon, style=filled, fillcolor="#fbe3cc"`,
}

// ToDOT converts a topology to Graphviz DOT format.
// The result can be rendered with [RenderSVG].
func ToDOT(g topology.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pipeline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, k := range topology.Kinds {
		for _, name := range g.NamesOf(k) {
			c, _ := g.Component(name)
			fmt.Fprintf(&buf, "  %q [label=%q, %s];\n", name, fmtLabel(name, c, opts.Detailed), kindAttrs[k])
		}
	}

	dangling := map[string]bool{}
	buf.WriteString("\n")
	for _, name := range g.Names() {
		c, _ := g.Component(name)
		for _, in := range c.Inputs() {
			if !g.Has(in) {
				if !opts.ShowDangling {
					continue
				}
				dangling[in] = true
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", in, name)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", in, name)
		}
	}

	if len(dangling) > 0 {
		buf.WriteString("\n")
		for _, in := range slices.Sorted(maps.Keys(dangling)) {
			fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=dashed, color=grey, fontcolor=grey];\n", in, in+"\n(missing)")
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(name string, c topology.Component, detailed bool) string {
	if !detailed {
		return name
	}

	parts := []string{"kind: " + c.Kind.String()}
	for _, k := range slices.Sorted(maps.Keys(c.Config)) {
		switch v := c.Config[k].(type) {
		case map[string]any, []any, []string, nil:
			continue
		default:
			parts = append(parts, fmt.Sprintf("%s: %v", k, v))
		}
	}

	return name + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales with its
// container instead of using Graphviz's point-based width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
