package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipegraph/pkg/cache"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/observability"
	"github.com/matzehuels/pipegraph/pkg/render"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // .svg or .dot path; defaults to the document name with .svg
	detailed bool   // show kind and scalar settings in node labels
	dangling bool   // draw inputs that reference missing components
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{dangling: true}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the topology as an SVG or DOT diagram",
		Long: `Render the topology as a left-to-right diagram.

The output format follows the extension of --output: .dot writes Graphviz
source, .svg renders it. Rendered SVGs are cached by the hash of their DOT
source; use --no-cache to force a fresh render.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show component kind and settings")
	cmd.Flags().BoolVar(&opts.dangling, "dangling", opts.dangling, "draw inputs that reference missing components")
	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	g, err := c.load(ctx)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(c.file, filepath.Ext(c.file)) + ".svg"
	}
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".svg" && ext != ".dot" {
		return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported diagram format %q (must be .svg or .dot)", ext)
	}

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed, ShowDangling: opts.dangling})

	data := []byte(dot)
	cached := false
	if ext == ".svg" {
		data, cached, err = c.renderCached(ctx, dot, g.Len())
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", out)
	}
	logger.Debug("wrote diagram", "path", out, "bytes", len(data), "cached", cached)

	printSuccess("Rendered %s", StyleHighlight.Render(filepath.Base(out)))
	printStats(g, cached)
	printFile(out)
	return nil
}

// cacheKeyType labels diagram entries in cache events.
const cacheKeyType = "diagram"

// renderCached renders dot to SVG, consulting the render cache first.
func (c *CLI) renderCached(ctx context.Context, dot string, components int) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	store, err := newCache(c.noCache)
	if err != nil {
		logger.Warn("cache unavailable, rendering without it", "error", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	key := newKeyer().DiagramKey(dot, cache.DiagramKeyOpts{Format: "svg"})
	if data, hit, err := store.Get(ctx, key); err != nil {
		logger.Debug("cache read failed", "error", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, "svg", components)
	prog := newProgress(logger)
	spin := newSpinner(ctx, "Rendering diagram...")
	spin.Start()
	svg, err := render.RenderSVG(ctx, dot)
	hooks.OnRenderComplete(ctx, "svg", len(svg), time.Since(prog.start), err)
	if err != nil {
		spin.StopWithError("Render failed")
		return nil, false, err
	}
	spin.Stop()
	prog.done("Rendered SVG")

	if err := store.Set(ctx, key, svg, 0); err != nil {
		logger.Debug("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(svg))
	}
	return svg, false, nil
}

// edgeCount counts input references, dangling ones included.
func edgeCount(g topology.Graph) int {
	n := 0
	for _, name := range g.Names() {
		comp, _ := g.Component(name)
		n += comp.InputCount()
	}
	return n
}
