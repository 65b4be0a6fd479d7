package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipegraph/pkg/buildinfo"
	"github.com/matzehuels/pipegraph/pkg/cache"
	"github.com/matzehuels/pipegraph/pkg/document"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/observability"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pipegraph"

	// defaultFile is the document edited when neither --file nor
	// $PIPEGRAPH_FILE is set.
	defaultFile = "pipeline.toml"

	// fileEnv names the environment variable overriding defaultFile.
	fileEnv = "PIPEGRAPH_FILE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	file    string // document path (--file)
	noCache bool   // bypass the render cache (--no-cache)
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pipegraph edits data-pipeline topologies",
		Long: `Pipegraph builds and edits the topology of a data-pipeline configuration:
sources feed transforms, transforms feed sinks. Each command loads the
document, applies one edit and writes the result back.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.registerHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&c.file, "file", "f", defaultDocument(), "pipeline document (.toml, .yaml or .json)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.unlinkCommand())
	root.AddCommand(c.injectCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// defaultDocument returns $PIPEGRAPH_FILE, or pipeline.toml when unset.
func defaultDocument() string {
	if p := os.Getenv(fileEnv); p != "" {
		return p
	}
	return defaultFile
}

// =============================================================================
// Document I/O
// =============================================================================

// load reads the document named by --file.
func (c *CLI) load(ctx context.Context) (topology.Graph, error) {
	if err := perrors.ValidateDocumentPath(c.file); err != nil {
		return topology.Graph{}, err
	}
	g, err := document.ReadFile(c.file)
	if perrors.Is(err, perrors.ErrCodeFileNotFound) {
		return topology.Graph{}, perrors.Wrap(perrors.ErrCodeFileNotFound, err,
			"%s does not exist (run '%s init' to create it)", c.file, appName)
	}
	if err != nil {
		return topology.Graph{}, err
	}
	loggerFromContext(ctx).Debug("loaded document", "path", c.file, "components", g.Len())
	return g, nil
}

// save writes g to out, or back to --file when out is empty.
func (c *CLI) save(ctx context.Context, g topology.Graph, out string) (string, error) {
	if out == "" {
		out = c.file
	}
	if err := perrors.ValidateDocumentPath(out); err != nil {
		return "", err
	}
	if err := document.WriteFile(g, out); err != nil {
		return "", err
	}
	loggerFromContext(ctx).Debug("wrote document", "path", out, "components", g.Len())
	return out, nil
}

// editFunc is one pure edit applied by an editing command.
type editFunc func(g topology.Graph) (topology.Graph, error)

// edit loads the document, applies fn and writes the result.
// Nothing is written when fn fails.
func (c *CLI) edit(ctx context.Context, op, out string, fn editFunc) (topology.Graph, error) {
	g, err := c.load(ctx)
	if err != nil {
		return g, err
	}
	start := time.Now()
	next, err := fn(g)
	if err != nil {
		observability.Edit().OnEdit(ctx, op, g.Len(), time.Since(start), err)
		return g, err
	}
	observability.Edit().OnEdit(ctx, op, next.Len(), time.Since(start), nil)
	if _, err := c.save(ctx, next, out); err != nil {
		return g, err
	}
	return next, nil
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newKeyer scopes keys by build so an upgraded binary never serves diagrams
// rendered by an older Graphviz.
func newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Scope()+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pipegraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
