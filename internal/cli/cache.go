package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipegraph/pkg/cache"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// cacheCommand groups maintenance of the diagram cache that graph fills.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered diagram cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached diagrams",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.clearCache(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return perrors.Wrap(perrors.ErrCodeInternal, err, "locate cache directory")
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) clearCache(ctx context.Context) error {
	dir, err := cacheDir()
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "locate cache directory")
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		printInfo("No diagrams cached")
		return nil
	}

	store, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := store.Clear()
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "clear %s", dir)
	}
	loggerFromContext(ctx).Debug("cleared cache", "dir", dir, "entries", n)

	printSuccess("Removed %s", plural(n, "cached diagram"))
	printDetail("%s", dir)
	return nil
}
