package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/matzehuels/pipegraph/pkg/document"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

func (c *CLI) showCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the pipeline document",
		Long: `Print the pipeline document in its normalized form.

The document is re-encoded from the loaded topology, so inputs are sorted
and the sources, transforms and sinks sections are always present. Use
--format to convert between TOML, YAML and JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			f, err := document.FormatFromPath(c.file)
			if format != "" {
				f, err = document.ParseFormat(format)
			}
			if err != nil {
				return err
			}
			return document.Write(cmd.OutOrStdout(), g, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: toml, yaml or json (default: from --file)")
	return cmd
}

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dangling inputs, misordered kinds and cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			verr := g.Validate()
			if verr == nil {
				printSuccess("No issues in %s", StyleHighlight.Render(c.file))
				printDetail("%d components", g.Len())
				return nil
			}
			issues := multierr.Errors(verr)
			for _, issue := range issues {
				printWarning("%s", issue.Error())
			}
			return perrors.Wrap(perrors.ErrCodeInvalidDocument, verr, "%d issue(s) found in %s", len(issues), c.file)
		},
	}
}
