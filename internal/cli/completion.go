package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipegraph/pkg/topology"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pipegraph, including component
kinds for "add" and "set --kind".

To load completions:

Bash:
  $ source <(pipegraph completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pipegraph completion bash > /etc/bash_completion.d/pipegraph
  # macOS:
  $ pipegraph completion bash > $(brew --prefix)/etc/bash_completion.d/pipegraph

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ pipegraph completion zsh > "${fpath[1]}/_pipegraph"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pipegraph completion fish | source

  # To load completions for each session, execute once:
  $ pipegraph completion fish > ~/.config/fish/completions/pipegraph.fish

PowerShell:
  PS> pipegraph completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> pipegraph completion powershell > pipegraph.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeNames completes component names from the document at --file.
// Only the first maxArgs positional arguments are completed; a negative
// maxArgs completes any position.
func (c *CLI) completeNames(maxArgs int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if maxArgs >= 0 && len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		g, err := c.load(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return g.Names(), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeKinds completes the three component kinds.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	kinds := make([]string, 0, len(topology.Kinds))
	for _, k := range topology.Kinds {
		kinds = append(kinds, k.String())
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}
