package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pipegraph/internal/cli"
	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// Exit codes. Scripts can tell a rejected edit from a broken document.
const (
	exitError    = 1
	exitDocument = 2   // document missing, unreadable or failing check
	exitRejected = 3   // edit refused: unknown, duplicate or wrong-kind component
	exitCanceled = 130 // standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		code := exitCode(err)
		if code != exitCanceled {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(code)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The level is only known once flags are parsed.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitCanceled
	}
	switch perrors.GetCode(err) {
	case perrors.ErrCodeComponentNotFound, perrors.ErrCodeDuplicateComponent, perrors.ErrCodeWrongKind:
		return exitRejected
	case perrors.ErrCodeInvalidDocument, perrors.ErrCodeFileNotFound:
		return exitDocument
	default:
		return exitError
	}
}
