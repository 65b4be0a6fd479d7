package cli

import (
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
	"github.com/matzehuels/pipegraph/pkg/topology"
)

// editOpts holds flags shared by commands that write the document.
type editOpts struct {
	output string   // write here instead of --file
	sets   []string // key=value settings
}

func (o *editOpts) register(cmd *cobra.Command, withSettings bool) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the result to this path instead of --file")
	if withSettings {
		cmd.Flags().StringArrayVar(&o.sets, "set", nil, "setting as key=value, value parsed as TOML (repeatable)")
	}
}

// componentName canonicalizes and validates a name given on the command line.
func componentName(s string) (string, error) {
	name := topology.Canonical(s)
	if err := perrors.ValidateComponentName(name); err != nil {
		return "", err
	}
	return name, nil
}

// =============================================================================
// init
// =============================================================================

func (c *CLI) initCommand() *cobra.Command {
	var opts editOpts
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty pipeline document",
		Long: `Create an empty pipeline document at --file.

Global settings are given with --set and appear at the top level of the
document, next to the sources, transforms and sinks sections.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := opts.output
			if target == "" {
				target = c.file
			}
			if _, err := os.Stat(target); err == nil && !force {
				return perrors.New(perrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", target)
			}
			global, err := parseSettings(opts.sets)
			if err != nil {
				return err
			}
			path, err := c.save(cmd.Context(), topology.Begin(global), target)
			if err != nil {
				return err
			}
			printSuccess("Created %s", StyleHighlight.Render(path))
			printNextStep("Add a source", appName+" add source NAME")
			return nil
		},
	}

	opts.register(cmd, true)
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")
	return cmd
}

// =============================================================================
// add
// =============================================================================

func (c *CLI) addCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a source, transform or sink",
	}
	for _, k := range topology.Kinds {
		cmd.AddCommand(c.addKindCommand(k))
	}
	return cmd
}

func (c *CLI) addKindCommand(k topology.Kind) *cobra.Command {
	var opts editOpts
	var inputs []string

	cmd := &cobra.Command{
		Use:   k.String() + " NAME",
		Short: "Add a " + k.String(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := componentName(args[0])
			if err != nil {
				return err
			}
			config, err := parseSettings(opts.sets)
			if err != nil {
				return err
			}
			next, err := c.edit(cmd.Context(), "add", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.Add(k, name, inputs, config)
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s", componentLabel(k, name))
			if comp, ok := next.Component(name); ok {
				for _, in := range comp.Inputs() {
					printDetail("input: %s", in)
				}
			}
			return nil
		},
	}

	opts.register(cmd, true)
	if k != topology.Source {
		cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "upstream component (repeatable)")
		_ = cmd.RegisterFlagCompletionFunc("input", c.completeNames(-1))
	}
	return cmd
}

// =============================================================================
// link / unlink
// =============================================================================

func (c *CLI) linkCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "link A B",
		Short: "Connect two components",
		Long: `Connect two components. The component of the lower kind becomes the
upstream (source before transform before sink). Between two components
of the same kind, A feeds B. Run check to find links that break that order.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := topology.Canonical(args[0]), topology.Canonical(args[1])
			next, err := c.edit(cmd.Context(), "link", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.Link(a, b)
			})
			if err != nil {
				return err
			}
			up, down := a, b
			if comp, ok := next.Component(a); ok && comp.HasInput(b) {
				up, down = b, a
			}
			printSuccess("Linked %s %s %s", StyleHighlight.Render(up), iconArrow, StyleHighlight.Render(down))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(2)
	opts.register(cmd, false)
	return cmd
}

func (c *CLI) unlinkCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "unlink A B",
		Short: "Disconnect two components in either direction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := topology.Canonical(args[0]), topology.Canonical(args[1])
			if _, err := c.edit(cmd.Context(), "unlink", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.Unlink(a, b)
			}); err != nil {
				return err
			}
			printSuccess("Unlinked %s and %s", StyleHighlight.Render(a), StyleHighlight.Render(b))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(2)
	opts.register(cmd, false)
	return cmd
}

// =============================================================================
// inject
// =============================================================================

func (c *CLI) injectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Insert a transform next to an existing component",
	}
	cmd.AddCommand(c.injectBeforeCommand())
	cmd.AddCommand(c.injectAfterCommand())
	return cmd
}

func (c *CLI) injectBeforeCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "before TARGET NAME",
		Short: "Insert transform NAME between TARGET and all of its inputs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := topology.Canonical(args[0])
			name, err := componentName(args[1])
			if err != nil {
				return err
			}
			config, err := parseSettings(opts.sets)
			if err != nil {
				return err
			}
			if _, err := c.edit(cmd.Context(), "inject-before", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.InjectBefore(target, name, config)
			}); err != nil {
				return err
			}
			printSuccess("Injected %s before %s", StyleHighlight.Render(name), StyleHighlight.Render(target))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(1)
	opts.register(cmd, true)
	return cmd
}

func (c *CLI) injectAfterCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "after TARGET NAME",
		Short: "Insert transform NAME between TARGET and all of its consumers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := topology.Canonical(args[0])
			name, err := componentName(args[1])
			if err != nil {
				return err
			}
			config, err := parseSettings(opts.sets)
			if err != nil {
				return err
			}
			next, err := c.edit(cmd.Context(), "inject-after", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.InjectAfter(target, name, config)
			})
			if err != nil {
				return err
			}
			printSuccess("Injected %s after %s", StyleHighlight.Render(name), StyleHighlight.Render(target))
			for _, consumer := range next.Consumers(name) {
				printDetail("feeds: %s", consumer)
			}
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(1)
	opts.register(cmd, true)
	return cmd
}

// =============================================================================
// remove / rename / set
// =============================================================================

func (c *CLI) removeCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a component and every reference to it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := topology.Canonical(args[0])
			var existed bool
			if _, err := c.edit(cmd.Context(), "remove", opts.output, func(g topology.Graph) (topology.Graph, error) {
				existed = g.Has(name)
				return g.Remove(name), nil
			}); err != nil {
				return err
			}
			if !existed {
				printInfo("%s not present, nothing removed", name)
				return nil
			}
			printSuccess("Removed %s", StyleHighlight.Render(name))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(1)
	opts.register(cmd, false)
	return cmd
}

func (c *CLI) renameCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:     "rename OLD NEW",
		Aliases: []string{"mv"},
		Short:   "Rename a component and rewrite every reference to it",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old := topology.Canonical(args[0])
			name, err := componentName(args[1])
			if err != nil {
				return err
			}
			if _, err := c.edit(cmd.Context(), "rename", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return g.Rename(old, name)
			}); err != nil {
				return err
			}
			printSuccess("Renamed %s %s %s", old, iconArrow, StyleHighlight.Render(name))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(1)
	opts.register(cmd, false)
	return cmd
}

func (c *CLI) setCommand() *cobra.Command {
	var opts editOpts
	var unset []string
	var kindName string

	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Change a component's settings or kind",
		Long: `Change a component's settings or kind.

With --kind, a missing component is created. Changing a component to a
source drops its inputs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := componentName(args[0])
			if err != nil {
				return err
			}
			var kind *topology.Kind
			if kindName != "" {
				k, err := topology.ParseKind(kindName)
				if err != nil {
					return err
				}
				kind = &k
			}

			next, err := c.edit(cmd.Context(), "set", opts.output, func(g topology.Graph) (topology.Graph, error) {
				return updateComponent(g, name, kind, opts.sets, unset)
			})
			if err != nil {
				return err
			}
			comp, _ := next.Component(name)
			printSuccess("Updated %s", componentLabel(comp.Kind, name))
			return nil
		},
	}

	cmd.ValidArgsFunction = c.completeNames(1)
	opts.register(cmd, true)
	cmd.Flags().StringArrayVar(&unset, "unset", nil, "setting key to remove (repeatable)")
	cmd.Flags().StringVar(&kindName, "kind", "", "change the kind: source, transform or sink")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
	return cmd
}

// updateComponent applies set/unset expressions and an optional kind change
// to one component through Graph.Update.
func updateComponent(g topology.Graph, name string, kind *topology.Kind, sets, unset []string) (topology.Graph, error) {
	cur, ok := g.Component(name)
	if !ok && kind == nil {
		return g, &topology.ComponentError{Op: "set", Name: name, Graph: g, Err: topology.ErrComponentNotFound}
	}

	config := cur.Config
	if config == nil {
		config = make(map[string]any)
	}
	if err := applySettings(config, sets); err != nil {
		return g, err
	}
	for _, key := range unset {
		unsetPath(config, key)
	}

	k := cur.Kind
	if kind != nil {
		k = *kind
	}
	return g.Update(name, func(c topology.Component, _ bool) (topology.Component, bool) {
		return topology.NewComponent(k, c.Inputs(), config), true
	}), nil
}
