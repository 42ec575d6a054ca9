package commands

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
	"github.com/thoreinstein/mush/internal/cli"
	"github.com/thoreinstein/mush/internal/cli/prompt"
	"github.com/thoreinstein/mush/internal/config"
	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/internal/platform"
	"github.com/thoreinstein/mush/pkg/fileutil"
)

type installOptions struct {
	agents []string
	force  bool
	prompt bool
}

func newInstallCommand(root *rootOptions) *cobra.Command {
	opts := &installOptions{}

	c := &cobra.Command{
		Use:   "install",
		Short: "Initialize .mush/ and generate tool files",
		Long: `Create the canonical .mush/ directory and run a first update.

The directory receives empty guidelines/, skills/, agents/ and commands/
folders, an mcp.json with no servers, and a mush.yaml listing the chosen
agents. Later updates target exactly those agents.

Without --agent, an interactive picker is shown on a terminal with detected
tools listed first. Without a terminal, the detected tools are used.`,
		Example: `  # Pick tools interactively
  mush install

  # Non-interactive
  mush install --agent claude --agent copilot

  # Numbered prompt, e.g. from a script
  echo 1,4 | mush install --prompt`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInstall(c, root, opts)
		},
	}

	c.Flags().StringSliceVarP(&opts.agents, "agent", "a", nil, "agent(s) to configure (repeatable or comma-separated)")
	c.Flags().BoolVarP(&opts.force, "force", "f", false, "reinitialize an existing project")
	c.Flags().BoolVar(&opts.prompt, "prompt", false, "read a numbered selection from stdin instead of the picker")
	return c
}

func runInstall(c *cobra.Command, root *rootOptions, opts *installOptions) error {
	ctx := c.Context()
	logger := logging.FromContext(ctx)
	out := newPrinter(c.OutOrStdout(), root.quiet)

	dir, err := root.root()
	if err != nil {
		return err
	}
	layout := paths.NewLayout(dir)
	if layout.Initialized() && !opts.force {
		return errors.NewUserError(errors.ErrAlreadyInitialized, "Run: mush update, or mush install --force to start over")
	}

	reg := cli.NewRegistry()
	tools, err := chooseTools(c, reg, dir, opts)
	if err != nil {
		return err
	}
	if len(tools) == 0 {
		return errors.NewNoTargetsError(errors.ErrNoTargets)
	}
	ids := make([]string, 0, len(tools))
	for _, t := range tools {
		ids = append(ids, t.ID)
	}

	for _, d := range layout.SourceDirs() {
		if err := os.MkdirAll(d, fileutil.DirPerm); err != nil {
			return errors.NewSystemError(errors.Wrapf(err, "creating %s", layout.Rel(d)), "check directory permissions")
		}
	}

	if !fileutil.Exists(layout.MCP()) {
		tmpl, err := mcp.Template()
		if err != nil {
			return err
		}
		if err := fileutil.AtomicWriteFile(layout.MCP(), tmpl, fileutil.FilePerm); err != nil {
			return errors.NewSystemError(err, "check directory permissions")
		}
	}

	cfg := config.Default()
	if fileutil.Exists(layout.Config()) {
		// --force keeps unrelated settings of an existing file.
		if cfg, err = config.LoadFiles(layout.Config()); err != nil {
			return errors.NewConfigError(err)
		}
	}
	cfg.Agents = ids
	if err := config.Save(layout.Config(), cfg); err != nil {
		return errors.NewSystemError(err, "check directory permissions")
	}
	logger.Info("initialized project", "root", dir, "agents", ids)

	report, err := engine.New(reg, cmd.Version).Run(ctx, dir, engine.Options{Agents: ids})
	if err != nil {
		return wrapSyncError(err)
	}

	out.Success("Initialized %s", layout.Rel(layout.Dir()))
	for _, t := range report.Tools {
		out.Success("Installed %s", t.DisplayName)
	}
	return nil
}

// chooseTools resolves --agent, or asks the user, or falls back to detection.
func chooseTools(c *cobra.Command, reg *platform.Registry, dir string, opts *installOptions) ([]*platform.Tool, error) {
	if len(opts.agents) > 0 {
		tools, err := reg.Resolve(opts.agents)
		if err != nil {
			return nil, errors.NewUserError(err, "Run: mush status to list agents")
		}
		return tools, nil
	}

	detected := reg.Detect(dir)

	// Detected tools first, then the rest in registry order.
	ordered := append([]*platform.Tool(nil), detected...)
	for _, t := range reg.All() {
		if !slices.Contains(detected, t) {
			ordered = append(ordered, t)
		}
	}

	var (
		tools []*platform.Tool
		err   error
	)
	switch {
	case opts.prompt:
		tools, err = prompt.NewSelectorWithIO(c.InOrStdin(), c.ErrOrStderr()).SelectTools(ordered, detected)
	case logging.IsInteractive(c.InOrStdin(), c.OutOrStdout()):
		tools, err = prompt.FuzzySelectTools(ordered, detected)
	default:
		return detected, nil
	}
	if err != nil {
		return nil, errors.NewUserError(err, "pass --agent to choose tools non-interactively")
	}

	// Keep registry order regardless of how the list was presented.
	var out []*platform.Tool
	for _, t := range reg.All() {
		if slices.Contains(tools, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// wrapSyncError attaches a suggestion to engine failures.
func wrapSyncError(err error) error {
	switch {
	case errors.Is(err, errors.ErrNoTargets):
		return errors.NewNoTargetsError(err)
	case errors.Is(err, errors.ErrNotInitialized):
		return errors.NewUserError(err, "Run: mush install")
	case errors.Is(err, errors.ErrUnknownTool):
		return errors.NewUserError(err, "Run: mush status to list agents")
	case errors.Is(err, errors.ErrInvalidConfig):
		return errors.NewConfigError(err)
	default:
		return err
	}
}
