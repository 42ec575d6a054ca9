package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
	"github.com/thoreinstein/mush/internal/cli"
	"github.com/thoreinstein/mush/internal/config"
	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/workspace"
)

type updateOptions struct {
	agents         []string
	guidelinePaths []string
	skillPaths     []string
	mcpPaths       []string
	dryRun         bool
	noGitignore    bool
}

func newUpdateCommand(root *rootOptions) *cobra.Command {
	opts := &updateOptions{}

	c := &cobra.Command{
		Use:     "update",
		Aliases: []string{"sync"},
		Short:   "Regenerate every tool's files from .mush/",
		Long: `Compile the sources under .mush/ and write them into the native files of
each target tool. Targets are, in order of precedence: --agent, the agents
list of mush.yaml, then every tool detected in the project.

Generated Markdown is replaced; generated JSON is merged so that keys you
added by hand survive. Custom paths receive the combined guidelines, the
skill tree, or a generic {"mcpServers": {...}} document.

Exit codes:
  0 - Update completed
  1 - Invalid input or configuration
  2 - I/O failure
  3 - No agent selected or detected`,
		Example: `  # Update configured or detected tools
  mush update

  # Only Cursor, previewing the result
  mush update --agent cursor --dry-run

  # Also write guidelines to a custom file
  mush update --guideline-path docs/AI.md`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runUpdate(c, root, opts)
		},
	}

	f := c.Flags()
	f.StringSliceVarP(&opts.agents, "agent", "a", nil, "agent(s) to update (repeatable or comma-separated)")
	f.StringSliceVar(&opts.guidelinePaths, "guideline-path", nil, "extra file to receive the combined guidelines")
	f.StringSliceVar(&opts.skillPaths, "skill-path", nil, "extra directory to receive the skill tree")
	f.StringSliceVar(&opts.mcpPaths, "mcp-path", nil, "extra JSON file to receive MCP servers under \"mcpServers\"")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print the changes as unified diffs without writing")
	f.BoolVar(&opts.noGitignore, "no-gitignore", false, "do not add generated paths to .gitignore")
	return c
}

func runUpdate(c *cobra.Command, root *rootOptions, opts *updateOptions) error {
	out := newPrinter(c.OutOrStdout(), root.quiet)

	dir, err := root.root()
	if err != nil {
		return err
	}

	runOpts := engine.Options{
		Agents: opts.agents,
		Extra: config.Paths{
			Guidelines: opts.guidelinePaths,
			Skills:     opts.skillPaths,
			MCP:        opts.mcpPaths,
		},
		NoGitignore: opts.noGitignore,
	}

	var preview *workspace.Preview
	if opts.dryRun {
		preview = workspace.NewPreview(dir)
		runOpts.Sink = preview
	}

	report, err := engine.New(cli.NewRegistry(), cmd.Version).Run(c.Context(), dir, runOpts)
	if err != nil {
		return wrapSyncError(err)
	}

	if preview != nil {
		changes := preview.Modified()
		if len(changes) == 0 {
			out.Printf("No changes for %d agent(s).\n", len(report.Tools))
			return nil
		}
		for _, change := range changes {
			out.Diff(change.Diff())
		}
		out.Printf("\n%d file(s) would change.\n", len(changes))
		return nil
	}

	for _, t := range report.Tools {
		out.Success("Updated %s", t.DisplayName)
	}
	if !runOpts.Extra.Empty() {
		for _, p := range append(append(append([]string(nil), runOpts.Extra.Guidelines...), runOpts.Extra.Skills...), runOpts.Extra.MCP...) {
			out.Success("Updated %s", p)
		}
	}
	if len(report.Ignored) > 0 {
		out.Printf("Added %d path(s) to .gitignore\n", len(report.Ignored))
	}
	return nil
}
