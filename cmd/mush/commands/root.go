// Package commands implements the CLI commands for mush.
package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/logging"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbosity int
	quiet     bool
	logFormat string
	logFile   string
	workDir   string
}

// root resolves the project directory from --working-dir or the process
// working directory.
func (o *rootOptions) root() (string, error) {
	dir := o.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.NewSystemError(err, "cannot determine the working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.NewUserError(err, "check --working-dir")
	}
	return abs, nil
}

// NewRootCommand builds the mush command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "mush",
		Short: "Project AI assistant configuration into every tool",
		Long: `mush keeps one tool-agnostic set of guidelines, skills, agents, commands
and MCP servers under .mush/ and projects it into the native files of each
AI coding assistant: Claude Code, OpenCode, Junie, Gemini CLI, GitHub
Copilot, OpenAI Codex and Cursor.

Generated files are rewritten on every update and listed in a managed
block of .gitignore. Settings you add to generated JSON files by hand are
preserved.`,
		Example: `  # Set up a project for Claude Code and Gemini CLI
  mush install --agent claude,gemini

  # Regenerate every tool's files after editing .mush/
  mush update

  # Preview what would change
  mush update --dry-run

  See Also: mush status, mush doctor`,
		Version: cmd.Version,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return setupLogging(c, opts)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}
	root.SetVersionTemplate("mush version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to file in JSON format")
	pf.StringVarP(&opts.workDir, "working-dir", "w", "", "project directory (default: current directory)")

	root.AddCommand(
		newInstallCommand(opts),
		newUpdateCommand(opts),
		newStatusCommand(opts),
		newDoctorCommand(opts),
		newNewCommand(opts),
		newVersionCommand(),
	)
	return root
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(c *cobra.Command, opts *rootOptions) error {
	if opts.quiet && opts.verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "pass only one of -q and -v")
	}

	format, ok := logging.ParseFormat(opts.logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("invalid log format %q", opts.logFormat), "use --log-format text or json")
	}

	var level slog.Level
	if opts.quiet {
		level = slog.LevelError
	} else {
		v := opts.verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch os.Getenv("MUSH_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handler := logging.NewHandlerFor(logging.Config{
		Level:  level,
		Format: format,
		Output: c.ErrOrStderr(),
	})

	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handler = logging.NewMultiHandler(handler, logging.NewHandlerFor(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
