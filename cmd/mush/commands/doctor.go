package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
	"github.com/thoreinstein/mush/internal/cli"
	"github.com/thoreinstein/mush/internal/doctor"
	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/paths"
)

type doctorOptions struct {
	agents  []string
	json    bool
	verbose bool
	fix     bool
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

func newDoctorCommand(root *rootOptions) *cobra.Command {
	opts := &doctorOptions{}

	c := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the project",
		Long: `Run diagnostic checks on the project: the .mush/ layout, mush.yaml,
MCP declarations, source files, file permissions, and whether the
generated files and .gitignore are up to date.

Output modes:
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --json      Machine-readable JSON output
  -q          No output, exit code only

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
		Args: cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.json && opts.verbose {
				return errors.NewUserError(errors.New("flags --json and --verbose are mutually exclusive"), "pass only one of them")
			}
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return runDoctor(c, root, opts)
		},
	}

	f := c.Flags()
	f.StringSliceVarP(&opts.agents, "agent", "a", nil, "check as if updating only these agent(s)")
	f.BoolVar(&opts.json, "json", false, "output results as JSON")
	f.BoolVar(&opts.verbose, "verbose", false, "show detailed check-by-check output")
	f.BoolVar(&opts.fix, "fix", false, "fix what can be fixed, then check again")
	return c
}

func runDoctor(c *cobra.Command, root *rootOptions, opts *doctorOptions) error {
	ctx := c.Context()
	w := c.OutOrStdout()

	dir, err := root.root()
	if err != nil {
		return err
	}

	env := &doctor.Env{
		Layout: paths.NewLayout(dir),
		Engine: engine.New(cli.NewRegistry(), cmd.Version),
		Agents: opts.agents,
	}
	runner := doctor.DefaultRunner(env)
	report := runner.Run(ctx)

	if opts.fix {
		fixes := runner.Fix(ctx)
		if !root.quiet && !opts.json {
			outputFixes(w, fixes)
		}
		if len(fixes) > 0 {
			report = runner.Run(ctx)
		}
	}

	if !root.quiet {
		if opts.json {
			if err := outputDoctorJSON(w, report); err != nil {
				return err
			}
		} else {
			outputDoctorText(w, report, opts.verbose)
		}
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

func outputDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	p := newPrinter(w, false)

	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		p.statusColor(result.Status).Fprint(w, statusIcon(result.Status))
		fmt.Fprintf(w, " [%s] %s: %s\n", result.Category, result.Name, result.Message)

		if problem {
			for _, line := range detailLines(result.Details) {
				fmt.Fprintf(w, "    %s\n", line)
			}
			if result.FixHint != "" {
				p.faint.Fprintf(w, "  hint: %s\n", result.FixHint)
			}
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func outputFixes(w io.Writer, fixes []doctor.FixResult) {
	p := newPrinter(w, false)
	for _, f := range fixes {
		if f.Fixed {
			p.green.Fprint(w, "✓")
		} else {
			p.red.Fprint(w, "✗")
		}
		fmt.Fprintf(w, " fix %s: %s\n", f.Path, f.Description)
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}
}

// detailLines extracts the list-valued details worth printing under a
// failed check.
func detailLines(details map[string]any) []string {
	var lines []string
	for _, key := range []string{"problems", "files", "paths", "missing"} {
		if list, ok := details[key].([]string); ok {
			lines = append(lines, list...)
		}
	}
	return lines
}

func (p *printer) statusColor(s doctor.Severity) *color.Color {
	switch s {
	case doctor.SeverityPass:
		return p.green
	case doctor.SeverityWarning:
		return p.yellow
	case doctor.SeverityError:
		return p.red
	default:
		return p.faint
	}
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
