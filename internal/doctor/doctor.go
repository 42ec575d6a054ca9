// Package doctor diagnoses a mush project: its canonical sources, its
// configuration and whether the generated tool files are current.
package doctor

import (
	"context"
	"time"

	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/paths"
)

// Env is the project under diagnosis.
type Env struct {
	Layout paths.Layout
	Engine *engine.Engine

	// Agents is an explicit tool selection, as passed to update.
	Agents []string
}

// Check is one diagnosis. Run never fails: problems are reported through
// the result's Status.
type Check interface {
	// Name is the stable identifier shown in reports.
	Name() string

	// Category groups checks in the text report ("project", "mcp", "sync").
	Category() string

	Run(ctx context.Context) *CheckResult
}

// Runner runs checks in the order they were added.
type Runner struct {
	checks []Check
}

// NewRunner returns a runner without checks.
func NewRunner() *Runner {
	return &Runner{}
}

// DefaultRunner returns a runner with every project check, in report order.
func DefaultRunner(env *Env) *Runner {
	r := NewRunner()
	r.AddCheck(NewInitCheck(env))
	r.AddCheck(NewConfigCheck(env))
	r.AddCheck(NewTargetCheck(env))
	r.AddCheck(NewSourcesCheck(env))
	r.AddCheck(NewMCPCheck(env))
	r.AddCheck(NewSecretsCheck(env))
	r.AddCheck(NewPathPermissionCheck(env))
	r.AddCheck(NewDriftCheck(env))
	r.AddCheck(NewIgnoreCheck(env))
	return r
}

// AddCheck appends c.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run runs every check once.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{Timestamp: time.Now().UTC()}
	for _, c := range r.checks {
		res := c.Run(ctx)
		report.Results = append(report.Results, res)
		report.Summary.add(res.Status)
	}
	return report
}

// Fix runs the fixers of every check that found fixable issues. Run must be
// called first.
func (r *Runner) Fix(ctx context.Context) []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		if f, ok := check.(Fixer); ok && f.CanFix() {
			results = append(results, f.Fix(ctx)...)
		}
	}
	return results
}

// Report is the outcome of Runner.Run, also emitted by doctor --json.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors reports whether a check would make a sync fail.
func (r *Report) HasErrors() bool { return r.Summary.Errors > 0 }

// HasWarnings reports whether a check found something worth attention.
func (r *Report) HasWarnings() bool { return r.Summary.Warnings > 0 }
