package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/thoreinstein/mush/internal/config"
	"github.com/thoreinstein/mush/internal/engine"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/gitignore"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/mcp/validator"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/internal/workspace"
	"github.com/thoreinstein/mush/pkg/fileutil"
	"github.com/thoreinstein/mush/pkg/frontmatter"
)

// InitCheck verifies the canonical .mush directory and its source folders.
type InitCheck struct {
	env     *Env
	missing []string
}

var _ Check = (*InitCheck)(nil)
var _ Fixer = (*InitCheck)(nil)

// NewInitCheck creates a new initialization check.
func NewInitCheck(env *Env) *InitCheck {
	return &InitCheck{env: env}
}

func (c *InitCheck) Name() string     { return "initialized" }
func (c *InitCheck) Category() string { return "project" }

// Run reports a missing .mush directory as an error and missing source
// folders as a fixable warning.
func (c *InitCheck) Run(_ context.Context) *CheckResult {
	c.missing = nil
	layout := c.env.Layout

	if !layout.Initialized() {
		r := newResult(c, SeverityError, fmt.Sprintf("no %s directory in %s", paths.CanonicalDir, layout.Root))
		r.FixHint = "run: mush install"
		return r
	}

	for _, dir := range layout.SourceDirs() {
		if !fileutil.IsDir(dir) {
			c.missing = append(c.missing, layout.Rel(dir))
		}
	}
	if len(c.missing) > 0 {
		r := newResult(c, SeverityWarning, fmt.Sprintf("%d source director(ies) missing", len(c.missing)))
		r.Details = map[string]any{"missing": c.missing}
		r.Fixable = true
		r.FixHint = "run: mush doctor --fix"
		return r
	}
	return newResult(c, SeverityPass, layout.Rel(layout.Dir())+" is initialized")
}

func (c *InitCheck) CanFix() bool { return len(c.missing) > 0 }

// Fix creates the missing source directories.
func (c *InitCheck) Fix(_ context.Context) []FixResult {
	results := make([]FixResult, 0, len(c.missing))
	for _, rel := range c.missing {
		dir := filepath.Join(c.env.Layout.Root, filepath.FromSlash(rel))
		if err := os.MkdirAll(dir, sourceDirPerm); err != nil {
			results = append(results, fixFailed(dir, "create directory", errors.Wrapf(err, "creating %s", dir)))
			continue
		}
		results = append(results, fixed(dir, "created directory"))
	}
	return results
}

// ConfigCheck loads and validates mush.yaml.
type ConfigCheck struct {
	env *Env
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(env *Env) *ConfigCheck {
	return &ConfigCheck{env: env}
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	if !c.env.Layout.Initialized() {
		return skipped(c)
	}

	cfg, err := config.Load(c.env.Layout)
	if err != nil {
		r := newResult(c, SeverityError, "cannot read configuration")
		r.Details = map[string]any{"error": err.Error()}
		r.FixHint = "fix the YAML syntax of " + c.env.Layout.Rel(c.env.Layout.Config())
		return r
	}

	if err := config.Validate(cfg, c.env.Engine.Registry.IDs(), c.env.Engine.Version); err != nil {
		problems := []string{err.Error()}
		var merr *multierror.Error
		if errors.As(err, &merr) {
			problems = problems[:0]
			for _, e := range merr.Errors {
				problems = append(problems, e.Error())
			}
		}
		r := newResult(c, SeverityError, fmt.Sprintf("%d configuration problem(s)", len(problems)))
		r.Details = map[string]any{"problems": problems}
		r.FixHint = "available agents: " + strings.Join(c.env.Engine.Registry.IDs(), ", ")
		return r
	}

	r := newResult(c, SeverityPass, "configuration is valid")
	r.Details = map[string]any{
		"version":   cfg.Version,
		"agents":    cfg.Agents,
		"gitignore": cfg.Gitignore,
	}
	return r
}

// SourcesCheck reads every canonical source file and reports empty files and
// unparseable headers, both of which are skipped or degraded during a sync.
type SourcesCheck struct {
	env *Env
}

var _ Check = (*SourcesCheck)(nil)

// NewSourcesCheck creates a new source file check.
func NewSourcesCheck(env *Env) *SourcesCheck {
	return &SourcesCheck{env: env}
}

func (c *SourcesCheck) Name() string     { return "sources" }
func (c *SourcesCheck) Category() string { return "content" }

func (c *SourcesCheck) Run(_ context.Context) *CheckResult {
	layout := c.env.Layout
	if !layout.Initialized() {
		return skipped(c)
	}

	kinds := []struct {
		name    string
		dir     string
		pattern string
	}{
		{"guidelines", layout.Guidelines(), "*.md"},
		{"skills", layout.Skills(), "*/" + paths.SkillFileName},
		{"agents", layout.Agents(), "*.md"},
		{"commands", layout.Commands(), "*.md"},
	}

	counts := make(map[string]any, len(kinds))
	var merr *multierror.Error
	for _, k := range kinds {
		if !fileutil.IsDir(k.dir) {
			counts[k.name] = 0
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(k.dir), k.pattern, doublestar.WithFilesOnly())
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "listing %s", layout.Rel(k.dir)))
			continue
		}
		counts[k.name] = len(matches)

		for _, m := range matches {
			p := filepath.Join(k.dir, filepath.FromSlash(m))
			if err := checkSource(p); err != nil {
				merr = multierror.Append(merr, errors.Wrap(err, layout.Rel(p)))
			}
		}
	}

	if merr.ErrorOrNil() == nil {
		r := newResult(c, SeverityPass, "all source files are readable")
		r.Details = counts
		return r
	}

	problems := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		problems = append(problems, e.Error())
	}
	r := newResult(c, SeverityWarning, fmt.Sprintf("%d source file problem(s)", len(problems)))
	counts["problems"] = problems
	r.Details = counts
	r.FixHint = "empty files are skipped; invalid headers fall back to the file name"
	return r
}

var errEmptySource = errors.New("file is empty")

func checkSource(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(data)) == "" {
		return errEmptySource
	}
	_, err = frontmatter.Extract(string(data), "")
	return err
}

// MCPCheck validates mcp.json and mcp.override.json.
type MCPCheck struct {
	env *Env
}

var _ Check = (*MCPCheck)(nil)

// NewMCPCheck creates a new MCP declaration check.
func NewMCPCheck(env *Env) *MCPCheck {
	return &MCPCheck{env: env}
}

func (c *MCPCheck) Name() string     { return "mcp-schema" }
func (c *MCPCheck) Category() string { return "mcp" }

func (c *MCPCheck) Run(ctx context.Context) *CheckResult {
	layout := c.env.Layout
	if !layout.Initialized() {
		return skipped(c)
	}

	var (
		problems   []string
		severities []Severity
	)
	for _, f := range []string{layout.MCP(), layout.MCPOverride()} {
		issues, err := validator.ValidateFile(f)
		if err != nil {
			r := newResult(c, SeverityError, "cannot validate "+layout.Rel(f))
			r.Details = map[string]any{"error": err.Error()}
			return r
		}
		for _, issue := range issues {
			problems = append(problems, layout.Rel(f)+": "+issue.Error())
			if issue.Severity == validator.SeverityError {
				severities = append(severities, SeverityError)
			} else {
				severities = append(severities, SeverityWarning)
			}
		}
	}

	servers, err := mcp.Load(ctx, layout.MCP(), layout.MCPOverride())
	if err != nil {
		r := newResult(c, SeverityError, "cannot read MCP declarations")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}
	details := map[string]any{"servers": servers.Names()}

	if len(problems) == 0 {
		r := newResult(c, SeverityPass, fmt.Sprintf("%d MCP server(s) declared", len(servers)))
		r.Details = details
		return r
	}

	details["problems"] = problems
	r := newResult(c, worst(severities), fmt.Sprintf("%d MCP problem(s)", len(problems)))
	r.Details = details
	r.FixHint = `declare servers as {"servers": {"name": {"command": [...]}}} or {"url": "..."}`
	return r
}

// DriftCheck renders a sync in memory and reports generated files that
// differ from what is on disk.
type DriftCheck struct {
	env   *Env
	stale []string
}

var _ Check = (*DriftCheck)(nil)
var _ Fixer = (*DriftCheck)(nil)

// NewDriftCheck creates a new drift check.
func NewDriftCheck(env *Env) *DriftCheck {
	return &DriftCheck{env: env}
}

func (c *DriftCheck) Name() string     { return "drift" }
func (c *DriftCheck) Category() string { return "sync" }

func (c *DriftCheck) Run(ctx context.Context) *CheckResult {
	c.stale = nil
	if !c.env.Layout.Initialized() {
		return skipped(c)
	}

	preview := workspace.NewPreview(c.env.Layout.Root)
	_, err := c.env.Engine.Run(ctx, c.env.Layout.Root, engine.Options{
		Agents:      c.env.Agents,
		Sink:        preview,
		NoGitignore: true,
	})
	if res := engineFailure(c, err); res != nil {
		return res
	}

	for _, change := range preview.Modified() {
		c.stale = append(c.stale, change.Path)
	}
	if len(c.stale) == 0 {
		return newResult(c, SeverityPass, "generated files are up to date")
	}

	r := newResult(c, SeverityWarning, fmt.Sprintf("%d generated file(s) out of date", len(c.stale)))
	r.Details = map[string]any{"files": c.stale}
	r.Fixable = true
	r.FixHint = "run: mush update"
	return r
}

func (c *DriftCheck) CanFix() bool { return len(c.stale) > 0 }

// Fix runs a sync against the project directory.
func (c *DriftCheck) Fix(ctx context.Context) []FixResult {
	_, err := c.env.Engine.Run(ctx, c.env.Layout.Root, engine.Options{
		Agents:      c.env.Agents,
		NoGitignore: true,
	})
	results := make([]FixResult, 0, len(c.stale))
	for _, p := range c.stale {
		if err != nil {
			results = append(results, fixFailed(p, "sync failed", err))
			continue
		}
		results = append(results, fixed(p, "regenerated"))
	}
	return results
}

// IgnoreCheck reports generated paths that .gitignore does not cover.
type IgnoreCheck struct {
	env     *Env
	missing []string
}

var _ Check = (*IgnoreCheck)(nil)
var _ Fixer = (*IgnoreCheck)(nil)

// NewIgnoreCheck creates a new ignore coverage check.
func NewIgnoreCheck(env *Env) *IgnoreCheck {
	return &IgnoreCheck{env: env}
}

func (c *IgnoreCheck) Name() string     { return "gitignore" }
func (c *IgnoreCheck) Category() string { return "sync" }

func (c *IgnoreCheck) Run(ctx context.Context) *CheckResult {
	c.missing = nil
	if !c.env.Layout.Initialized() {
		return skipped(c)
	}

	preview := workspace.NewPreview(c.env.Layout.Root)
	report, err := c.env.Engine.Run(ctx, c.env.Layout.Root, engine.Options{
		Agents: c.env.Agents,
		Sink:   preview,
	})
	if res := engineFailure(c, err); res != nil {
		return res
	}

	cfg, err := c.env.Engine.LoadConfig(c.env.Layout)
	if err == nil && !cfg.Gitignore {
		return newResult(c, SeverityInfo, "gitignore management is disabled")
	}

	c.missing = report.Ignored
	if len(c.missing) == 0 {
		return newResult(c, SeverityPass, "generated paths are ignored")
	}

	r := newResult(c, SeverityWarning, fmt.Sprintf("%d generated path(s) not in %s", len(c.missing), paths.DefaultIgnoreFile))
	r.Details = map[string]any{"paths": c.missing}
	r.Fixable = true
	r.FixHint = "run: mush update"
	return r
}

func (c *IgnoreCheck) CanFix() bool { return len(c.missing) > 0 }

// Fix adds the missing rules to the managed block of .gitignore.
func (c *IgnoreCheck) Fix(_ context.Context) []FixResult {
	root := c.env.Layout.Root
	added, err := gitignore.UpdateFile(workspace.NewDisk(root), paths.DefaultIgnoreFile, root, c.missing)
	if err != nil {
		return []FixResult{fixFailed(c.env.Layout.IgnoreFile(), "update failed", err)}
	}
	return []FixResult{fixed(c.env.Layout.IgnoreFile(), "added %d rule(s)", len(added))}
}

// engineFailure turns a failed preview sync into a result. A project without
// targets has nothing to compare and is reported as info.
func engineFailure(c Check, err error) *CheckResult {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrNoTargets):
		return newResult(c, SeverityInfo, "skipped: no agents selected or detected")
	default:
		r := newResult(c, SeverityError, "sync would fail")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}
}
