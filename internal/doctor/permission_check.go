package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/mush/internal/platform"
)

// looseBits are the permission bits that let other users rewrite a file.
const looseBits os.FileMode = 0o022

// modeIssue is one path whose permissions put MCP credentials at risk.
type modeIssue struct {
	Path     string
	Owner    string
	Mode     os.FileMode
	Problem  string
	Severity Severity

	// Want is the mode Fix applies. Zero means the issue needs a human.
	Want os.FileMode
}

// PathPermissionCheck inspects the files that may carry MCP credentials:
// .mush/ itself, the canonical declarations and every tool's MCP file.
type PathPermissionCheck struct {
	env    *Env
	issues []modeIssue
}

var _ Check = (*PathPermissionCheck)(nil)
var _ Fixer = (*PathPermissionCheck)(nil)

// NewPathPermissionCheck creates a new path permission check.
func NewPathPermissionCheck(env *Env) *PathPermissionCheck {
	return &PathPermissionCheck{env: env}
}

func (c *PathPermissionCheck) Name() string     { return "path-permissions" }
func (c *PathPermissionCheck) Category() string { return "filesystem" }

func (c *PathPermissionCheck) Run(_ context.Context) *CheckResult {
	c.issues = nil
	layout := c.env.Layout
	if !layout.Initialized() {
		return skipped(c)
	}

	checked := []string{layout.Dir()}
	c.inspectDir(layout.Dir())

	owned := map[string]string{layout.MCP(): "mush", layout.MCPOverride(): "mush"}
	files := []string{layout.MCP(), layout.MCPOverride()}
	for _, tool := range c.env.Engine.Registry.All() {
		p, ok := tool.Provider(platform.MCP)
		if !ok {
			continue
		}
		abs, err := layout.Resolve(p.Path())
		if err != nil {
			continue
		}
		if _, dup := owned[abs]; !dup {
			owned[abs] = tool.ID
			files = append(files, abs)
		}
	}
	for _, f := range files {
		if c.inspectFile(f, owned[f]) {
			checked = append(checked, f)
		}
	}

	if len(c.issues) == 0 {
		return newResult(c, SeverityPass, fmt.Sprintf("%d path(s) have safe permissions", len(checked)))
	}

	severities := make([]Severity, 0, len(c.issues))
	details := make([]map[string]any, 0, len(c.issues))
	for _, is := range c.issues {
		severities = append(severities, is.Severity)
		details = append(details, map[string]any{
			"path":    layout.Rel(is.Path),
			"owner":   is.Owner,
			"mode":    formatMode(is.Mode),
			"problem": is.Problem,
		})
	}
	r := newResult(c, worst(severities), fmt.Sprintf("%d permission issue(s)", len(c.issues)))
	r.Details = map[string]any{"issues": details}
	if c.CanFix() {
		r.Fixable = true
		r.FixHint = "run: mush doctor --fix"
	}
	return r
}

// inspectFile records problems with path and reports whether it exists.
func (c *PathPermissionCheck) inspectFile(path, owner string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		c.issues = append(c.issues, modeIssue{Path: path, Owner: owner, Problem: err.Error(), Severity: SeverityError})
		return true
	}
	mode := info.Mode().Perm()

	f, err := os.Open(path)
	if err != nil {
		c.issues = append(c.issues, modeIssue{
			Path: path, Owner: owner, Mode: mode,
			Problem:  "not readable, mush cannot merge into it",
			Severity: SeverityError,
		})
		return true
	}
	f.Close()

	if runtime.GOOS != "windows" && mode&looseBits != 0 {
		c.issues = append(c.issues, modeIssue{
			Path: path, Owner: owner, Mode: mode,
			Problem:  "writable by group or others",
			Severity: SeverityWarning,
			Want:     mode &^ looseBits,
		})
	}
	return true
}

func (c *PathPermissionCheck) inspectDir(path string) {
	info, err := os.Stat(path)
	if err != nil {
		c.issues = append(c.issues, modeIssue{Path: path, Owner: "mush", Problem: err.Error(), Severity: SeverityError})
		return
	}
	mode := info.Mode().Perm()

	if !dirWritable(path) {
		c.issues = append(c.issues, modeIssue{
			Path: path, Owner: "mush", Mode: mode,
			Problem:  "not writable, mush install and doctor --fix will fail",
			Severity: SeverityWarning,
		})
	}
	if runtime.GOOS != "windows" && mode&0o002 != 0 {
		c.issues = append(c.issues, modeIssue{
			Path: path, Owner: "mush", Mode: mode,
			Problem:  "world-writable",
			Severity: SeverityWarning,
			Want:     mode &^ looseBits,
		})
	}
}

func (c *PathPermissionCheck) CanFix() bool {
	for _, is := range c.issues {
		if is.Want != 0 {
			return true
		}
	}
	return false
}

// Fix removes group and world write access from the flagged paths.
func (c *PathPermissionCheck) Fix(_ context.Context) []FixResult {
	var results []FixResult
	for _, is := range c.issues {
		if is.Want == 0 {
			continue
		}
		if err := os.Chmod(is.Path, is.Want); err != nil {
			results = append(results, fixFailed(is.Path, "chmod failed", err))
			continue
		}
		results = append(results, fixed(is.Path, "chmod %s", formatMode(is.Want)))
	}
	return results
}

// dirWritable probes path by creating and removing a temporary file.
func dirWritable(path string) bool {
	f, err := os.CreateTemp(path, ".mush-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// formatMode renders a permission as "-rw-r--r-- (0644)".
func formatMode(mode os.FileMode) string {
	return fmt.Sprintf("%s (%04o)", mode, mode)
}
