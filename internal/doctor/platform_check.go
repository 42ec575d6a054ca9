package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/platform"
)

// TargetCheck reports which tools a sync would write, and why.
type TargetCheck struct {
	env *Env
}

// Ensure TargetCheck implements Check interface.
var _ Check = (*TargetCheck)(nil)

// NewTargetCheck creates a new target selection check.
func NewTargetCheck(env *Env) *TargetCheck {
	return &TargetCheck{env: env}
}

// Name returns the unique identifier for this check.
func (c *TargetCheck) Name() string {
	return "targets"
}

// Category returns the grouping for this check.
func (c *TargetCheck) Category() string {
	return "platform"
}

// Run resolves targets the way update does and lists their capabilities.
func (c *TargetCheck) Run(_ context.Context) *CheckResult {
	layout := c.env.Layout
	if !layout.Initialized() {
		return skipped(c)
	}

	cfg, err := c.env.Engine.LoadConfig(layout)
	if err != nil {
		return newResult(c, SeverityInfo, "skipped: configuration is invalid")
	}

	tools, sel, err := c.env.Engine.Targets(layout, cfg, c.env.Agents)
	switch {
	case errors.Is(err, errors.ErrNoTargets):
		r := newResult(c, SeverityWarning, "no agents selected or detected; mush has nothing to write")
		r.FixHint = "add agents to " + layout.Rel(layout.Config()) + " or pass --agent"
		return r
	case err != nil:
		r := newResult(c, SeverityError, "cannot resolve agents")
		r.Details = map[string]any{"error": err.Error()}
		return r
	}

	byID := make(map[string]any, len(tools))
	ids := make([]string, 0, len(tools))
	for _, t := range tools {
		ids = append(ids, t.ID)
		caps := make([]string, 0, len(t.Capabilities()))
		for _, capability := range t.Capabilities() {
			caps = append(caps, capability.String())
		}
		byID[t.ID] = map[string]any{
			"display_name": t.DisplayName,
			"capabilities": caps,
			"markers":      t.Detect(layout.Root),
			"paths":        t.Paths(),
		}
	}

	r := newResult(c, SeverityPass, fmt.Sprintf("%d agent(s) (%s): %s", len(tools), sel, strings.Join(ids, ", ")))
	r.Details = map[string]any{
		"selection": sel.String(),
		"agents":    byID,
		"detected":  toolIDs(c.env.Engine.Registry.Detect(layout.Root)),
	}
	return r
}

func toolIDs(tools []*platform.Tool) []string {
	ids := make([]string, 0, len(tools))
	for _, t := range tools {
		ids = append(ids, t.ID)
	}
	return ids
}
