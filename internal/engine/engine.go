// Package engine runs a synchronisation: it resolves the target tools,
// compiles the canonical sources once and hands them to every provider of
// every target, then records the generated paths in .gitignore.
package engine

import (
	"context"
	"path/filepath"

	"github.com/thoreinstein/mush/internal/config"
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/gitignore"
	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/internal/platform"
	"github.com/thoreinstein/mush/internal/workspace"
)

// CustomMCPKey is the top-level key of MCP documents written to custom paths.
const CustomMCPKey = "mcpServers"

// Selection records how the target tools were chosen.
type Selection int

const (
	// SelectedExplicit means the tools came from the command line.
	SelectedExplicit Selection = iota
	// SelectedConfig means the tools came from the agents list in mush.yaml.
	SelectedConfig
	// SelectedDetected means the tools were detected from marker files.
	SelectedDetected
)

func (s Selection) String() string {
	switch s {
	case SelectedExplicit:
		return "explicit"
	case SelectedConfig:
		return "config"
	default:
		return "detected"
	}
}

// Options tune one run.
type Options struct {
	// Agents selects tools explicitly. Empty falls back to mush.yaml, then
	// to detection.
	Agents []string

	// Extra custom targets, added to those in mush.yaml.
	Extra config.Paths

	// NoGitignore leaves .gitignore alone regardless of configuration.
	NoGitignore bool

	// Sink receives every read and write. Nil writes to the project
	// directory.
	Sink platform.Sink
}

// Report describes a completed run.
type Report struct {
	Tools     []*platform.Tool
	Selection Selection

	// Paths are the generated paths, deduplicated, in write order.
	Paths []string

	// Ignored are the rules added to .gitignore.
	Ignored []string
}

// Engine synchronises projects against a tool registry.
type Engine struct {
	Registry *platform.Registry

	// Version is the running mush version, checked against min_version.
	Version string
}

// New returns an engine for reg.
func New(reg *platform.Registry, version string) *Engine {
	return &Engine{Registry: reg, Version: version}
}

// Run synchronises the project at root. Unknown tool identifiers and an
// empty target set fail before anything is written.
func (e *Engine) Run(ctx context.Context, root string, opts Options) (*Report, error) {
	logger := logging.FromContext(ctx)

	layout := paths.NewLayout(root)
	if !layout.Initialized() {
		return nil, errors.ErrNotInitialized
	}

	cfg, err := e.LoadConfig(layout)
	if err != nil {
		return nil, err
	}

	tools, sel, err := e.Targets(layout, cfg, opts.Agents)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved targets", "count", len(tools), "selection", sel.String())

	src, err := content.Load(ctx, layout)
	if err != nil {
		return nil, errors.Wrap(err, "compiling sources")
	}

	sink := opts.Sink
	if sink == nil {
		sink = workspace.NewDisk(layout.Root)
	}

	report := &Report{Tools: tools, Selection: sel}
	seen := map[string]bool{}
	record := func(p string) {
		if !seen[p] {
			seen[p] = true
			report.Paths = append(report.Paths, p)
		}
	}

	for _, tool := range tools {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, c := range tool.Capabilities() {
			provider, _ := tool.Provider(c)
			if err := provider.Write(ctx, sink, src); err != nil {
				return nil, errors.Wrapf(err, "writing %s %s", tool.ID, c)
			}
			record(provider.Path())
			logger.Debug("wrote capability", "tool", tool.ID, "capability", c.String(), "path", provider.Path())
		}
		logger.Info("updated tool", "tool", tool.ID)
	}

	custom := mergePaths(cfg.Paths, opts.Extra)
	for _, p := range customProviders(custom) {
		if err := p.Write(ctx, sink, src); err != nil {
			return nil, errors.Wrapf(err, "writing %s", p.Path())
		}
		record(p.Path())
	}

	if cfg.Gitignore && !opts.NoGitignore {
		var ignore []string
		for _, p := range report.Paths {
			if rel := layout.Rel(resolve(layout, p)); !filepath.IsAbs(filepath.FromSlash(rel)) {
				ignore = append(ignore, rel)
			}
		}
		ignore = append(ignore, paths.CanonicalDir+"/"+paths.MCPOverrideFile)

		added, err := gitignore.UpdateFile(sink, paths.DefaultIgnoreFile, layout.Root, ignore)
		if err != nil {
			return nil, err
		}
		report.Ignored = added
	}

	return report, nil
}

// LoadConfig loads and validates the configuration of layout.
func (e *Engine) LoadConfig(layout paths.Layout) (*config.Config, error) {
	cfg, err := config.Load(layout)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg, e.Registry.IDs(), e.Version); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%v", err)
	}
	return cfg, nil
}

// Targets resolves the tools to write: explicit identifiers first, then the
// configured agents list, then detection.
func (e *Engine) Targets(layout paths.Layout, cfg *config.Config, explicit []string) ([]*platform.Tool, Selection, error) {
	var (
		tools []*platform.Tool
		sel   Selection
		err   error
	)
	switch {
	case len(explicit) > 0:
		sel = SelectedExplicit
		tools, err = e.Registry.Resolve(explicit)
	case len(cfg.Agents) > 0:
		sel = SelectedConfig
		tools, err = e.Registry.Resolve(cfg.Agents)
	default:
		sel = SelectedDetected
		tools = e.Registry.Detect(layout.Root)
	}
	if err != nil {
		return nil, sel, err
	}
	if len(tools) == 0 {
		return nil, sel, errors.ErrNoTargets
	}
	return tools, sel, nil
}

func mergePaths(a, b config.Paths) config.Paths {
	return config.Paths{
		Guidelines: append(append([]string(nil), a.Guidelines...), b.Guidelines...),
		Skills:     append(append([]string(nil), a.Skills...), b.Skills...),
		MCP:        append(append([]string(nil), a.MCP...), b.MCP...),
	}
}

func customProviders(p config.Paths) []platform.Provider {
	var out []platform.Provider
	for _, f := range p.Guidelines {
		out = append(out, platform.GuidelinesFile{File: f})
	}
	for _, d := range p.Skills {
		out = append(out, platform.SkillTree{Dir: d})
	}
	for _, f := range p.MCP {
		out = append(out, platform.MCPFile{File: f, Key: CustomMCPKey})
	}
	return out
}

func resolve(layout paths.Layout, p string) string {
	abs, err := layout.Resolve(p)
	if err != nil {
		return p
	}
	return abs
}
