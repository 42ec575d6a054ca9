package content

import (
	"context"

	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/paths"
)

// Sources is everything compiled from one .mush/ directory for a single run.
type Sources struct {
	// GuidelineText is the rendered guideline document.
	GuidelineText string

	Guidelines []Record
	Skills     []Record
	Agents     []Record
	Commands   []Record

	// Servers are the MCP descriptors with overrides applied.
	Servers mcp.Servers
}

// Load compiles every source of layout.
func Load(ctx context.Context, layout paths.Layout) (*Sources, error) {
	c := NewCompiler(logging.FromContext(ctx))

	guidelines, err := c.Guidelines(layout.Guidelines())
	if err != nil {
		return nil, err
	}
	skills, err := c.Skills(layout.Skills())
	if err != nil {
		return nil, err
	}
	agents, err := c.Agents(layout.Agents())
	if err != nil {
		return nil, err
	}
	commands, err := c.Commands(layout.Commands())
	if err != nil {
		return nil, err
	}
	servers, err := mcp.Load(ctx, layout.MCP(), layout.MCPOverride())
	if err != nil {
		return nil, err
	}

	return &Sources{
		GuidelineText: RenderGuidelines(guidelines, skills),
		Guidelines:    guidelines,
		Skills:        skills,
		Agents:        agents,
		Commands:      commands,
		Servers:       servers,
	}, nil
}
