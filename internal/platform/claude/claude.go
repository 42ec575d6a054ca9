// Package claude projects mush content into Claude Code's project layout.
//
// Guidelines go to .claude/CLAUDE.md, MCP servers to the "mcpServers" key of
// .claude/mcp.json, and skills, agents and commands to markdown files under
// .claude/. Agents carry a name and optional description; commands carry
// only the optional description.
package claude

import (
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "claude"
	DisplayName = "Claude Code"
)

const (
	GuidelinesFile = ".claude/CLAUDE.md"
	SkillsDir      = ".claude/skills/"
	MCPFile        = ".claude/mcp.json"
	MCPKey         = "mcpServers"
	AgentsDir      = ".claude/agents/"
	CommandsDir    = ".claude/commands/"
)

// Tool returns the Claude Code descriptor.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{"CLAUDE.md", GuidelinesFile, ".claude/", MCPFile},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
			platform.MCP:        platform.MCPFile{File: MCPFile, Key: MCPKey},
			platform.Agents: platform.RecordFiles{
				Dir:    AgentsDir,
				Suffix: ".md",
				Select: platform.AgentRecords,
				Render: RenderAgent,
			},
			platform.Commands: platform.RecordFiles{
				Dir:    CommandsDir,
				Suffix: ".md",
				Select: platform.CommandRecords,
				Render: RenderCommand,
			},
		})
}

// RenderAgent renders .claude/agents/<key>.md.
func RenderAgent(r content.Record) ([]byte, error) {
	return platform.Markdown(platform.NameDescription(r), r.Body), nil
}

// RenderCommand renders .claude/commands/<key>.md.
func RenderCommand(r content.Record) ([]byte, error) {
	return platform.Markdown(platform.OptionalDescription(r), r.Body), nil
}
