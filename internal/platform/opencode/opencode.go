// Package opencode projects mush content for OpenCode.
//
// MCP servers are written under "mcp" in opencode.json using OpenCode's own
// shape: local servers keep their command as an array and pass variables as
// "environment".
package opencode

import (
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "opencode"
	DisplayName = "OpenCode"
)

const (
	GuidelinesFile = "AGENTS.md"
	SkillsDir      = ".opencode/skills/"
	ConfigFile     = "opencode.json"
	MCPKey         = "mcp"
	AgentsDir      = ".opencode/agents/"
	CommandsDir    = ".opencode/commands/"
)

// Tool returns the OpenCode descriptor.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{GuidelinesFile, ConfigFile, ".opencode/"},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
			platform.MCP: platform.MCPFile{
				File:  ConfigFile,
				Key:   MCPKey,
				Style: mcp.Style{OpenCode: true},
			},
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

// RenderAgent writes only the description; OpenCode names agents after
// their file.
func RenderAgent(r content.Record) ([]byte, error) {
	return platform.Markdown([]string{"description: " + r.Description}, r.Body), nil
}

func RenderCommand(r content.Record) ([]byte, error) {
	return platform.Markdown(platform.OptionalDescription(r), r.Body), nil
}
