// Package junie projects mush content into JetBrains Junie's .junie/ directory.
package junie

import (
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "junie"
	DisplayName = "Junie"
)

const (
	GuidelinesFile = ".junie/guidelines.md"
	SkillsDir      = ".junie/skills/"
	MCPFile        = ".junie/mcp/mcp.json"
	MCPKey         = "mcpServers"
	CommandsDir    = ".junie/commands/"
)

// Tool returns the Junie descriptor. Junie has no agent definitions.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{GuidelinesFile, MCPFile},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
			platform.MCP:        platform.MCPFile{File: MCPFile, Key: MCPKey},
			platform.Commands: platform.RecordFiles{
				Dir:    CommandsDir,
				Suffix: ".md",
				Select: platform.CommandRecords,
				Render: RenderCommand,
			},
		})
}

func RenderCommand(r content.Record) ([]byte, error) {
	return platform.Markdown(platform.OptionalDescription(r), r.Body), nil
}
