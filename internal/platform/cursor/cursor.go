// Package cursor projects mush content into Cursor's .cursor/ directory.
package cursor

import (
	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "cursor"
	DisplayName = "Cursor"
)

const (
	RulesDir       = ".cursor/rules/"
	GuidelinesFile = RulesDir + "mush.mdc"
	SkillsDir      = ".cursor/skills/"
	MCPFile        = ".cursor/mcp.json"
	MCPKey         = "mcpServers"
	CommandsDir    = ".cursor/commands/"
)

// Tool returns the Cursor descriptor. Cursor has no agent definitions.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{".cursorrules", ".cursor/", RulesDir, MCPFile},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile, Wrap: WrapRule},
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

// WrapRule turns the guideline document into an always-applied MDC rule.
func WrapRule(text string) string {
	return "---\nalwaysApply: true\n---\n\n" + text
}

// RenderCommand renders a command as plain markdown, without a header.
func RenderCommand(r content.Record) ([]byte, error) {
	return []byte(r.Body), nil
}

