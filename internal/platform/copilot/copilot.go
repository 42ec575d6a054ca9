// Package copilot projects mush content for GitHub Copilot.
package copilot

import (
	"strings"

	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "copilot"
	DisplayName = "GitHub Copilot"
)

const (
	GuidelinesFile = ".github/copilot-instructions.md"
	SkillsDir      = ".github/skills/"
	MCPFile        = ".vscode/mcp.json"
	MCPKey         = "servers"
	AgentsDir      = ".github/agents/"
	PromptsDir     = ".github/prompts/"

	// RemoteType is stamped on remote MCP entries.
	RemoteType = "http"
)

// Tool returns the Copilot descriptor.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{GuidelinesFile, MCPFile, ".github/"},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
			platform.MCP: platform.MCPFile{
				File:  MCPFile,
				Key:   MCPKey,
				Style: mcp.Style{RemoteType: RemoteType},
			},
			platform.Agents: platform.RecordFiles{
				Dir:    AgentsDir,
				Suffix: ".md",
				Select: platform.AgentRecords,
				Render: RenderAgent,
			},
			platform.Commands: platform.RecordFiles{
				Dir:    PromptsDir,
				Suffix: ".prompt.md",
				Select: platform.CommandRecords,
				Render: RenderPrompt,
			},
		})
}

// RenderAgent renders a custom agent. Copilot requires the description, so
// it is always written, even when empty.
func RenderAgent(r content.Record) ([]byte, error) {
	var header []string
	if r.Name != "" {
		header = append(header, "name: "+r.Name)
	}
	header = append(header, "description: "+r.Description)
	return platform.Markdown(header, r.Body), nil
}

// RenderPrompt renders a prompt file run in agent mode.
func RenderPrompt(r content.Record) ([]byte, error) {
	header := []string{"agent: 'agent'"}
	if r.Description != "" {
		header = append(header, "description: "+quote(r.Description))
	}
	return platform.Markdown(header, r.Body), nil
}

// quote renders s as a YAML single-quoted scalar.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
