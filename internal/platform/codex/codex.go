// Package codex projects mush content for OpenAI Codex, which reads
// AGENTS.md and .codex/skills/ only.
package codex

import "github.com/thoreinstein/mush/internal/platform"

const (
	ID          = "codex"
	DisplayName = "OpenAI Codex"

	GuidelinesFile = "AGENTS.md"
	SkillsDir      = ".codex/skills/"
)

// Tool returns the Codex descriptor.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{GuidelinesFile, ".codex/"},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
		})
}
