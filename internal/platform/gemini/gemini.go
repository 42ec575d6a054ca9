// Package gemini projects mush content for the Gemini CLI.
//
// Commands are TOML files with a "prompt" multi-line string and an optional
// "description". MCP servers live under "mcpServers" in .gemini/settings.json
// next to the user's other settings, which are preserved.
package gemini

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/platform"
)

const (
	ID          = "gemini"
	DisplayName = "Gemini"
)

const (
	GuidelinesFile = "GEMINI.md"
	SkillsDir      = ".gemini/skills/"
	SettingsFile   = ".gemini/settings.json"
	MCPKey         = "mcpServers"
	CommandsDir    = ".gemini/commands/"
)

// Tool returns the Gemini descriptor. Gemini has no agent definitions.
func Tool() *platform.Tool {
	return platform.NewTool(ID, DisplayName,
		[]string{GuidelinesFile, SettingsFile},
		map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: GuidelinesFile},
			platform.Skills:     platform.SkillTree{Dir: SkillsDir},
			platform.MCP:        platform.MCPFile{File: SettingsFile, Key: MCPKey},
			platform.Commands: platform.RecordFiles{
				Dir:    CommandsDir,
				Suffix: ".toml",
				Select: platform.CommandRecords,
				Render: RenderCommand,
			},
		})
}

// Command is the TOML shape of a Gemini command file.
type Command struct {
	Description string `toml:"description,omitempty"`
	Prompt      string `toml:"prompt"`
}

// RenderCommand writes the prompt as a multi-line basic string. When the
// body cannot be represented that way (it contains `"""` or backslash
// sequences), the command is encoded by go-toml instead so the file always
// parses back to the same prompt.
func RenderCommand(r content.Record) ([]byte, error) {
	var b strings.Builder
	if r.Description != "" {
		b.WriteString(`description = "`)
		b.WriteString(escape(r.Description))
		b.WriteString("\"\n")
	}
	b.WriteString("prompt = \"\"\"\n")
	b.WriteString(r.Body)
	b.WriteString("\n\"\"\"\n")

	data := []byte(b.String())
	var parsed Command
	if err := toml.Unmarshal(data, &parsed); err == nil &&
		parsed.Description == r.Description && parsed.Prompt == r.Body+"\n" {
		return data, nil
	}

	data, err := toml.Marshal(Command{Description: r.Description, Prompt: r.Body + "\n"})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling command to TOML")
	}
	return data, nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escape(s string) string {
	return escaper.Replace(s)
}
