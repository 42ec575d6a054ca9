// Package paths resolves the canonical mush project layout and the
// user-level configuration directory.
//
// A project keeps its tool-agnostic sources under .mush/:
//
//	.mush/
//	  mush.yaml              project configuration
//	  guidelines/*.md        free-text guidelines
//	  skills/<name>/SKILL.md reusable skills
//	  agents/*.md            sub-agent definitions
//	  commands/*.md          slash commands
//	  mcp.json               {"servers": {...}}
//	  mcp.override.json      local, untracked overrides
//
// User-level defaults live in $XDG_CONFIG_HOME/mush/ (via github.com/adrg/xdg).
package paths
