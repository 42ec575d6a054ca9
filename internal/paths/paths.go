package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/mush/internal/errors"
)

// AppName names the user-level configuration directory.
const AppName = "mush"

// Canonical layout, relative to the project root.
const (
	CanonicalDir      = ".mush"
	ConfigFile        = "mush.yaml"
	GuidelinesDir     = "guidelines"
	SkillsDir         = "skills"
	AgentsDir         = "agents"
	CommandsDir       = "commands"
	MCPFile           = "mcp.json"
	MCPOverrideFile   = "mcp.override.json"
	UserConfigFile    = "config.yaml"
	SkillFileName     = "SKILL.md"
	DefaultIgnoreFile = ".gitignore"
)

// ErrInvalidPath indicates the provided path is malformed or invalid.
var ErrInvalidPath = errors.New("invalid path")

// Layout resolves canonical source locations for one project root.
type Layout struct {
	Root string
}

// NewLayout returns the layout for root, made absolute when possible.
func NewLayout(root string) Layout {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return Layout{Root: root}
}

// Dir returns the absolute .mush directory.
func (l Layout) Dir() string { return filepath.Join(l.Root, CanonicalDir) }

// Config returns the project configuration file.
func (l Layout) Config() string { return filepath.Join(l.Dir(), ConfigFile) }

// Guidelines returns the guideline source directory.
func (l Layout) Guidelines() string { return filepath.Join(l.Dir(), GuidelinesDir) }

// Skills returns the skill source directory.
func (l Layout) Skills() string { return filepath.Join(l.Dir(), SkillsDir) }

// Agents returns the agent source directory.
func (l Layout) Agents() string { return filepath.Join(l.Dir(), AgentsDir) }

// Commands returns the command source directory.
func (l Layout) Commands() string { return filepath.Join(l.Dir(), CommandsDir) }

// MCP returns the base MCP declaration file.
func (l Layout) MCP() string { return filepath.Join(l.Dir(), MCPFile) }

// MCPOverride returns the local MCP override file.
func (l Layout) MCPOverride() string { return filepath.Join(l.Dir(), MCPOverrideFile) }

// IgnoreFile returns the project's .gitignore.
func (l Layout) IgnoreFile() string { return filepath.Join(l.Root, DefaultIgnoreFile) }

// SourceDirs lists every canonical source directory in creation order.
func (l Layout) SourceDirs() []string {
	return []string{l.Guidelines(), l.Skills(), l.Agents(), l.Commands()}
}

// Initialized reports whether the canonical directory exists.
func (l Layout) Initialized() bool {
	info, err := os.Stat(l.Dir())
	return err == nil && info.IsDir()
}

// Resolve turns a project-relative target path into an absolute one.
// Absolute paths are returned cleaned. A trailing slash is preserved so
// callers can still tell directory targets apart.
func (l Layout) Resolve(p string) (string, error) {
	if p == "" || strings.ContainsRune(p, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", p)
	}
	dirStyle := strings.HasSuffix(p, "/")

	var out string
	if filepath.IsAbs(p) {
		out = filepath.Clean(p)
	} else {
		out = filepath.Join(l.Root, filepath.FromSlash(p))
	}
	if dirStyle && !strings.HasSuffix(out, string(filepath.Separator)) {
		out += string(filepath.Separator)
	}
	return out, nil
}

// Rel expresses target relative to the project root with forward slashes.
// Targets outside the root are returned unchanged.
func (l Layout) Rel(target string) string {
	rel, err := filepath.Rel(l.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(target)
	}
	out := filepath.ToSlash(rel)
	if strings.HasSuffix(target, string(filepath.Separator)) && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// UserConfigDir returns $XDG_CONFIG_HOME/mush.
func UserConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// UserConfig returns the user-level defaults file.
func UserConfig() string {
	return filepath.Join(UserConfigDir(), UserConfigFile)
}
