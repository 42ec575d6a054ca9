package gitignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mush/internal/workspace"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		workDir string
		path    string
		want    string
	}{
		{"", ".claude/CLAUDE.md", "/.claude/CLAUDE.md"},
		{"", "./.cursor/", "/.cursor/"},
		{"", "/AGENTS.md", "/AGENTS.md"},
		{"", "././x", "/x"},
		{"/work/proj", "/work/proj/.claude/skills/", "/.claude/skills/"},
		{"/work/proj/", "/work/proj/GEMINI.md", "/GEMINI.md"},
		{"/work/proj", "/work/project2/x", "/work/project2/x"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Normalize(tt.workDir, tt.path); got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.workDir, tt.path, got, tt.want)
			}
		})
	}
}

func TestCovered(t *testing.T) {
	entries := []string{"/.claude/", "node_modules", "AGENTS.md", ".vscode/mcp.json"}
	tests := []struct {
		candidate string
		want      bool
	}{
		{"/.claude/CLAUDE.md", true},
		{"/.claude/skills/", true},
		{"/.claude", true},
		{"/AGENTS.md", true},
		{"/.vscode/mcp.json", true},
		{"/node_modules/x", true},
		{"/.claudette/x", false},
		{"/GEMINI.md", false},
		{"/.vscode/settings.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.candidate, func(t *testing.T) {
			assert.Equal(t, tt.want, Covered(entries, tt.candidate))
		})
	}
}

func TestUpdate_NewBlock(t *testing.T) {
	got, added := Update("node_modules/\n\n\n", []string{"/AGENTS.md", "/.claude/", "/.claude/CLAUDE.md", "/AGENTS.md"})

	assert.Equal(t, []string{"/AGENTS.md", "/.claude/"}, added)
	assert.Equal(t, "node_modules/\n\n"+BeginMarker+"\n/AGENTS.md\n/.claude/\n"+EndMarker+"\n", got)
}

func TestUpdate_EmptyFile(t *testing.T) {
	got, _ := Update("", []string{"/GEMINI.md"})
	assert.Equal(t, BeginMarker+"\n/GEMINI.md\n"+EndMarker+"\n", got)
}

func TestUpdate_Scoping(t *testing.T) {
	before := "# deps\nnode_modules/\n/.claude/\n\n"
	block := BeginMarker + "\n/AGENTS.md\n" + EndMarker + "\n"
	after := "\n# local\n*.log\n"
	content := before + block + after

	got, added := Update(content, []string{"/AGENTS.md", "/.claude/CLAUDE.md", "/GEMINI.md"})

	assert.Equal(t, []string{"/GEMINI.md"}, added, "covered paths are not duplicated")
	assert.Equal(t, before+BeginMarker+"\n/AGENTS.md\n/GEMINI.md\n"+EndMarker+"\n"+after, got)

	again, added := Update(got, []string{"/AGENTS.md", "/GEMINI.md"})
	assert.Empty(t, added)
	assert.Equal(t, got, again)
}

func TestUpdate_LegacySection(t *testing.T) {
	content := "vendor/\n\n# Mush generated files\n/AGENTS.md\n\n*.tmp\n"

	got, added := Update(content, []string{"/AGENTS.md", "/GEMINI.md"})

	assert.Equal(t, []string{"/GEMINI.md"}, added)
	assert.Equal(t, "vendor/\n\n# Mush generated files\n/AGENTS.md\n/GEMINI.md\n"+EndMarker+"\n\n*.tmp\n", got)

	// The closed section now takes further paths before its end marker.
	got, _ = Update(got, []string{"/.cursor/"})
	assert.Equal(t, "vendor/\n\n# Mush generated files\n/AGENTS.md\n/GEMINI.md\n/.cursor/\n"+EndMarker+"\n\n*.tmp\n", got)
}

func TestUpdate_LegacySectionAtEOF(t *testing.T) {
	got, _ := Update("# Fusion generated files\n/AGENTS.md", []string{"/GEMINI.md"})
	assert.Equal(t, "# Fusion generated files\n/AGENTS.md\n/GEMINI.md\n"+EndMarker+"\n", got)
}

func TestUpdate_LegacyUntouchedWhenNothingNew(t *testing.T) {
	content := "# Mush generated files\n/AGENTS.md\n"
	got, added := Update(content, []string{"/AGENTS.md"})
	assert.Empty(t, added)
	assert.Equal(t, content, got)
}

func TestUpdateFile(t *testing.T) {
	root := t.TempDir()
	disk := workspace.NewDisk(root)

	added, err := UpdateFile(disk, ".gitignore", root, nil)
	require.NoError(t, err)
	assert.Empty(t, added)
	_, err = os.Stat(filepath.Join(root, ".gitignore"))
	assert.True(t, os.IsNotExist(err), "no file is created when nothing is added")

	added, err = UpdateFile(disk, ".gitignore", root, []string{filepath.Join(root, ".claude", "CLAUDE.md"), ".mush/mcp.override.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/.claude/CLAUDE.md", "/.mush/mcp.override.json"}, added)

	first, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)

	added, err = UpdateFile(disk, ".gitignore", root, []string{".claude/CLAUDE.md"})
	require.NoError(t, err)
	assert.Empty(t, added)

	second, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
