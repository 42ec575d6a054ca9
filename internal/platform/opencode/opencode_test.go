package opencode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/platform"
)

func TestTool(t *testing.T) {
	tool := Tool()
	assert.Equal(t, []string{"AGENTS.md", "opencode.json", ".opencode/"}, tool.Markers)

	p, ok := tool.Provider(platform.MCP)
	assert.True(t, ok)
	assert.True(t, p.(platform.MCPFile).Style.OpenCode)
	assert.Equal(t, "mcp", p.(platform.MCPFile).Key)
}

func TestRenderAgent(t *testing.T) {
	got, err := RenderAgent(content.Record{Name: "ignored", Description: "Reviews", Body: "Review."})
	assert.NoError(t, err)
	assert.Equal(t, "---\ndescription: Reviews\n---\n\nReview.", string(got))
}

func TestRenderCommand(t *testing.T) {
	got, _ := RenderCommand(content.Record{Body: "Run."})
	assert.Equal(t, "---\n---\n\nRun.", string(got))
}
