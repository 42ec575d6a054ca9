package junie

import (
	"testing"

	"github.com/thoreinstein/mush/internal/platform"
)

func TestTool(t *testing.T) {
	tool := Tool()
	if tool.Supports(platform.Agents) {
		t.Error("junie must not support agents")
	}
	if got := tool.Paths(); len(got) != 4 || got[2] != ".junie/mcp/mcp.json" {
		t.Errorf("Paths() = %v", got)
	}
}
