package cli

import (
	"testing"

	"github.com/thoreinstein/mush/internal/platform"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	want := []string{"claude", "opencode", "junie", "gemini", "copilot", "codex", "cursor"}
	got := reg.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewRegistry_MCPSupport(t *testing.T) {
	reg := NewRegistry()
	for _, tool := range reg.All() {
		wantMCP := tool.ID != "codex"
		if got := tool.Supports(platform.MCP); got != wantMCP {
			t.Errorf("%s Supports(MCP) = %v, want %v", tool.ID, got, wantMCP)
		}
		if !tool.Supports(platform.Guidelines) || !tool.Supports(platform.Skills) {
			t.Errorf("%s must support guidelines and skills", tool.ID)
		}
		if len(tool.Markers) == 0 || tool.DisplayName == "" {
			t.Errorf("%s is missing metadata", tool.ID)
		}
	}
}
