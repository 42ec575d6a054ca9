package copilot

import (
	"testing"

	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/platform"
)

func TestTool(t *testing.T) {
	tool := Tool()
	if len(tool.Capabilities()) != 5 {
		t.Errorf("Capabilities() = %v, want all five", tool.Capabilities())
	}
	p, ok := tool.Provider(platform.MCP)
	if !ok {
		t.Fatal("copilot must support MCP")
	}
	m := p.(platform.MCPFile)
	if m.Key != "servers" || m.Style.RemoteType != "http" || m.File != ".vscode/mcp.json" {
		t.Errorf("MCP provider = %+v", m)
	}
}

func TestRenderAgent(t *testing.T) {
	tests := []struct {
		name   string
		record content.Record
		want   string
	}{
		{
			name:   "name and empty description",
			record: content.Record{Name: "planner", Body: "Plan."},
			want:   "---\nname: planner\ndescription: \n---\n\nPlan.",
		},
		{
			name:   "no name",
			record: content.Record{Description: "Plans", Body: "Plan."},
			want:   "---\ndescription: Plans\n---\n\nPlan.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := RenderAgent(tt.record)
			if string(got) != tt.want {
				t.Errorf("RenderAgent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderPrompt(t *testing.T) {
	got, _ := RenderPrompt(content.Record{Description: "Don't panic", Body: "Go."})
	want := "---\nagent: 'agent'\ndescription: 'Don''t panic'\n---\n\nGo."
	if string(got) != want {
		t.Errorf("RenderPrompt() = %q, want %q", got, want)
	}

	got, _ = RenderPrompt(content.Record{Body: "Go."})
	if string(got) != "---\nagent: 'agent'\n---\n\nGo." {
		t.Errorf("RenderPrompt() without description = %q", got)
	}
}
