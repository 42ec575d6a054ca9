package mcp

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		keys   int
	}{
		{"empty", "", true, 0},
		{"whitespace", "  \n", true, 0},
		{"object", `{"a": 1, "b": {}}`, true, 2},
		{"array", `[1, 2]`, false, 0},
		{"invalid", `{"a":`, false, 0},
		{"scalar", `"x"`, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, ok := ParseDocument([]byte(tt.input))
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if doc == nil {
				t.Fatal("doc is nil")
			}
			if len(doc) != tt.keys {
				t.Errorf("len(doc) = %d, want %d", len(doc), tt.keys)
			}
		})
	}
}

func TestParseDocument_KeepsNumberText(t *testing.T) {
	doc, ok := ParseDocument([]byte(`{"big": 12345678901234567890, "f": 1.50}`))
	require.True(t, ok)

	out, err := Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "12345678901234567890")
	assert.Contains(t, string(out), "1.50")
}

func TestMergeDocument_PreservesOtherKeysAndServers(t *testing.T) {
	existing, ok := ParseDocument([]byte(`{
		"theme": "dark",
		"mcpServers": {
			"old": {"command": "old-bin"},
			"shared": {"command": "stale", "args": ["--x"], "env": {"A": "1"}}
		}
	}`))
	require.True(t, ok)

	merged := MergeDocument(existing, "mcpServers", map[string]any{
		"shared": map[string]any{"command": "fresh"},
		"new":    map[string]any{"url": "https://x"},
	})

	assert.Equal(t, "dark", merged["theme"])
	servers := merged["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "old")
	assert.Contains(t, servers, "new")
	assert.Equal(t, map[string]any{"command": "fresh"}, servers["shared"], "replaced entries must not keep old fields")
}

func TestMergeDocument_EmptyEntriesClearServers(t *testing.T) {
	existing := map[string]any{
		"mcpServers": map[string]any{"old": map[string]any{"command": "x"}},
		"keep":       true,
	}

	merged := MergeDocument(existing, "mcpServers", map[string]any{})

	out, err := Marshal(merged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep": true, "mcpServers": {}}`, string(out))
}

func TestMergeDocument_NoExisting(t *testing.T) {
	merged := MergeDocument(map[string]any{}, "servers", map[string]any{
		"a": map[string]any{"command": "bin"},
	})
	assert.Equal(t, map[string]any{"a": map[string]any{"command": "bin"}}, merged["servers"])
}

func TestMergeDocument_DoesNotMutateInput(t *testing.T) {
	existing := map[string]any{
		"mcp": map[string]any{"a": map[string]any{"type": "local"}},
	}
	_ = MergeDocument(existing, "mcp", map[string]any{"b": map[string]any{}})

	assert.Len(t, existing["mcp"].(map[string]any), 1)
}

func TestDeepMerge(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{"x": 1, "y": 2},
		"l": []any{1, 2, 3},
		"s": "base",
	}
	overlay := map[string]any{
		"a": map[string]any{"y": 20, "z": 30},
		"l": []any{9},
		"n": nil,
	}

	got := DeepMerge(base, overlay)

	assert.Equal(t, map[string]any{"x": 1, "y": 20, "z": 30}, got["a"])
	assert.Equal(t, []any{9}, got["l"], "lists are replaced")
	assert.Equal(t, "base", got["s"])
	assert.Contains(t, got, "n")
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, base["a"])
}

func TestMarshal_Format(t *testing.T) {
	out, err := Marshal(map[string]any{
		"b":   map[string]any{"url": "https://example.com/a?x=1&y=2"},
		"a":   1,
		"nil": map[string]any{},
	})
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.Contains(t, s, "\n  \"a\": 1,")
	assert.Contains(t, s, "https://example.com/a?x=1&y=2")
	assert.Contains(t, s, `"nil": {}`)
	assert.Less(t, strings.Index(s, `"a"`), strings.Index(s, `"b"`))

	var round map[string]any
	require.NoError(t, json.Unmarshal(out, &round))
}
