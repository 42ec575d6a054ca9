package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/platform"
)

func tools() []*platform.Tool {
	return []*platform.Tool{
		platform.NewTool("alpha", "Alpha", nil, map[platform.Capability]platform.Provider{
			platform.Guidelines: platform.GuidelinesFile{File: "ALPHA.md"},
		}),
		platform.NewTool("beta", "Beta", nil, nil),
		platform.NewTool("gamma", "Gamma", nil, nil),
	}
}

func ids(ts []*platform.Tool) string {
	var out []string
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return strings.Join(out, ",")
}

func TestSelectTools_Empty(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	if _, err := s.SelectTools(nil, nil); !errors.Is(err, ErrNoTools) {
		t.Errorf("expected ErrNoTools, got %v", err)
	}
}

func TestSelectTools(t *testing.T) {
	t.Parallel()

	all := tools()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "default", input: "\n", want: "beta"},
		{name: "comma list", input: "3,1\n", want: "alpha,gamma"},
		{name: "spaces and duplicates", input: "2 2  3\n", want: "beta,gamma"},
		{name: "no trailing newline", input: "1", want: "alpha"},
		{name: "not a number", input: "x\n", wantErr: ErrInvalidSelection},
		{name: "out of range", input: "4\n", wantErr: ErrInvalidSelection},
		{name: "eof", input: "", wantErr: ErrSelectionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &out)
			got, err := s.SelectTools(all, all[1:2])
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ids(got) != tt.want {
				t.Errorf("SelectTools() = %s, want %s", ids(got), tt.want)
			}
			if !strings.Contains(out.String(), " *[2] Beta (beta)") {
				t.Errorf("prompt should mark defaults:\n%s", out.String())
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	got := describe(tools()[0])
	if !strings.Contains(got, "guidelines ALPHA.md") || !strings.Contains(got, "mcp        -") {
		t.Errorf("describe() =\n%s", got)
	}
}
