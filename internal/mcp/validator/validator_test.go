package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/mush/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErrors bool
		wantWarn   bool
		wantErr    error
	}{
		{
			name:  "valid local and remote",
			input: `{"servers": {"a": {"command": ["npx", "x"], "env": {"K": "v"}}, "b": {"url": "https://x/mcp"}}}`,
		},
		{
			name:  "empty servers",
			input: `{"servers": {}}`,
		},
		{
			name:       "invalid json",
			input:      `{"servers":`,
			wantErrors: true,
			wantErr:    ErrInvalidJSON,
		},
		{
			name:       "non-object descriptor",
			input:      `{"servers": {"a": "npx"}}`,
			wantErrors: true,
			wantErr:    ErrNotAnObject,
		},
		{
			name:       "command wrong type",
			input:      `{"servers": {"a": {"command": 7}}}`,
			wantErrors: true,
			wantErr:    ErrSchema,
		},
		{
			name:       "servers not object",
			input:      `{"servers": []}`,
			wantErrors: true,
			wantErr:    ErrSchema,
		},
		{
			name:     "neither command nor url",
			input:    `{"servers": {"a": {}}}`,
			wantWarn: true,
		},
		{
			name:     "both command and url",
			input:    `{"servers": {"a": {"command": "x", "url": "https://x"}}}`,
			wantWarn: true,
		},
		{
			name:     "non-http url",
			input:    `{"servers": {"a": {"url": "ftp://x"}}}`,
			wantWarn: true,
		},
		{
			name:       "empty env key",
			input:      `{"servers": {"a": {"command": "x", "env": {"": "v"}}}}`,
			wantErrors: true,
			wantErr:    ErrEmptyEnvKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := Validate([]byte(tt.input))
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got := HasErrors(issues); got != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v; issues: %v", got, tt.wantErrors, issues)
			}
			if tt.wantWarn && !hasSeverity(issues, SeverityWarning) {
				t.Errorf("expected a warning, got %v", issues)
			}
			if !tt.wantErrors && !tt.wantWarn && len(issues) != 0 {
				t.Errorf("expected no issues, got %v", issues)
			}
			if tt.wantErr != nil && !hasErr(issues, tt.wantErr) {
				t.Errorf("expected issue wrapping %v, got %v", tt.wantErr, issues)
			}
		})
	}
}

func TestValidate_SchemaIssueNamesServer(t *testing.T) {
	issues, err := Validate([]byte(`{"servers": {"broken": {"url": 12}}}`))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	found := false
	for _, i := range issues {
		if i.Server == "broken" && errors.Is(i, ErrSchema) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected schema issue for server broken, got %v", issues)
	}
}

func TestValidateFile_Missing(t *testing.T) {
	issues, err := ValidateFile(filepath.Join(t.TempDir(), "mcp.json"))
	if err != nil {
		t.Fatalf("ValidateFile() error = %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp.json")
	if err := os.WriteFile(path, []byte(`{"servers": {"a": 1}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	issues, err := ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile() error = %v", err)
	}
	if !HasErrors(issues) {
		t.Errorf("expected errors, got %v", issues)
	}
}

func TestIssue_Error(t *testing.T) {
	i := &Issue{Server: "a", Field: "url", Message: "bad", Severity: SeverityWarning}
	if got, want := i.Error(), `warning: server "a" field "url": bad`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func hasSeverity(issues []*Issue, s Severity) bool {
	for _, i := range issues {
		if i.Severity == s {
			return true
		}
	}
	return false
}

func hasErr(issues []*Issue, target error) bool {
	for _, i := range issues {
		if errors.Is(i, target) {
			return true
		}
	}
	return false
}
