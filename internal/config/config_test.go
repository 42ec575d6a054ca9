package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/mush/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mush.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFiles_Defaults(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.yaml"), "")
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if cfg.Version != 1 || !cfg.Gitignore || len(cfg.Agents) != 0 || !cfg.Paths.Empty() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFiles_ProjectOverridesUser(t *testing.T) {
	user := writeConfig(t, "agents:\n  - claude\ngitignore: false\n")
	project := writeConfig(t, "agents:\n  - cursor\n  - gemini\npaths:\n  mcp:\n    - .zed/mcp.json\n")

	cfg, err := LoadFiles(user, project)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if strings.Join(cfg.Agents, ",") != "cursor,gemini" {
		t.Errorf("Agents = %v, want project list", cfg.Agents)
	}
	if cfg.Gitignore {
		t.Error("Gitignore should keep the user-level false")
	}
	if len(cfg.Paths.MCP) != 1 || cfg.Paths.MCP[0] != ".zed/mcp.json" {
		t.Errorf("Paths.MCP = %v", cfg.Paths.MCP)
	}
}

func TestLoadFiles_Env(t *testing.T) {
	t.Setenv("MUSH_GITIGNORE", "false")

	cfg, err := LoadFiles(writeConfig(t, "version: 1\n"))
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if cfg.Gitignore {
		t.Error("MUSH_GITIGNORE=false should disable gitignore updates")
	}
}

func TestLoadFiles_Invalid(t *testing.T) {
	_, err := LoadFiles(writeConfig(t, "agents: [unclosed\n"))
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("LoadFiles() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".mush", "mush.yaml")
	in := Default()
	in.Agents = []string{"claude", "junie"}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out, err := LoadFiles(path)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}
	if strings.Join(out.Agents, ",") != "claude,junie" || out.Version != 1 || !out.Gitignore {
		t.Errorf("round trip = %+v", out)
	}
}

func TestValidate(t *testing.T) {
	known := []string{"claude", "cursor"}

	tests := []struct {
		name    string
		cfg     *Config
		binary  string
		wantErr []error
	}{
		{
			name: "valid",
			cfg:  &Config{Version: 1, Agents: []string{"claude", "Cursor"}, MinVersion: "0.1.0"},
		},
		{
			name:    "everything wrong",
			cfg:     &Config{Version: 0, Agents: []string{"windsurf"}, Paths: Paths{Skills: []string{"."}}, MinVersion: "soon"},
			wantErr: []error{ErrVersionTooLow, ErrUnknownAgent, ErrInvalidPath, ErrInvalidMinVersion},
		},
		{
			name:    "binary too old",
			cfg:     &Config{Version: 1, MinVersion: "2.0.0"},
			binary:  "1.4.2",
			wantErr: []error{ErrBinaryTooOld},
		},
		{
			name:   "dev build skips version check",
			cfg:    &Config{Version: 1, MinVersion: "2.0.0"},
			binary: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary := tt.binary
			if binary == "" {
				binary = "1.0.0"
			}
			err := Validate(tt.cfg, known, binary)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Validate() error = %v, want it to include %v", err, want)
				}
			}
		})
	}
}
