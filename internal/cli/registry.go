// Package cli provides CLI-specific wiring for the mush command.
package cli

import (
	"github.com/thoreinstein/mush/internal/platform"
	"github.com/thoreinstein/mush/internal/platform/claude"
	"github.com/thoreinstein/mush/internal/platform/codex"
	"github.com/thoreinstein/mush/internal/platform/copilot"
	"github.com/thoreinstein/mush/internal/platform/cursor"
	"github.com/thoreinstein/mush/internal/platform/gemini"
	"github.com/thoreinstein/mush/internal/platform/junie"
	"github.com/thoreinstein/mush/internal/platform/opencode"
)

// Tools returns every supported tool in synchronisation order.
func Tools() []*platform.Tool {
	return []*platform.Tool{
		claude.Tool(),
		opencode.Tool(),
		junie.Tool(),
		gemini.Tool(),
		copilot.Tool(),
		codex.Tool(),
		cursor.Tool(),
	}
}

// NewRegistry returns a registry of every supported tool.
func NewRegistry() *platform.Registry {
	reg, err := platform.NewRegistry(Tools()...)
	if err != nil {
		// The tool table is static; a failure here is a programming error.
		panic(err)
	}
	return reg
}
