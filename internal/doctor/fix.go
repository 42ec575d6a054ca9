package doctor

import (
	"context"
	"fmt"
	"os"
)

// Fixer is implemented by checks that can repair what their last Run found.
type Fixer interface {
	// CanFix reports whether the last Run left anything to repair.
	CanFix() bool

	// Fix repairs the findings of the last Run, one result per path.
	Fix(ctx context.Context) []FixResult
}

// FixResult is the outcome of repairing one path.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// sourceDirPerm is used for recreated .mush/ source directories.
const sourceDirPerm os.FileMode = 0o755

func fixed(path, format string, args ...any) FixResult {
	return FixResult{Path: path, Fixed: true, Description: fmt.Sprintf(format, args...)}
}

func fixFailed(path, action string, err error) FixResult {
	return FixResult{Path: path, Description: fmt.Sprintf("%s: %v", action, err), Error: err}
}
