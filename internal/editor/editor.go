// Package editor launches the user's text editor on a canonical source file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/mush/internal/errors"
)

// ErrNoEditor is returned when no editor is configured or installed.
var ErrNoEditor = errors.New("no editor found: set $MUSH_EDITOR or $EDITOR")

// envVars are consulted in order. The first non-empty value wins.
var envVars = []string{"MUSH_EDITOR", "EDITOR", "VISUAL"}

// fallbacks are tried on $PATH when no variable is set.
var fallbacks = []string{"nano", "vi"}

// Editor runs an external editor attached to the given streams.
type Editor struct {
	// Args is the editor command and its leading arguments, e.g. ["code", "-w"].
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Detect returns an Editor attached to the process's terminal.
func Detect() (*Editor, error) {
	args := detectCommand(os.Getenv, exec.LookPath)
	if len(args) == 0 {
		return nil, ErrNoEditor
	}
	return &Editor{Args: args, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}, nil
}

// Open blocks until the editor exits.
func (e *Editor) Open(ctx context.Context, path string) error {
	if len(e.Args) == 0 {
		return ErrNoEditor
	}
	args := append(append([]string{}, e.Args[1:]...), path)
	cmd := exec.CommandContext(ctx, e.Args[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", e.Args[0])
	}
	return nil
}

// detectCommand splits the first configured editor into words so values
// like "code --wait" work.
func detectCommand(getenv func(string) string, lookPath func(string) (string, error)) []string {
	for _, name := range envVars {
		if fields := strings.Fields(getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	for _, bin := range fallbacks {
		if _, err := lookPath(bin); err == nil {
			return []string{bin}
		}
	}
	return nil
}
