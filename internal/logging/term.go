package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

// IsTTY reports whether w (or r) is attached to a terminal. Anything that
// does not expose a file descriptor is treated as a pipe.
func IsTTY(v any) bool {
	f, ok := v.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether prompts can be shown: both ends must be
// terminals.
func IsInteractive(in io.Reader, out io.Writer) bool {
	return IsTTY(in) && IsTTY(out)
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// NO_COLOR (https://no-color.org) and TERM=dumb disable colour even on a TTY.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTTY(w))
}

func colorAllowed(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
