package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/logging"
)

// printer writes user-facing output, coloured only on a capable terminal.
type printer struct {
	out   io.Writer
	quiet bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	faint  *color.Color
	bold   *color.Color
}

func newPrinter(out io.Writer, quiet bool) *printer {
	p := &printer{
		out:    out,
		quiet:  quiet,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		faint:  color.New(color.FgHiBlack),
		bold:   color.New(color.Bold),
	}
	if !logging.SupportsColor(out) {
		for _, c := range []*color.Color{p.green, p.yellow, p.red, p.faint, p.bold} {
			c.DisableColor()
		}
	}
	return p
}

// Printf writes unless --quiet is set.
func (p *printer) Printf(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

// Success prints a green check line.
func (p *printer) Success(format string, args ...any) {
	if p.quiet {
		return
	}
	p.green.Fprint(p.out, "✓ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Diff prints a unified diff with added and removed lines coloured.
func (p *printer) Diff(diff string) {
	if p.quiet {
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case len(line) >= 3 && (line[:3] == "+++" || line[:3] == "---"):
			p.bold.Fprintln(p.out, line)
		case len(line) > 0 && line[0] == '+':
			p.green.Fprintln(p.out, line)
		case len(line) > 0 && line[0] == '-':
			p.red.Fprintln(p.out, line)
		case len(line) > 1 && line[:2] == "@@":
			p.faint.Fprintln(p.out, line)
		default:
			fmt.Fprintln(p.out, line)
		}
	}
}

// PrintError writes err and its suggestion, if any, to w.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	if !logging.SupportsColor(w) {
		red.DisableColor()
	}
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err.Error())
	if s := errors.Suggestion(err); s != "" {
		fmt.Fprintf(w, "  %s\n", s)
	}
}
