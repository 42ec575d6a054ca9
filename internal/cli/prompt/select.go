// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/platform"
)

// Sentinel errors for tool selection.
var (
	ErrNoTools            = errors.New("no tools to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive tool selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectTools prompts for a comma- or space-separated list of numbers.
//
// Returns:
//   - ErrNoTools if the list is empty
//   - defaults if the answer is empty
//   - ErrInvalidSelection if an entry is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectTools(tools, defaults []*platform.Tool) ([]*platform.Tool, error) {
	if len(tools) == 0 {
		return nil, ErrNoTools
	}

	fmt.Fprintln(s.writer, "Which tools should mush configure?")
	for i, t := range tools {
		mark := " "
		if contains(defaults, t) {
			mark = "*"
		}
		fmt.Fprintf(s.writer, " %s[%d] %s (%s)\n", mark, i+1, t.DisplayName, t.ID)
	}
	fmt.Fprint(s.writer, "Select (e.g. 1,3; empty for *): ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return defaults, nil
	}

	picked := make([]bool, len(tools))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", f)
		}
		if n < 1 || n > len(tools) {
			return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(tools))
		}
		picked[n-1] = true
	}

	var out []*platform.Tool
	for i, t := range tools {
		if picked[i] {
			out = append(out, t)
		}
	}
	return out, nil
}

// FuzzySelectTools opens a full-screen multi-select over tools. Tab marks
// entries, Enter confirms. The result keeps the order of tools.
func FuzzySelectTools(tools, detected []*platform.Tool) ([]*platform.Tool, error) {
	if len(tools) == 0 {
		return nil, ErrNoTools
	}

	idxs, err := fuzzyfinder.FindMulti(
		tools,
		func(i int) string {
			label := fmt.Sprintf("%s (%s)", tools[i].DisplayName, tools[i].ID)
			if contains(detected, tools[i]) {
				label += " [detected]"
			}
			return label
		},
		fuzzyfinder.WithPromptString("agents> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return describe(tools[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	picked := make(map[int]bool, len(idxs))
	for _, i := range idxs {
		picked[i] = true
	}
	var out []*platform.Tool
	for i, t := range tools {
		if picked[i] {
			out = append(out, t)
		}
	}
	return out, nil
}

func describe(t *platform.Tool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", t.DisplayName)
	for _, c := range platform.Capabilities() {
		if p, ok := t.Provider(c); ok {
			fmt.Fprintf(&b, "%-10s %s\n", c, p.Path())
		} else {
			fmt.Fprintf(&b, "%-10s -\n", c)
		}
	}
	return b.String()
}

func contains(tools []*platform.Tool, t *platform.Tool) bool {
	for _, x := range tools {
		if x.ID == t.ID {
			return true
		}
	}
	return false
}
