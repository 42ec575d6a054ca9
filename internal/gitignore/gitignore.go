// Package gitignore maintains the block of generated paths mush owns inside a
// project's .gitignore.
//
// The block is delimited by BeginMarker and EndMarker. Older releases wrote a
// single header line with no end marker; such a section spans the header and
// the non-blank lines after it, and is closed with EndMarker the next time a
// path is added. Lines outside the block are never touched.
package gitignore

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/mush/internal/errors"
)

const (
	BeginMarker = "# mush:begin generated files"
	EndMarker   = "# mush:end generated files"
)

// legacyHeaders open a section that has no end marker.
var legacyHeaders = []string{
	"# Mush generated files",
	"# Fusion generated files",
}

// Store is the file access UpdateFile needs.
type Store interface {
	ReadFile(path string) (data []byte, found bool, err error)
	WriteFile(path string, data []byte) error
}

// Normalize turns a generated path into a root-anchored ignore rule. The
// working directory prefix is removed, then any leading "/" and "./", and a
// single "/" is prepended. A trailing slash is kept.
func Normalize(workDir, p string) string {
	p = filepath.ToSlash(p)
	if workDir != "" {
		wd := strings.TrimRight(filepath.ToSlash(workDir), "/") + "/"
		if strings.HasPrefix(p, wd) {
			p = p[len(wd):]
		}
	}
	for {
		trimmed := strings.TrimPrefix(strings.TrimLeft(p, "/"), "./")
		if trimmed == p {
			break
		}
		p = trimmed
	}
	return "/" + p
}

// Entries returns the rules of content: every non-empty line that is not a
// comment, trimmed.
func Entries(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Covered reports whether candidate is already ignored by one of entries,
// either exactly (with or without the leading slash) or because it lies
// under an ignored directory.
func Covered(entries []string, candidate string) bool {
	bare := strings.TrimPrefix(candidate, "/")
	candDir := strings.TrimRight(candidate, "/") + "/"
	for _, e := range entries {
		if e == candidate || e == bare {
			return true
		}
		entryDir := strings.TrimRight(e, "/") + "/"
		if strings.HasPrefix(candDir, entryDir) || strings.HasPrefix(candDir, "/"+strings.TrimLeft(entryDir, "/")) {
			return true
		}
	}
	return false
}

// Update returns content with every uncovered candidate added to the managed
// block, and the candidates that were added. Candidates must already be
// normalized. When nothing is added the content is returned unchanged.
func Update(content string, candidates []string) (string, []string) {
	entries := Entries(content)
	var added []string
	for _, c := range candidates {
		if c == "" || Covered(entries, c) {
			continue
		}
		added = append(added, c)
		entries = append(entries, c)
	}
	if len(added) == 0 {
		return content, nil
	}

	lines := strings.Split(content, "\n")
	start := findStart(lines)
	if start < 0 {
		return appendBlock(content, added), added
	}

	if end := findEnd(lines, start); end >= 0 {
		return join(lines[:end], added, lines[end:]), added
	}

	// Open section: the header plus the run of non-blank lines after it.
	end := start + 1
	for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
		end++
	}
	insert := append(append([]string(nil), added...), EndMarker)
	rest := lines[end:]
	if len(rest) == 0 {
		// The section ran to EOF without a trailing newline.
		rest = []string{""}
	}
	return join(lines[:end], insert, rest), added
}

func findStart(lines []string) int {
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == BeginMarker {
			return i
		}
		for _, h := range legacyHeaders {
			if line == h {
				return i
			}
		}
	}
	return -1
}

func findEnd(lines []string, start int) int {
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == EndMarker {
			return i
		}
	}
	return -1
}

func join(before, middle, after []string) string {
	out := make([]string, 0, len(before)+len(middle)+len(after))
	out = append(out, before...)
	out = append(out, middle...)
	out = append(out, after...)
	return strings.Join(out, "\n")
}

func appendBlock(content string, paths []string) string {
	var b strings.Builder
	if trimmed := strings.TrimRight(content, "\n"); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	b.WriteString(BeginMarker)
	b.WriteString("\n")
	for _, p := range paths {
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString(EndMarker)
	b.WriteString("\n")
	return b.String()
}

// UpdateFile normalizes paths against workDir and adds the uncovered ones to
// the ignore file at name. Nothing is written, and no file is created, when
// every path is already covered.
func UpdateFile(store Store, name, workDir string, paths []string) ([]string, error) {
	data, _, err := store.ReadFile(name)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(paths))
	for _, p := range paths {
		candidates = append(candidates, Normalize(workDir, p))
	}

	updated, added := Update(string(data), candidates)
	if len(added) == 0 {
		return nil, nil
	}
	if err := store.WriteFile(name, []byte(updated)); err != nil {
		return nil, errors.Wrapf(err, "updating %s", name)
	}
	return added, nil
}
