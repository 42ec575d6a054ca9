package content

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/paths"
	"github.com/thoreinstein/mush/pkg/fileutil"
	"github.com/thoreinstein/mush/pkg/frontmatter"
)

// Record is one compiled source file.
type Record struct {
	// Key identifies the record: the file name for guidelines, the
	// directory name for skills, the file stem for agents and commands.
	Key string

	// Name is the header name, defaulting to Key.
	Name string

	// Description is the header description, possibly empty.
	Description string

	// Body is the trimmed content after the header.
	Body string
}

// Discovery patterns, relative to each source directory.
const (
	markdownPattern = "*.md"
	skillPattern    = "*/" + paths.SkillFileName
)

// Compiler turns source directories into sorted record lists.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler returns a Compiler that reports skipped files to logger.
func NewCompiler(logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Compiler{logger: logger}
}

// Guidelines compiles the flat *.md files of dir, keyed by file name.
func (c *Compiler) Guidelines(dir string) ([]Record, error) {
	return c.compile(dir, markdownPattern, path.Base)
}

// Skills compiles dir/<name>/SKILL.md, keyed by the skill directory name.
func (c *Compiler) Skills(dir string) ([]Record, error) {
	return c.compile(dir, skillPattern, path.Dir)
}

// Agents compiles the flat *.md files of dir, keyed by file stem.
func (c *Compiler) Agents(dir string) ([]Record, error) {
	return c.compile(dir, markdownPattern, stem)
}

// Commands compiles the flat *.md files of dir, keyed by file stem.
func (c *Compiler) Commands(dir string) ([]Record, error) {
	return c.compile(dir, markdownPattern, stem)
}

func (c *Compiler) compile(dir, pattern string, keyOf func(match string) string) ([]Record, error) {
	if !fileutil.IsDir(dir) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "discovering %s in %s", pattern, dir)
	}

	records := make([]Record, 0, len(matches))
	for _, match := range matches {
		key := keyOf(match)
		file := filepath.Join(dir, filepath.FromSlash(match))

		data, err := fileutil.ReadFileWithLimit(file)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", file)
		}
		if strings.TrimSpace(string(data)) == "" {
			c.logger.Debug("skipping empty source file", "path", file)
			continue
		}

		fields, err := frontmatter.Extract(string(data), key)
		if err != nil {
			c.logger.Warn("ignoring unparsable frontmatter", "path", file, "error", err)
		}
		records = append(records, Record{
			Key:         key,
			Name:        fields.Name,
			Description: fields.Description,
			Body:        fields.Body,
		})
	}

	slices.SortFunc(records, func(a, b Record) int {
		return strings.Compare(a.Key, b.Key)
	})
	return records, nil
}

func stem(match string) string {
	base := path.Base(match)
	return strings.TrimSuffix(base, path.Ext(base))
}
