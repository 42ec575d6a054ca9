package platform

import (
	"context"
	"path"
	"strings"

	"github.com/thoreinstein/mush/internal/content"
	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/paths"
)

// GuidelinesFile writes the guideline document to a single file.
type GuidelinesFile struct {
	File string

	// Wrap, when set, transforms the document before it is written.
	Wrap func(string) string
}

func (g GuidelinesFile) Path() string { return g.File }

func (g GuidelinesFile) Write(_ context.Context, sink Sink, src *content.Sources) error {
	text := src.GuidelineText
	if g.Wrap != nil {
		text = g.Wrap(text)
	}
	return sink.WriteFile(g.File, []byte(text))
}

// SkillTree writes Dir/<skill>/SKILL.md for every skill.
type SkillTree struct {
	Dir string
}

func (s SkillTree) Path() string { return s.Dir }

func (s SkillTree) Write(_ context.Context, sink Sink, src *content.Sources) error {
	for _, r := range src.Skills {
		file := path.Join(s.Dir, r.Key, paths.SkillFileName)
		if err := sink.WriteFile(file, SkillFile(r)); err != nil {
			return err
		}
	}
	return nil
}

// RecordFiles writes one flat file per agent or command record.
type RecordFiles struct {
	Dir string

	// Suffix is appended to the record key to form the file name.
	Suffix string

	// Select picks the records from the compiled sources.
	Select func(*content.Sources) []content.Record

	Render func(content.Record) ([]byte, error)
}

func (f RecordFiles) Path() string { return f.Dir }

func (f RecordFiles) Write(_ context.Context, sink Sink, src *content.Sources) error {
	for _, r := range f.Select(src) {
		data, err := f.Render(r)
		if err != nil {
			return errors.Wrapf(err, "rendering %s", r.Key)
		}
		if err := sink.WriteFile(path.Join(f.Dir, r.Key+f.Suffix), data); err != nil {
			return err
		}
	}
	return nil
}

// AgentRecords selects the compiled agents.
func AgentRecords(src *content.Sources) []content.Record { return src.Agents }

// CommandRecords selects the compiled commands.
func CommandRecords(src *content.Sources) []content.Record { return src.Commands }

// MCPFile merges the transformed servers into a JSON document under Key.
type MCPFile struct {
	File  string
	Key   string
	Style mcp.Style
}

func (m MCPFile) Path() string { return m.File }

func (m MCPFile) Write(ctx context.Context, sink Sink, src *content.Sources) error {
	logger := logging.FromContext(ctx)

	entries, skipped := mcp.Transform(src.Servers, m.Style)
	for _, name := range skipped {
		logger.Warn("skipping invalid MCP server", "server", name, "path", m.File)
	}

	existing, found, err := sink.ReadFile(m.File)
	if err != nil {
		return err
	}
	doc := map[string]any{}
	if found {
		var ok bool
		if doc, ok = mcp.ParseDocument(existing); !ok {
			logger.Warn("existing file is not a JSON object; rewriting", "path", m.File)
		}
	}

	data, err := mcp.Marshal(mcp.MergeDocument(doc, m.Key, entries))
	if err != nil {
		return errors.Wrapf(err, "encoding %s", m.File)
	}
	return sink.WriteFile(m.File, data)
}

// Markdown renders a record file: the header lines between "---"
// delimiters, a blank line and the body.
func Markdown(header []string, body string) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	for _, line := range header {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	b.WriteString(body)
	return []byte(b.String())
}

// SkillFile renders SKILL.md: name, then description when present.
func SkillFile(r content.Record) []byte {
	return Markdown(NameDescription(r), r.Body)
}

// NameDescription is the header used by most tools for skills and agents.
func NameDescription(r content.Record) []string {
	header := []string{"name: " + r.Name}
	if r.Description != "" {
		header = append(header, "description: "+r.Description)
	}
	return header
}

// OptionalDescription is the header used by most tools for commands.
func OptionalDescription(r content.Record) []string {
	if r.Description == "" {
		return nil
	}
	return []string{"description: " + r.Description}
}
