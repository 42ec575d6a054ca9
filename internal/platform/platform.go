package platform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thoreinstein/mush/internal/content"
)

// Capability is one kind of projected content.
type Capability int

const (
	Guidelines Capability = iota
	Skills
	MCP
	Agents
	Commands
)

// Capabilities lists every capability in write order.
func Capabilities() []Capability {
	return []Capability{Guidelines, Skills, MCP, Agents, Commands}
}

func (c Capability) String() string {
	switch c {
	case Guidelines:
		return "guidelines"
	case Skills:
		return "skills"
	case MCP:
		return "mcp"
	case Agents:
		return "agents"
	case Commands:
		return "commands"
	default:
		return "unknown"
	}
}

// Sink is where providers read existing files and write generated ones.
// Paths are slash-separated and relative to the project root, or absolute.
type Sink interface {
	// ReadFile returns the current content of path. found is false when
	// the file does not exist.
	ReadFile(path string) (data []byte, found bool, err error)

	// WriteFile replaces path with data, creating parent directories.
	WriteFile(path string, data []byte) error
}

// Provider projects one capability of one tool.
type Provider interface {
	// Path is the file or directory (with a trailing slash) the provider
	// owns, relative to the project root.
	Path() string

	// Write renders src and writes the result through sink.
	Write(ctx context.Context, sink Sink, src *content.Sources) error
}

// Tool is the static description of one supported assistant.
type Tool struct {
	// ID is the identifier used on the command line and in mush.yaml.
	ID string

	// DisplayName is shown to users.
	DisplayName string

	// Markers are project-relative files or directories whose presence
	// means the tool is in use.
	Markers []string

	providers map[Capability]Provider
}

// NewTool returns a tool supporting exactly the capabilities in providers.
// Nil providers are dropped.
func NewTool(id, displayName string, markers []string, providers map[Capability]Provider) *Tool {
	t := &Tool{
		ID:          id,
		DisplayName: displayName,
		Markers:     markers,
		providers:   make(map[Capability]Provider, len(providers)),
	}
	for c, p := range providers {
		if p != nil {
			t.providers[c] = p
		}
	}
	return t
}

// Provider returns the provider for c, or false when the tool does not
// support it.
func (t *Tool) Provider(c Capability) (Provider, bool) {
	p, ok := t.providers[c]
	return p, ok
}

// Supports reports whether the tool has a provider for c.
func (t *Tool) Supports(c Capability) bool {
	_, ok := t.providers[c]
	return ok
}

// Capabilities returns the supported capabilities in write order.
func (t *Tool) Capabilities() []Capability {
	var caps []Capability
	for _, c := range Capabilities() {
		if t.Supports(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// Paths returns the paths owned by the tool's providers, in write order.
// Tools sharing a file (AGENTS.md) report it each.
func (t *Tool) Paths() []string {
	var out []string
	for _, c := range t.Capabilities() {
		out = append(out, t.providers[c].Path())
	}
	return out
}

// Detect returns the markers of t present under root.
func (t *Tool) Detect(root string) []string {
	var found []string
	for _, m := range t.Markers {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(m))); err == nil {
			found = append(found, m)
		}
	}
	return found
}
