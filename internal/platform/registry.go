package platform

import (
	"regexp"
	"strings"
	"sync"

	"github.com/thoreinstein/mush/internal/errors"
)

// Sentinel errors for registry operations.
var (
	// ErrToolAlreadyRegistered is returned when attempting to register
	// a tool with an identifier that is already in use.
	ErrToolAlreadyRegistered = errors.New("tool already registered")

	// ErrInvalidToolID is returned when attempting to register a tool with
	// an empty or malformed identifier.
	ErrInvalidToolID = errors.New("invalid tool identifier")
)

var toolIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Registry manages tool registration and lookup.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []*Tool
	byID  map[string]*Tool
}

// NewRegistry creates a registry holding tools in the given order.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a tool.
// Returns an error if:
//   - The identifier is empty or not lower-case kebab
//   - A tool with the same identifier is already registered
func (r *Registry) Register(t *Tool) error {
	if t == nil || !toolIDPattern.MatchString(t.ID) {
		return ErrInvalidToolID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; exists {
		return errors.Wrapf(ErrToolAlreadyRegistered, "%q", t.ID)
	}
	r.byID[t.ID] = t
	r.order = append(r.order, t)
	return nil
}

// Lookup returns the tool registered as id.
func (r *Registry) Lookup(id string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	return t, ok
}

// All returns every tool in registration order.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Tool(nil), r.order...)
}

// IDs returns every identifier in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.order))
	for i, t := range r.order {
		ids[i] = t.ID
	}
	return ids
}

// Resolve maps identifiers to tools. Identifiers are trimmed, lower-cased
// and deduplicated; the result is in registration order. Any unknown
// identifier fails the whole call with ErrUnknownTool.
func (r *Registry) Resolve(ids []string) ([]*Tool, error) {
	want := make(map[string]bool, len(ids))
	var unknown []string
	for _, raw := range ids {
		id := strings.ToLower(strings.TrimSpace(raw))
		if id == "" {
			continue
		}
		if _, ok := r.Lookup(id); !ok {
			unknown = append(unknown, raw)
			continue
		}
		want[id] = true
	}
	if len(unknown) > 0 {
		return nil, errors.Wrapf(errors.ErrUnknownTool, "%s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(r.IDs(), ", "))
	}

	var tools []*Tool
	for _, t := range r.All() {
		if want[t.ID] {
			tools = append(tools, t)
		}
	}
	return tools, nil
}

// Detect returns, in registration order, the tools with at least one marker
// present under root.
func (r *Registry) Detect(root string) []*Tool {
	var tools []*Tool
	for _, t := range r.All() {
		if len(t.Detect(root)) > 0 {
			tools = append(tools, t)
		}
	}
	return tools
}
