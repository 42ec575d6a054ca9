package mcp

import (
	"bytes"
	"encoding/json"

	"github.com/thoreinstein/mush/pkg/fileutil"
)

// ParseDocument decodes an existing tool file. Empty, invalid or non-object
// content yields an empty document; that is the recoverable case where the
// file is rewritten from scratch. Numbers keep their literal text.
func ParseDocument(data []byte) (doc map[string]any, ok bool) {
	doc = map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, true
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return doc, false
	}
	m, isObject := v.(map[string]any)
	if !isObject {
		return doc, false
	}
	return m, true
}

// MergeDocument folds freshly transformed entries into an existing tool
// document under key.
//
// When both the existing and the new entry maps are non-empty, entries are
// merged by server name: a new entry replaces the existing entry of the same
// name as a whole, and existing entries for other names are kept. Otherwise
// the new map is used as is, so an empty transform writes {}. Every other
// top-level key of existing is preserved through DeepMerge.
func MergeDocument(existing map[string]any, key string, entries map[string]any) map[string]any {
	servers := make(map[string]any, len(entries))
	for name, entry := range entries {
		servers[name] = entry
	}

	if current, ok := existing[key].(map[string]any); ok && len(current) > 0 && len(entries) > 0 {
		for name, entry := range current {
			if _, replaced := servers[name]; !replaced {
				servers[name] = entry
			}
		}
	}

	// The server subtree is resolved above; only the remaining keys go
	// through the generic merge so replaced entries never regain old fields.
	rest := make(map[string]any, len(existing))
	for k, v := range existing {
		if k != key {
			rest[k] = v
		}
	}
	return DeepMerge(rest, map[string]any{key: servers})
}

// DeepMerge returns base with overlay applied recursively: nested objects are
// merged key by key, any other overlay value (scalars, arrays, null)
// replaces the base value. Neither input is modified.
func DeepMerge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if vm, ok := v.(map[string]any); ok {
			if bm, ok := out[k].(map[string]any); ok {
				out[k] = DeepMerge(bm, vm)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Marshal encodes a tool document: two-space indent, sorted keys, literal
// slashes and a trailing newline.
func Marshal(doc map[string]any) ([]byte, error) {
	return fileutil.MarshalJSON(doc)
}
