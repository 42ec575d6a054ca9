package mcp

import "sort"

// Style selects the per-tool entry shape produced by Transform.
type Style struct {
	// RemoteType, when set, is stamped as "type" on remote entries
	// (Copilot uses "http").
	RemoteType string

	// OpenCode selects OpenCode's shape: {"type": "local", "command": [...],
	// "environment": {...}} and {"type": "remote", "url": ..., "headers": ...}.
	OpenCode bool
}

// Transform converts canonical descriptors into tool entries. Entries that
// are not descriptor objects are left out and their names returned in
// sorted order; the rest of the batch is still converted. The result is
// never nil so it encodes as {} when empty.
func Transform(servers Servers, style Style) (entries map[string]any, skipped []string) {
	entries = make(map[string]any, len(servers))
	for name, raw := range servers {
		server, err := Decode(raw)
		if err != nil {
			skipped = append(skipped, name)
			continue
		}
		if style.OpenCode {
			entries[name] = openCodeEntry(server)
		} else {
			entries[name] = standardEntry(server, style)
		}
	}
	sort.Strings(skipped)
	return entries, skipped
}

func standardEntry(s *Server, style Style) map[string]any {
	entry := map[string]any{}
	switch s.Kind() {
	case KindLocal:
		entry["command"] = s.Command[0]
		if len(s.Command) > 1 {
			entry["args"] = append([]string(nil), s.Command[1:]...)
		}
		if s.Env != nil {
			entry["env"] = s.RawEnv()
		}
	case KindRemote:
		if style.RemoteType != "" {
			entry["type"] = style.RemoteType
		}
		entry["url"] = s.URL
		if s.Headers != nil {
			entry["headers"] = s.RawHeaders()
		}
	}
	return entry
}

func openCodeEntry(s *Server) map[string]any {
	entry := map[string]any{}
	switch s.Kind() {
	case KindLocal:
		entry["type"] = "local"
		entry["command"] = append([]string(nil), s.Command...)
		if s.Env != nil {
			entry["environment"] = s.RawEnv()
		}
	case KindRemote:
		entry["type"] = "remote"
		entry["url"] = s.URL
		if s.Headers != nil {
			entry["headers"] = s.RawHeaders()
		}
	}
	return entry
}
