package mcp

import (
	"context"
	"maps"
	"slices"

	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/pkg/fileutil"
)

// File is the shape of mcp.json and mcp.override.json.
type File struct {
	Servers Servers `json:"servers"`
}

// ReadServers returns the "servers" object of a canonical MCP file. A missing
// file, invalid JSON, a non-object root or a non-object "servers" value all
// yield an empty map; only I/O failures other than absence are returned.
func ReadServers(ctx context.Context, path string) (Servers, error) {
	data, found, err := fileutil.ReadOptional(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return Servers{}, nil
	}
	return parseServers(ctx, path, data), nil
}

func parseServers(ctx context.Context, path string, data []byte) Servers {
	logger := logging.FromContext(ctx)

	doc, ok := ParseDocument(data)
	if !ok {
		logger.Warn("ignoring MCP file that is not a JSON object", "path", path)
		return Servers{}
	}

	raw, present := doc["servers"]
	if !present {
		return Servers{}
	}
	servers, ok := raw.(map[string]any)
	if !ok {
		logger.Warn("ignoring \"servers\" that is not an object", "path", path)
		return Servers{}
	}
	return Servers(servers)
}

// Load reads the base and override files and merges them. An override entry
// replaces the base entry of the same name entirely, so fields can be
// dropped by omitting them. Names present on only one side are kept.
func Load(ctx context.Context, basePath, overridePath string) (Servers, error) {
	base, err := ReadServers(ctx, basePath)
	if err != nil {
		return nil, err
	}
	override, err := ReadServers(ctx, overridePath)
	if err != nil {
		return nil, err
	}

	merged := make(Servers, len(base)+len(override))
	maps.Copy(merged, base)
	maps.Copy(merged, override)
	return merged, nil
}

// Template returns the content of a fresh mcp.json.
func Template() ([]byte, error) {
	return fileutil.MarshalJSON(File{Servers: Servers{}})
}

// Names returns the server names of s in sorted order.
func (s Servers) Names() []string {
	return slices.Sorted(maps.Keys(s))
}
