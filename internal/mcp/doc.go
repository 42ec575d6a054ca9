// Package mcp reads canonical MCP server declarations and projects them into
// the JSON shapes the supported tools expect.
//
// Canonical declarations live in .mush/mcp.json and an optional, untracked
// .mush/mcp.override.json, both shaped {"servers": {...}}. Each server is a
// loosely typed descriptor:
//
//	{"command": ["npx", "-y", "server-github"], "env": {"TOKEN": "..."}}
//	{"url": "https://example.com/mcp", "headers": {"Authorization": "..."}}
//
// [Load] merges the two files with per-server replacement. [Transform] turns
// descriptors into a tool's entry shape according to a [Style], and
// [MergeDocument] folds the result into whatever the tool's file already
// contains without dropping unrelated settings.
package mcp
