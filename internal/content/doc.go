// Package content compiles the canonical sources under .mush/ into records.
//
// Guidelines, skills, agents and commands are discovered from their source
// directories, parsed with pkg/frontmatter and returned sorted by key so
// every downstream rendering is deterministic. A file that is empty, or
// whose header cannot be parsed, never aborts a compilation: it is logged
// and either skipped or compiled with fallback metadata.
package content
