// Package logging provides structured logging for the mush CLI using slog.
//
// Two output formats are supported: a compact, colourised text format meant
// for terminals and JSON for machines. Attribute values that look like
// credentials (MCP env tokens, authorization headers) are masked before they
// reach any text output.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(1),
//		Format: logging.FormatText,
//	})
//	logger.Info("synced", "tool", "claude")
//
// Tests should use [ForTest] so output only appears for failing tests.
package logging
