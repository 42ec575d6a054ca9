// Package errors provides error handling conventions for the mush CLI.
//
// This package re-exports the constructors of github.com/cockroachdb/errors,
// defines sentinel errors for common failure conditions, an ExitError type
// for CLI exit code handling, and exit code constants.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotInitialized) {
//	    // suggest running mush install
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//   - ExitNoTargets (3): No target tool was selected or detected
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. [ExitCode] resolves the code for any error chain:
//
//	err := errors.NewUserError(errors.ErrUnknownTool, "Run: mush status")
//	os.Exit(errors.ExitCode(err))
package errors
