// Package validator checks canonical MCP declaration files against a JSON
// Schema and against the rules the projection relies on.
package validator

import (
	"fmt"

	"github.com/thoreinstein/mush/internal/errors"
)

// Sentinel errors for validation failures.
var (
	// ErrInvalidJSON indicates the file is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrSchema indicates a JSON Schema violation.
	ErrSchema = errors.New("schema violation")

	// ErrNotAnObject indicates a server descriptor that is not an object.
	ErrNotAnObject = errors.New("server descriptor is not an object")

	// ErrEmptyEnvKey indicates an environment variable has an empty key.
	ErrEmptyEnvKey = errors.New("environment variable key is empty")

	// ErrEmptyHeaderKey indicates an HTTP header has an empty key.
	ErrEmptyHeaderKey = errors.New("header key is empty")
)

// Severity indicates whether a validation issue is an error or warning.
type Severity int

const (
	// SeverityError marks an issue that makes the server unusable: it will be
	// skipped during projection.
	SeverityError Severity = iota

	// SeverityWarning marks a server that will be projected, possibly not
	// the way the author intended.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is one validation finding.
type Issue struct {
	// Server is the affected server name, empty for file-level issues.
	Server string
	// Field is the JSON pointer or field name at fault, if known.
	Field string
	// Message describes the problem.
	Message string
	// Severity separates errors from warnings.
	Severity Severity
	// Err is the sentinel, if any.
	Err error
}

func (i *Issue) Error() string {
	switch {
	case i.Server != "" && i.Field != "":
		return fmt.Sprintf("%s: server %q field %q: %s", i.Severity, i.Server, i.Field, i.Message)
	case i.Server != "":
		return fmt.Sprintf("%s: server %q: %s", i.Severity, i.Server, i.Message)
	case i.Field != "":
		return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
	default:
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
}

// Unwrap returns the underlying sentinel error.
func (i *Issue) Unwrap() error {
	return i.Err
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []*Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
