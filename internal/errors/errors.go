package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Process exit codes of the mush binary.
const (
	ExitSuccess = 0

	// ExitUser covers bad flags, bad canonical files and bad configuration.
	ExitUser = 1

	// ExitSystem covers I/O failures and anything unclassified.
	ExitSystem = 2

	// ExitNoTargets means selection, configuration and detection all came
	// up empty.
	ExitNoTargets = 3
)

// Aliases for cockroachdb/errors, the only place the module imports it.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = crdb.Is
	As    = crdb.As
	Join  = crdb.Join
)

var (
	// ErrNotInitialized means the project has no .mush directory.
	ErrNotInitialized = New("mush is not initialized in this directory")

	ErrAlreadyInitialized = New("mush is already initialized in this directory")

	// ErrUnknownTool means --agent named an id the registry lacks.
	ErrUnknownTool = New("unknown agent")

	ErrNoTargets     = New("no agents detected in this project")
	ErrInvalidConfig = New("invalid configuration")
)

// ExitError carries the exit code main returns for err, plus a hint printed
// below the message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError attaches code to err without a hint.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError marks err as the caller's mistake.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError marks err as an environment failure.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError points the user at doctor.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: mush doctor",
	}
}

func NewNoTargetsError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitNoTargets,
		Suggestion: "Run: mush install --agent <id>, or pass --agent to select tools explicitly",
	}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps err to a process exit code. ExitError codes win; known
// sentinels map to their conventional codes and anything else is a system
// failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case Is(err, ErrNoTargets):
		return ExitNoTargets
	case Is(err, ErrUnknownTool), Is(err, ErrNotInitialized),
		Is(err, ErrAlreadyInitialized), Is(err, ErrInvalidConfig):
		return ExitUser
	default:
		return ExitSystem
	}
}

// Suggestion returns the hint of the outermost ExitError in err's chain.
func Suggestion(err error) string {
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Suggestion
	}
	return ""
}
