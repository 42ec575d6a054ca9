package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrUnknownTool, ExitUser),
			want: "unknown agent",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewUserError(Wrap(ErrUnknownTool, "resolving agents"), "check --agent")
	if !Is(err, ErrUnknownTool) {
		t.Error("errors.Is() should see the sentinel through ExitError and Wrap")
	}

	var exitErr *ExitError
	if !As(err, &exitErr) {
		t.Fatal("errors.As() should find *ExitError")
	}
	if exitErr.Suggestion != "check --agent" {
		t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, "check --agent")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "explicit exit error", err: NewExitError(New("boom"), 42), want: 42},
		{name: "user error", err: NewUserError(New("bad flag"), ""), want: ExitUser},
		{name: "system error", err: NewSystemError(New("disk"), ""), want: ExitSystem},
		{name: "no targets sentinel", err: Wrap(ErrNoTargets, "sync"), want: ExitNoTargets},
		{name: "no targets helper", err: NewNoTargetsError(ErrNoTargets), want: ExitNoTargets},
		{name: "unknown tool sentinel", err: Wrapf(ErrUnknownTool, "%q", "vim"), want: ExitUser},
		{name: "not initialized", err: ErrNotInitialized, want: ExitUser},
		{name: "arbitrary error", err: New("permission denied"), want: ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	if got := Suggestion(New("plain")); got != "" {
		t.Errorf("Suggestion() = %q, want empty", got)
	}
	err := Wrap(NewConfigError(ErrInvalidConfig), "loading")
	if got := Suggestion(err); got != "Run: mush doctor" {
		t.Errorf("Suggestion() = %q, want %q", got, "Run: mush doctor")
	}
}
