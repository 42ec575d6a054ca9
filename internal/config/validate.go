package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"

	"github.com/thoreinstein/mush/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnknownAgent indicates an unrecognized tool identifier.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidMinVersion indicates min_version is not a semantic version.
	ErrInvalidMinVersion = errors.New("invalid min_version")

	// ErrBinaryTooOld indicates the running binary is older than min_version.
	ErrBinaryTooOld = errors.New("mush is older than min_version")
)

// Validate checks cfg against the known tool identifiers and the running
// binary version. Every problem is reported in one multierror. A binary
// version that is not semver (development builds) skips the min_version
// comparison.
func Validate(cfg *Config, knownAgents []string, binaryVersion string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var result *multierror.Error

	if cfg.Version < 1 {
		result = multierror.Append(result, ErrVersionTooLow)
	}

	for _, agent := range cfg.Agents {
		if !slices.Contains(knownAgents, strings.ToLower(strings.TrimSpace(agent))) {
			result = multierror.Append(result, &AgentError{Agent: agent, Err: ErrUnknownAgent})
		}
	}

	for field, list := range map[string][]string{
		"paths.guidelines": cfg.Paths.Guidelines,
		"paths.skills":     cfg.Paths.Skills,
		"paths.mcp":        cfg.Paths.MCP,
	} {
		for _, p := range list {
			if err := validatePath(p); err != nil {
				result = multierror.Append(result, &PathError{Field: field, Path: p, Err: err})
			}
		}
	}

	if cfg.MinVersion != "" {
		if err := checkMinVersion(cfg.MinVersion, binaryVersion); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if result != nil {
		// Map iteration above is unordered.
		slices.SortFunc(result.Errors, func(a, b error) int {
			return strings.Compare(a.Error(), b.Error())
		})
	}
	return result.ErrorOrNil()
}

func checkMinVersion(minVersion, binaryVersion string) error {
	want, err := semver.NewVersion(minVersion)
	if err != nil {
		return errors.Wrapf(ErrInvalidMinVersion, "%q", minVersion)
	}
	have, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return nil
	}
	if have.LessThan(want) {
		return errors.Wrapf(ErrBinaryTooOld, "running %s, project requires %s", have, want)
	}
	return nil
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "." || cleaned == string(filepath.Separator) {
		return ErrInvalidPath
	}
	return nil
}

// AgentError reports a configured agent that is not registered.
type AgentError struct {
	Agent string
	Err   error
}

func (e *AgentError) Error() string {
	return e.Err.Error() + ": " + e.Agent
}

func (e *AgentError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
