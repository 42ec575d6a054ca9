package mcp

import (
	"maps"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/thoreinstein/mush/internal/errors"
)

// Servers maps server names to raw descriptors as read from JSON.
type Servers map[string]any

// Kind classifies a decoded descriptor.
type Kind int

const (
	// KindEmpty is a descriptor with neither a command nor a URL.
	KindEmpty Kind = iota
	// KindLocal is a process started from a command line.
	KindLocal
	// KindRemote is a server reached over HTTP.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "empty"
	}
}

// ErrInvalidDescriptor is returned by Decode for values that are not a
// descriptor object or whose fields have the wrong types.
var ErrInvalidDescriptor = errors.New("invalid MCP server descriptor")

// Server is the typed view of one descriptor.
type Server struct {
	// Command is the executable followed by its arguments. A scalar string
	// command decodes to a one-element slice.
	Command []string `mapstructure:"command"`

	// Env is passed to local servers. Values are stringified for
	// inspection; writers emit the declared values through RawEnv.
	Env map[string]string `mapstructure:"env"`

	// URL is the endpoint of a remote server.
	URL string `mapstructure:"url"`

	// Headers are sent to remote servers.
	Headers map[string]string `mapstructure:"headers"`

	// Extra keeps every other key of the descriptor.
	Extra map[string]any `mapstructure:",remain"`

	rawEnv     map[string]any
	rawHeaders map[string]any
}

// RawEnv returns the env object exactly as declared, or nil when absent.
func (s *Server) RawEnv() map[string]any { return maps.Clone(s.rawEnv) }

// RawHeaders returns the headers object exactly as declared, or nil when
// absent.
func (s *Server) RawHeaders() map[string]any { return maps.Clone(s.rawHeaders) }

// Kind reports which shape the descriptor has. A command wins over a URL.
func (s *Server) Kind() Kind {
	switch {
	case len(s.Command) > 0:
		return KindLocal
	case s.URL != "":
		return KindRemote
	default:
		return KindEmpty
	}
}

// Decode types a raw descriptor. Scalars are weakly converted so numeric env
// values can be inspected as strings; RawEnv and RawHeaders keep the
// original values. Non-object values and fields that cannot be
// converted (an object as a command, a list as a URL) yield
// ErrInvalidDescriptor.
func Decode(raw any) (*Server, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDescriptor, "expected an object, got %T", raw)
	}

	var s Server
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(stringToSliceHook),
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating descriptor decoder")
	}
	if err := dec.Decode(m); err != nil {
		return nil, errors.Wrapf(ErrInvalidDescriptor, "%v", err)
	}
	s.rawEnv = declared(m["env"], s.Env)
	s.rawHeaders = declared(m["headers"], s.Headers)
	return &s, nil
}

// declared returns the raw object behind a decoded string map. Objects that
// did not come from JSON fall back to the decoded strings.
func declared(raw any, decoded map[string]string) map[string]any {
	if decoded == nil {
		return nil
	}
	if m, ok := raw.(map[string]any); ok {
		return m
	}
	out := make(map[string]any, len(decoded))
	for k, v := range decoded {
		out[k] = v
	}
	return out
}

// stringToSliceHook lets "command" be written either as one string or as
// an array of strings.
func stringToSliceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String {
		s, _ := data.(string)
		if s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
	return data, nil
}
