package validator

import (
	"bytes"
	_ "embed"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/thoreinstein/mush/internal/errors"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/pkg/fileutil"
)

//go:embed schema/mcp.schema.json
var schemaBytes []byte

const schemaName = "mcp.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = errors.Wrap(err, "unmarshaling schema JSON")
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaName, doc); err != nil {
			compileErr = errors.Wrap(err, "adding schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile(schemaName)
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "compiling schema")
		}
	})
	return compiledSchema, compileErr
}

// ValidateFile validates a canonical MCP file. A missing file has no issues.
func ValidateFile(path string) ([]*Issue, error) {
	data, found, err := fileutil.ReadOptional(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return Validate(data)
}

// Validate runs schema and semantic checks on the content of an MCP file.
// The error return is reserved for schema compilation failures.
func Validate(data []byte) ([]*Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []*Issue{{
			Message:  err.Error(),
			Severity: SeverityError,
			Err:      ErrInvalidJSON,
		}}, nil
	}

	var issues []*Issue
	if verr := schema.Validate(inst); verr != nil {
		var ve *jsonschema.ValidationError
		if errors.As(verr, &ve) {
			issues = append(issues, schemaIssues(ve)...)
		} else {
			return nil, errors.Wrap(verr, "validating against schema")
		}
	}

	doc, ok := mcp.ParseDocument(data)
	if !ok {
		issues = append(issues, &Issue{Message: "root is not an object", Severity: SeverityError, Err: ErrSchema})
		return issues, nil
	}
	if servers, ok := doc["servers"].(map[string]any); ok {
		issues = append(issues, semanticIssues(servers)...)
	}
	return issues, nil
}

// schemaIssues flattens the validation error tree into leaf issues.
func schemaIssues(ve *jsonschema.ValidationError) []*Issue {
	var issues []*Issue
	seen := map[string]bool{}

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}

		keyword := ""
		msg := e.Error()
		if e.ErrorKind != nil {
			if kw := e.ErrorKind.KeywordPath(); len(kw) > 0 {
				keyword = kw[len(kw)-1]
			}
			msg = e.ErrorKind.LocalizedString(printer)
		}
		if keyword == "allOf" || keyword == "$ref" {
			return
		}

		field := "/" + strings.Join(e.InstanceLocation, "/")
		server := ""
		if len(e.InstanceLocation) >= 2 && e.InstanceLocation[0] == "servers" {
			server = e.InstanceLocation[1]
		}

		key := field + "|" + msg
		if seen[key] {
			return
		}
		seen[key] = true
		issues = append(issues, &Issue{
			Server:   server,
			Field:    field,
			Message:  msg,
			Severity: SeverityError,
			Err:      ErrSchema,
		})
	}
	walk(ve)
	return issues
}

// semanticIssues checks what the schema cannot express.
func semanticIssues(servers map[string]any) []*Issue {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []*Issue
	for _, name := range names {
		raw := servers[name]
		if _, ok := raw.(map[string]any); !ok {
			issues = append(issues, &Issue{
				Server:   name,
				Message:  "descriptor is not an object and will be skipped",
				Severity: SeverityError,
				Err:      ErrNotAnObject,
			})
			continue
		}

		server, err := mcp.Decode(raw)
		if err != nil {
			issues = append(issues, &Issue{
				Server:   name,
				Message:  err.Error() + "; it will be skipped",
				Severity: SeverityError,
				Err:      mcp.ErrInvalidDescriptor,
			})
			continue
		}
		issues = append(issues, serverIssues(name, server)...)
	}
	return issues
}

func serverIssues(name string, s *mcp.Server) []*Issue {
	var issues []*Issue

	switch s.Kind() {
	case mcp.KindEmpty:
		issues = append(issues, &Issue{
			Server:   name,
			Field:    "command/url",
			Message:  "server has neither command nor url and will be written as an empty entry",
			Severity: SeverityWarning,
		})
	case mcp.KindLocal:
		if s.URL != "" {
			issues = append(issues, &Issue{
				Server:   name,
				Message:  "server has both command and url; command takes precedence",
				Severity: SeverityWarning,
			})
		}
		if len(s.Headers) > 0 {
			issues = append(issues, &Issue{
				Server:   name,
				Field:    "headers",
				Message:  "headers are ignored for local servers",
				Severity: SeverityWarning,
			})
		}
	case mcp.KindRemote:
		if u, err := url.Parse(s.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			issues = append(issues, &Issue{
				Server:   name,
				Field:    "url",
				Message:  "url should be an absolute http(s) URL",
				Severity: SeverityWarning,
			})
		}
		if len(s.Env) > 0 {
			issues = append(issues, &Issue{
				Server:   name,
				Field:    "env",
				Message:  "env is ignored for remote servers",
				Severity: SeverityWarning,
			})
		}
	}

	if _, ok := s.Env[""]; ok {
		issues = append(issues, &Issue{Server: name, Field: "env", Message: "empty key", Severity: SeverityError, Err: ErrEmptyEnvKey})
	}
	if _, ok := s.Headers[""]; ok {
		issues = append(issues, &Issue{Server: name, Field: "headers", Message: "empty key", Severity: SeverityError, Err: ErrEmptyHeaderKey})
	}
	return issues
}
