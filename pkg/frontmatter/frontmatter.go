package frontmatter

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/mush/internal/errors"
)

// ErrInvalidHeader is returned when a delimited header is not a YAML map.
var ErrInvalidHeader = errors.New("invalid frontmatter header")

// headerPattern matches a leading "---" block. (?s) lets the lazy header
// capture span lines; the body takes everything after the closing line.
var headerPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n(.*)\z`)

// Fields is the result of Extract.
type Fields struct {
	// Name is the header name, or the fallback when absent or unusable.
	Name string
	// Description is the header description, or empty.
	Description string
	// Body is the trimmed content after the header.
	Body string
}

// Split separates a leading header block from the body. ok is false when the
// content has no delimited header, in which case body is the whole input.
func Split(content string) (header, body string, ok bool) {
	m := headerPattern.FindStringSubmatch(content)
	if m == nil {
		return "", content, false
	}
	return m[1], m[2], true
}

// Extract parses content into Fields. The returned Fields are always usable:
// when the header YAML is invalid the fallback name is kept, the body is
// still the post-header remainder and a wrapped ErrInvalidHeader is returned
// so callers can report it.
func Extract(content, fallbackName string) (Fields, error) {
	f := Fields{Name: fallbackName}

	header, body, ok := Split(content)
	f.Body = strings.TrimSpace(body)
	if !ok {
		return f, nil
	}

	var matter map[string]any
	if err := yaml.Unmarshal([]byte(header), &matter); err != nil {
		return f, errors.Wrapf(ErrInvalidHeader, "%v", err)
	}

	if name, ok := scalarString(matter["name"]); ok {
		f.Name = name
	}
	if desc, ok := scalarString(matter["description"]); ok {
		f.Description = desc
	}

	return f, nil
}

// scalarString renders string and numeric YAML values. Everything else
// (maps, lists, booleans, null) is rejected.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Format formats content with YAML frontmatter.
// The matter value is serialized to YAML and wrapped in "---" delimiters,
// followed by a blank line and the body.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
