package doctor

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/thoreinstein/mush/internal/logging"
	"github.com/thoreinstein/mush/internal/mcp"
	"github.com/thoreinstein/mush/internal/paths"
)

// envReference matches values that defer to the environment instead of
// embedding a secret: ${VAR}, $VAR, {env:VAR} and "Bearer ${VAR}".
var envReference = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|^\$[A-Za-z_][A-Za-z0-9_]*$|\{env:[A-Za-z_][A-Za-z0-9_]*\}`)

// IsSecret reports whether value under key looks like an embedded credential.
// Environment references are never secrets.
func IsSecret(key, value string) bool {
	if value == "" || envReference.MatchString(value) {
		return false
	}
	return logging.ShouldMask(key) || containsToken(value)
}

// containsToken reports whether any word of value carries a known credential
// prefix, so "Bearer ghp_..." and "token=... sk-..." are both caught.
func containsToken(value string) bool {
	if logging.LooksLikeToken(value) {
		return true
	}
	for _, field := range strings.Fields(value) {
		if logging.LooksLikeToken(field) {
			return true
		}
	}
	return false
}

// MaskURL redacts credentials from URLs.
// URLs with embedded credentials (user:pass@host) become (user:****@host).
// If the URL cannot be parsed, it is returned unchanged.
func MaskURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, hasPassword := parsed.User.Password()
	if !hasPassword || password == "" {
		return rawURL
	}

	parsed.User = url.UserPassword(parsed.User.Username(), logging.MaskValue(password))
	return parsed.String()
}

// SecretsCheck looks for literal credentials in the tracked mcp.json. They
// belong in the untracked mcp.override.json or behind environment references.
type SecretsCheck struct {
	env *Env
}

var _ Check = (*SecretsCheck)(nil)

// NewSecretsCheck creates a new embedded secrets check.
func NewSecretsCheck(env *Env) *SecretsCheck {
	return &SecretsCheck{env: env}
}

func (c *SecretsCheck) Name() string     { return "mcp-secrets" }
func (c *SecretsCheck) Category() string { return "mcp" }

func (c *SecretsCheck) Run(ctx context.Context) *CheckResult {
	layout := c.env.Layout
	if !layout.Initialized() {
		return skipped(c)
	}

	servers, err := mcp.ReadServers(ctx, layout.MCP())
	if err != nil {
		r := newResult(c, SeverityError, "cannot read "+layout.Rel(layout.MCP()))
		r.Details = map[string]any{"error": err.Error()}
		return r
	}

	found := map[string]any{}
	for _, name := range servers.Names() {
		s, err := mcp.Decode(servers[name])
		if err != nil {
			// Reported by the schema check.
			continue
		}
		if leaks := serverSecrets(s); len(leaks) > 0 {
			found[name] = leaks
		}
	}

	if len(found) == 0 {
		return newResult(c, SeverityPass, "no literal credentials in "+layout.Rel(layout.MCP()))
	}

	r := newResult(c, SeverityWarning, fmt.Sprintf("%d server(s) embed credentials in %s", len(found), layout.Rel(layout.MCP())))
	r.Details = map[string]any{"servers": found}
	r.FixHint = "move them to " + paths.CanonicalDir + "/" + paths.MCPOverrideFile + " or reference environment variables"
	return r
}

// serverSecrets returns the masked credentials embedded in s.
func serverSecrets(s *mcp.Server) map[string]string {
	leaks := map[string]string{}
	for k, v := range s.Env {
		if IsSecret(k, v) {
			leaks["env."+k] = logging.MaskValue(v)
		}
	}
	for k, v := range s.Headers {
		if IsSecret(k, v) {
			leaks["headers."+k] = logging.MaskValue(v)
		}
	}
	if masked := MaskURL(s.URL); masked != s.URL {
		leaks["url"] = masked
	}
	return leaks
}
