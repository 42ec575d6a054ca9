package logging

import (
	"log/slog"
	"strings"
)

// secretKeyPatterns are substrings that mark an attribute key as sensitive.
// Matching is case-insensitive.
var secretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTHORIZATION",
	"CREDENTIAL",
	"API_KEY",
	"APIKEY",
	"PRIVATE",
}

// tokenPrefixes are value prefixes of well-known API credentials.
var tokenPrefixes = []string{
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_",
	"sk-", "AKIA",
	"xoxb-", "xoxp-", "xoxa-", "xoxr-",
	"Bearer ",
}

// ShouldMask reports whether key names a value that must not be logged.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// LooksLikeToken reports whether value starts with a known credential prefix.
func LooksLikeToken(value string) bool {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// MaskValue hides all but the last four characters of value.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskMap returns a copy of m with sensitive entries masked. It is meant for
// MCP env and headers maps before they are printed or logged.
func MaskMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if ShouldMask(k) || LooksLikeToken(v) {
			out[k] = MaskValue(v)
			continue
		}
		out[k] = v
	}
	return out
}

// redactAttr is a slog ReplaceAttr hook that masks sensitive string values.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString && a.Value.Kind() != slog.KindAny {
		return a
	}
	if ShouldMask(a.Key) {
		return slog.String(a.Key, MaskValue(a.Value.String()))
	}
	switch v := a.Value.Any().(type) {
	case string:
		if LooksLikeToken(v) {
			return slog.String(a.Key, MaskValue(v))
		}
	case map[string]string:
		return slog.Any(a.Key, MaskMap(v))
	}
	return a
}
