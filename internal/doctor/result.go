package doctor

// Severity orders check outcomes from harmless to blocking.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	// SeverityWarning marks something a sync tolerates.
	SeverityWarning
	// SeverityError marks something that makes a sync fail.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult is what one check found.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details are check specific: "problems", "files", "paths" and
	// "missing" hold lists the text report prints under the message.
	Details map[string]any `json:"details,omitempty"`

	// Fixable is set when doctor --fix can repair the finding.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(status Severity) {
	switch status {
	case SeverityPass:
		s.Passed++
	case SeverityInfo:
		s.Info++
	case SeverityWarning:
		s.Warnings++
	case SeverityError:
		s.Errors++
	}
}

func newResult(c Check, status Severity, message string) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  message,
	}
}

// skipped is the result of a check that needs an initialized project.
func skipped(c Check) *CheckResult {
	return newResult(c, SeverityInfo, "skipped: project is not initialized")
}

// worst returns the highest severity in list, or SeverityPass.
func worst(list []Severity) Severity {
	out := SeverityPass
	for _, s := range list {
		if s > out {
			out = s
		}
	}
	return out
}
