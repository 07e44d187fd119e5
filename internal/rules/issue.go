package rules

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Penalty is the fixed score deduction applied per issue of this severity.
func (s Severity) Penalty() int {
	switch s {
	case SeverityCritical:
		return 30
	case SeverityHigh:
		return 20
	case SeverityMedium:
		return 10
	case SeverityLow:
		return 5
	default:
		return 0
	}
}

// Rank orders severities for bucketed summaries (critical first).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// Auto-fix dispatch kinds. Only issues carrying a kind the governor knows
// how to remediate are marked AutoFixable.
const (
	KindObsoleteFile      = "obsolete-file"
	KindMissingArchiveDir = "missing-archive-dir"
	KindMissingScaffold   = "missing-scaffold-doc"
)

// Issue is a single validator finding. Immutable once created.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Message     string   `json:"message"`
	File        string   `json:"file,omitempty"`
	AutoFixable bool     `json:"autoFixable"`
	// Kind tags fixable issues for auto-fix dispatch.
	Kind string `json:"kind,omitempty"`
}

func NewIssue(category string, severity Severity, message string) Issue {
	return Issue{Severity: severity, Category: category, Message: message}
}

func FileIssue(category string, severity Severity, message, file string) Issue {
	return Issue{Severity: severity, Category: category, Message: message, File: file}
}

func FixableIssue(category string, severity Severity, message, file, kind string) Issue {
	return Issue{
		Severity:    severity,
		Category:    category,
		Message:     message,
		File:        file,
		AutoFixable: true,
		Kind:        kind,
	}
}
