package governor

import (
	"sort"

	"govsync/internal/rules"
	"govsync/internal/syncer"
)

// Violation is the unifying record across the synchronizer, validator,
// and governance-structure checks.
type Violation struct {
	Severity    rules.Severity `json:"severity"`
	Category    string         `json:"category"`
	Message     string         `json:"message"`
	File        string         `json:"file,omitempty"`
	AutoFixable bool           `json:"autoFixable,omitempty"`
	Remediation string         `json:"remediation,omitempty"`

	// kind and conflict drive auto-fix dispatch; they are not part of the
	// reported record.
	kind     string
	conflict *syncer.Conflict
}

// Categories reported by the governor itself (the validator contributes
// its own category names).
const (
	CategoryVersionSync = "version-sync"
	CategoryStructure   = "governance-structure"
)

// Auto-fix kinds on top of the validator's issue kinds.
const kindVersionDrift = "version-drift"

func fromIssue(issue rules.Issue) Violation {
	v := Violation{
		Severity:    issue.Severity,
		Category:    issue.Category,
		Message:     issue.Message,
		File:        issue.File,
		AutoFixable: issue.AutoFixable,
		kind:        issue.Kind,
	}
	if issue.AutoFixable {
		v.Remediation = "run `govsync fix`"
	}
	return v
}

func fromConflict(c syncer.Conflict) Violation {
	return Violation{
		Severity:    rules.SeverityMedium,
		Category:    CategoryVersionSync,
		Message:     "version drift: " + c.CurrentVersion + " should be " + c.TargetVersion,
		File:        c.File,
		AutoFixable: true,
		Remediation: "run `govsync sync --force`",
		kind:        kindVersionDrift,
		conflict:    &c,
	}
}

// CountBySeverity buckets violations for summary logging.
func CountBySeverity(violations []Violation) map[rules.Severity]int {
	out := make(map[rules.Severity]int)
	for _, v := range violations {
		out[v.Severity]++
	}
	return out
}

// SortBySeverity orders violations critical-first while keeping the
// discovery order within each severity. Reporting sinks rely on this
// being stable.
func SortBySeverity(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Severity.Rank() < violations[j].Severity.Rank()
	})
}
