package governor

import (
	"context"
	"fmt"
)

const maxStatusIssues = 10

// StatusSnapshot is a condensed view of project health suitable for a
// one-screen summary.
type StatusSnapshot struct {
	ProtocolVersion   string   `json:"protocol_version"`
	GovernanceVersion string   `json:"governance_version"`
	ComplianceScore   int      `json:"compliance_score"`
	TrackedFiles      int      `json:"tracked_files"`
	Issues            []string `json:"issues,omitempty"`
}

// Status runs a compliance check and folds it into a snapshot. The score
// here is a quick heuristic, 5 points per violation off 100, not the
// weighted validator score; callers wanting the full breakdown use
// CheckCompliance directly.
func (g *Governor) Status(ctx context.Context) (*StatusSnapshot, error) {
	violations, err := g.CheckCompliance(ctx, CheckOptions{})
	if err != nil {
		return nil, err
	}

	score := 100 - 5*len(violations)
	if score < 0 {
		score = 0
	}

	snap := &StatusSnapshot{
		ProtocolVersion:   g.pc.Manifest.Protocol.Current,
		GovernanceVersion: g.pc.Manifest.Governance.Current,
		ComplianceScore:   score,
		TrackedFiles:      len(g.pc.Files),
	}
	for _, v := range violations {
		if len(snap.Issues) == maxStatusIssues {
			break
		}
		snap.Issues = append(snap.Issues, summarize(v))
	}
	return snap, nil
}

func summarize(v Violation) string {
	if v.File != "" {
		return fmt.Sprintf("[%s] %s: %s", v.Severity, v.File, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Severity, v.Message)
}
