package checks

import (
	"context"
	"fmt"

	"govsync/internal/project"
	"govsync/internal/rules"
	"govsync/internal/schema"
)

// SafetyCompliance verifies the presence of the operations directory, the
// housekeeping script, and the archive directory. Only the archive
// directory is auto-fixable (by creation).
type SafetyCompliance struct{}

func (c *SafetyCompliance) Name() string  { return schema.CategorySafetyCompliance }
func (c *SafetyCompliance) Title() string { return "Safety Compliance" }

func (c *SafetyCompliance) Evaluate(ctx context.Context, pc *project.Context) ([]rules.Issue, []string, error) {
	var issues []rules.Issue
	var recs []string
	safety := pc.Schema.Safety

	if !pc.HasDir(safety.OpsDir) {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			fmt.Sprintf("operations directory missing: %s", safety.OpsDir), safety.OpsDir))
	} else if !pc.HasFile(safety.HousekeepingScript) {
		// Only meaningful once the operations directory exists.
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityMedium,
			fmt.Sprintf("housekeeping script missing: %s", safety.HousekeepingScript), safety.HousekeepingScript))
	}
	if !pc.HasDir(safety.ArchiveDir) {
		issues = append(issues, rules.FixableIssue(c.Name(), rules.SeverityLow,
			fmt.Sprintf("archive directory missing: %s", safety.ArchiveDir), safety.ArchiveDir, rules.KindMissingArchiveDir))
	}

	if len(issues) > 0 {
		recs = append(recs, "Create the operations layout (ops directory, housekeeping script) and run `govsync fix` to create the archive directory.")
	}
	return issues, recs, nil
}
