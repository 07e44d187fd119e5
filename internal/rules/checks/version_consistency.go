package checks

import (
	"context"
	"fmt"

	"govsync/internal/manifest"
	"govsync/internal/project"
	"govsync/internal/rules"
	"govsync/internal/schema"
)

// VersionConsistency verifies that the durable manifest file exists, that
// its protocol version matches the in-memory manifest, and that every
// component version string has semantic-version shape.
type VersionConsistency struct{}

func (c *VersionConsistency) Name() string  { return schema.CategoryVersionConsistency }
func (c *VersionConsistency) Title() string { return "Version Consistency" }

func (c *VersionConsistency) Evaluate(ctx context.Context, pc *project.Context) ([]rules.Issue, []string, error) {
	var issues []rules.Issue
	var recs []string

	if !pc.HasFile(manifest.FileName) {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			"version manifest missing on disk", manifest.FileName))
	} else if raw, err := pc.Read(manifest.FileName); err != nil {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			fmt.Sprintf("version manifest unreadable: %v", err), manifest.FileName))
	} else if stored, err := manifest.Parse(raw); err != nil {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			fmt.Sprintf("version manifest malformed: %v", err), manifest.FileName))
	} else if stored.Protocol.Current != pc.Manifest.Protocol.Current {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			fmt.Sprintf("durable protocol version %s does not match manifest %s",
				stored.Protocol.Current, pc.Manifest.Protocol.Current), manifest.FileName))
	}

	for _, name := range pc.Manifest.ComponentNames() {
		current := pc.Manifest.Components[name].Current
		if !manifest.IsSemver(current) {
			issues = append(issues, rules.NewIssue(c.Name(), rules.SeverityMedium,
				fmt.Sprintf("component %q version %q is not a semantic version", name, current)))
		}
	}

	if len(issues) > 0 {
		recs = append(recs, "Regenerate the version manifest with `govsync init`, or correct component versions in "+manifest.FileName+".")
	}
	return issues, recs, nil
}
