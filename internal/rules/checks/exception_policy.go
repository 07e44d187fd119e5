package checks

import (
	"context"
	"fmt"

	"govsync/internal/project"
	"govsync/internal/rules"
	"govsync/internal/schema"
)

// ExceptionPolicy verifies that every schema-declared exception policy
// document exists and contains every declared structural subsection.
type ExceptionPolicy struct{}

func (c *ExceptionPolicy) Name() string  { return schema.CategoryExceptionPolicy }
func (c *ExceptionPolicy) Title() string { return "Exception Policy Compliance" }

func (c *ExceptionPolicy) Evaluate(ctx context.Context, pc *project.Context) ([]rules.Issue, []string, error) {
	var issues []rules.Issue
	var recs []string

	for _, policy := range pc.Schema.ExceptionPolicies {
		content, err := pc.Read(policy.Path)
		if err != nil {
			issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
				fmt.Sprintf("exception policy document missing: %s", policy.Path), policy.Path))
			continue
		}
		for _, section := range policy.Sections {
			if !hasHeading(string(content), section) {
				issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityMedium,
					fmt.Sprintf("exception policy %s missing subsection %q", policy.Path, section), policy.Path))
			}
		}
	}

	if len(issues) > 0 {
		recs = append(recs, "Restore the declared exception policy documents and their required subsections.")
	}
	return issues, recs, nil
}
