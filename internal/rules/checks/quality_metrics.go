package checks

import (
	"context"
	"fmt"
	"path"
	"strings"

	"govsync/internal/project"
	"govsync/internal/rules"
	"govsync/internal/schema"
)

// QualityMetrics measures the primary overview document (minimum word
// count, conventional section headers) and verifies that the schema's
// cross-referenced governance documents mention each other by filename.
type QualityMetrics struct{}

func (c *QualityMetrics) Name() string  { return schema.CategoryQualityMetrics }
func (c *QualityMetrics) Title() string { return "Quality Metrics" }

func (c *QualityMetrics) Evaluate(ctx context.Context, pc *project.Context) ([]rules.Issue, []string, error) {
	var issues []rules.Issue
	var recs []string
	qm := pc.Schema.QualityMetrics

	content, err := pc.Read(qm.PrimaryDocument)
	if err != nil {
		issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
			fmt.Sprintf("primary document missing: %s", qm.PrimaryDocument), qm.PrimaryDocument))
	} else {
		doc := string(content)
		if words := wordCount(doc); words < qm.MinWordCount {
			issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityMedium,
				fmt.Sprintf("primary document has %d words, minimum is %d", words, qm.MinWordCount), qm.PrimaryDocument))
		}
		for _, header := range qm.RequiredHeaders {
			if !hasHeading(doc, header) {
				issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityLow,
					fmt.Sprintf("conventional header %q missing in %s", header, qm.PrimaryDocument), qm.PrimaryDocument))
			}
		}
	}

	for _, pair := range qm.CrossReferences {
		issues = append(issues, c.checkReference(pc, pair[0], pair[1])...)
		issues = append(issues, c.checkReference(pc, pair[1], pair[0])...)
	}

	if len(issues) > 0 {
		recs = append(recs, fmt.Sprintf("Expand %s and keep governance documents cross-referenced by filename.", qm.PrimaryDocument))
	}
	return issues, recs, nil
}

// checkReference verifies that `from` mentions `to` by filename. A missing
// `from` is already reported by the document-structure category, so only
// existing files are examined here.
func (c *QualityMetrics) checkReference(pc *project.Context, from, to string) []rules.Issue {
	content, err := pc.Read(from)
	if err != nil {
		return nil
	}
	if !strings.Contains(string(content), path.Base(to)) {
		return []rules.Issue{rules.FileIssue(c.Name(), rules.SeverityMedium,
			fmt.Sprintf("%s does not reference %s", from, path.Base(to)), from)}
	}
	return nil
}
