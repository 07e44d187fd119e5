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

// DocumentStructure verifies that every schema-required file exists, that
// required sections exist within them, and flags filenames matching known
// obsolete patterns. Obsolete files are fixable (archived), not blocking.
type DocumentStructure struct{}

func (c *DocumentStructure) Name() string  { return schema.CategoryDocumentStructure }
func (c *DocumentStructure) Title() string { return "Document Structure" }

func (c *DocumentStructure) Evaluate(ctx context.Context, pc *project.Context) ([]rules.Issue, []string, error) {
	var issues []rules.Issue
	var recs []string

	for _, rf := range pc.Schema.RequiredFiles {
		if !pc.HasFile(rf.Path) {
			issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
				fmt.Sprintf("required file missing: %s", rf.Path), rf.Path))
			continue
		}
		content, err := pc.Read(rf.Path)
		if err != nil {
			// Unreadable counts as missing; the run continues.
			issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityHigh,
				fmt.Sprintf("required file unreadable: %s", rf.Path), rf.Path))
			continue
		}
		for _, section := range rf.Sections {
			if !hasHeading(string(content), section) {
				issues = append(issues, rules.FileIssue(c.Name(), rules.SeverityLow,
					fmt.Sprintf("section %q missing in %s", section, rf.Path), rf.Path))
			}
		}
	}

	for _, rel := range pc.Files {
		base := strings.ToLower(path.Base(rel))
		for _, pattern := range pc.Schema.ObsoletePatterns {
			if ok, _ := path.Match(strings.ToLower(pattern), base); ok {
				issues = append(issues, rules.FixableIssue(c.Name(), rules.SeverityLow,
					fmt.Sprintf("obsolete file should be archived: %s", rel), rel, rules.KindObsoleteFile))
				break
			}
		}
	}

	if len(issues) > 0 {
		recs = append(recs, "Scaffold missing governance documents with `govsync init`, and archive obsolete files with `govsync fix`.")
	}
	return issues, recs, nil
}
