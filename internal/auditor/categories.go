package auditor

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"govsync/internal/manifest"
	"govsync/internal/project"
	"govsync/internal/scanner"
)

// Fixed per-finding penalties (see package doc: audits are unweighted).
const (
	penaltyShortPrimaryDoc   = 15
	penaltyMissingGovernance = 20
	penaltySecretLikeFile    = 25
	penaltyUnresolvedDepRec  = 10
)

func auditQuality(ctx context.Context, pc *project.Context) Category {
	cat := Category{Name: "quality", Score: 100}
	qm := pc.Schema.QualityMetrics

	content, err := pc.Read(qm.PrimaryDocument)
	if err != nil {
		cat.Score -= penaltyShortPrimaryDoc
		cat.Issues = append(cat.Issues, fmt.Sprintf("primary document %s is missing", qm.PrimaryDocument))
		cat.Recommendations = append(cat.Recommendations, fmt.Sprintf("Create %s with a project overview.", qm.PrimaryDocument))
	} else if words := len(strings.Fields(string(content))); words < qm.MinWordCount {
		cat.Score -= penaltyShortPrimaryDoc
		cat.Issues = append(cat.Issues, fmt.Sprintf("primary document %s has %d words (minimum %d)", qm.PrimaryDocument, words, qm.MinWordCount))
		cat.Recommendations = append(cat.Recommendations, fmt.Sprintf("Expand %s past %d words.", qm.PrimaryDocument, qm.MinWordCount))
	}

	return cat
}

func auditCompliance(ctx context.Context, pc *project.Context) Category {
	cat := Category{Name: "compliance", Score: 100}

	for _, rf := range pc.Schema.RequiredFiles {
		if !pc.HasFile(rf.Path) {
			cat.Score -= penaltyMissingGovernance
			cat.Issues = append(cat.Issues, fmt.Sprintf("required governance file missing: %s", rf.Path))
		}
	}
	if !pc.HasFile(manifest.FileName) {
		cat.Score -= penaltyMissingGovernance
		cat.Issues = append(cat.Issues, "version manifest missing: "+manifest.FileName)
	}
	if len(cat.Issues) > 0 {
		cat.Recommendations = append(cat.Recommendations, "Run `govsync init` to scaffold the governance layout.")
	}

	return cat
}

// secretLikePatterns match committed files that usually hold credentials.
var secretLikePatterns = []string{
	".env", "*.pem", "*.key", "id_rsa*", "*credentials*", "secrets.*", "*.p12",
}

func auditSecurity(ctx context.Context, pc *project.Context) Category {
	cat := Category{Name: "security", Score: 100}

	// Secret sweep walks the tree itself: secret-like files rarely carry
	// doc/config extensions, so the scanner's candidate list is too narrow.
	_ = filepath.WalkDir(pc.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != pc.Root && scanner.ExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		for _, pattern := range secretLikePatterns {
			if ok, _ := path.Match(pattern, name); ok {
				rel, relErr := filepath.Rel(pc.Root, p)
				if relErr != nil {
					rel = p
				}
				cat.Score -= penaltySecretLikeFile
				cat.Issues = append(cat.Issues, fmt.Sprintf("secret-like file committed: %s", filepath.ToSlash(rel)))
				break
			}
		}
		return nil
	})

	// Unresolved dependency-audit recommendations are open checklist items
	// in the dependency-audit document.
	if raw, err := pc.Read("governance/dependency-audit.md"); err == nil {
		for _, line := range strings.Split(string(raw), "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "- [ ]") {
				cat.Score -= penaltyUnresolvedDepRec
				cat.Issues = append(cat.Issues, "unresolved dependency-audit recommendation: "+strings.TrimSpace(line))
			}
		}
	}

	if len(cat.Issues) > 0 {
		cat.Recommendations = append(cat.Recommendations, "Remove committed secrets and close out dependency-audit items.")
	}

	return cat
}
