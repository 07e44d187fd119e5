package auditor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"govsync/internal/manifest"
	"govsync/internal/project"
	"govsync/internal/scanner"
	"govsync/internal/schema"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func loadContext(t *testing.T, root string) *project.Context {
	t.Helper()
	man, err := manifest.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	sch, err := schema.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	return &project.Context{Root: root, Manifest: man, Schema: sch, Files: scanner.New().List(root)}
}

func cleanProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write(t, root, "README.md", strings.Repeat("audited word ", 150))
	write(t, root, "GOVERNANCE.md", "# Governance\n")
	write(t, root, "governance/OPERATING_INSTRUCTIONS.md", "# Ops\n")
	write(t, root, "governance/versions.json",
		`{"versions": {"protocol": {"current": "1.0.0"}, "governance": {"current": "1.0.0"}}}`)
	return root
}

func TestComprehensiveCleanProjectScores100(t *testing.T) {
	pc := loadContext(t, cleanProject(t))
	result, err := New().Audit(context.Background(), pc, TypeComprehensive)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(result.Categories))
	}
	if result.Score != 100 {
		t.Errorf("score = %d, want 100; categories: %+v", result.Score, result.Categories)
	}
}

func TestSingleTypeRunsOneCategory(t *testing.T) {
	pc := loadContext(t, cleanProject(t))
	result, err := New().Audit(context.Background(), pc, TypeSecurity)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Categories) != 1 || result.Categories[0].Name != "security" {
		t.Errorf("categories = %+v, want only security", result.Categories)
	}
}

func TestOverallIsUnweightedMean(t *testing.T) {
	root := cleanProject(t)
	// quality: short primary doc (-15). security: one secret (-25).
	write(t, root, "README.md", "too short")
	write(t, root, "deploy.pem", "---")
	pc := loadContext(t, root)

	result, err := New().Audit(context.Background(), pc, TypeComprehensive)
	if err != nil {
		t.Fatal(err)
	}
	// (85 + 100 + 75) / 3 = 86.67 -> 87
	if result.Score != 87 {
		t.Errorf("score = %d, want 87; categories: %+v", result.Score, result.Categories)
	}
}

func TestSecurityFindsSecretsAndOpenDepItems(t *testing.T) {
	root := cleanProject(t)
	write(t, root, "secrets.yaml", "token: x")
	write(t, root, "governance/dependency-audit.md", "# Deps\n\n- [x] upgraded parser\n- [ ] bump yaml lib\n")
	pc := loadContext(t, root)

	result, err := New().Audit(context.Background(), pc, TypeSecurity)
	if err != nil {
		t.Fatal(err)
	}
	cat := result.Categories[0]
	if cat.Score != 100-penaltySecretLikeFile-penaltyUnresolvedDepRec {
		t.Errorf("security score = %d, want %d; issues: %v", cat.Score, 100-penaltySecretLikeFile-penaltyUnresolvedDepRec, cat.Issues)
	}
}

func TestComplianceMissingFilesPenalized(t *testing.T) {
	pc := loadContext(t, t.TempDir())
	result, err := New().Audit(context.Background(), pc, TypeCompliance)
	if err != nil {
		t.Fatal(err)
	}
	if result.Categories[0].Score != 20 {
		// Three required files plus the manifest, -20 each.
		t.Errorf("compliance score = %d, want 20; issues: %v", result.Categories[0].Score, result.Categories[0].Issues)
	}
}

func TestParseType(t *testing.T) {
	for _, valid := range []string{"quality", "compliance", "security", "comprehensive"} {
		if _, err := ParseType(valid); err != nil {
			t.Errorf("ParseType(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseType("vibes"); err == nil {
		t.Error("expected error for unknown audit type")
	}
}

func TestSaveReportArtifact(t *testing.T) {
	pc := loadContext(t, cleanProject(t))
	result, err := New().Audit(context.Background(), pc, TypeComprehensive)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "reports", "audit.json")
	if err := result.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Summary struct {
			Type       string `json:"type"`
			Score      int    `json:"score"`
			Categories int    `json:"categories"`
		} `json:"summary"`
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if doc.Summary.Type != "comprehensive" || doc.Summary.Categories != 3 {
		t.Errorf("unexpected report summary: %+v", doc.Summary)
	}
}
