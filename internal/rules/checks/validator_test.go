package checks

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"govsync/internal/rules"
	"govsync/internal/schema"
)

func TestCompliantProjectScoresPerfect(t *testing.T) {
	pc := loadContext(t, compliantProject(t))
	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", result.Issues)
	}
	if result.Score != 100 || result.Grade != "A" {
		t.Errorf("score/grade = %d/%s, want 100/A", result.Score, result.Grade)
	}
}

func TestWeightConservation(t *testing.T) {
	pc := loadContext(t, compliantProject(t))
	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	sum := 0.0
	for _, cat := range result.Categories {
		sum += cat.Weight
	}
	if sum != 1.0 {
		t.Errorf("category weights sum = %v, want 1.0", sum)
	}
}

func TestDeterminism(t *testing.T) {
	root := compliantProject(t)
	// Perturb the project so there are real issues to order.
	if err := os.Remove(filepath.Join(root, "GOVERNANCE.md")); err != nil {
		t.Fatal(err)
	}
	pc := loadContext(t, root)

	v := rules.NewValidator()
	first, err := v.Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := v.Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two consecutive validations of an unchanged project differ")
	}
}

func TestIssueOrderingCategoryMajor(t *testing.T) {
	root := compliantProject(t)
	if err := os.Remove(filepath.Join(root, "GOVERNANCE.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(root, "ops")); err != nil {
		t.Fatal(err)
	}
	pc := loadContext(t, root)

	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}

	order := map[string]int{
		schema.CategoryDocumentStructure:  0,
		schema.CategoryVersionConsistency: 1,
		schema.CategoryQualityMetrics:     2,
		schema.CategorySafetyCompliance:   3,
		schema.CategoryExceptionPolicy:    4,
	}
	last := -1
	for _, issue := range result.Issues {
		rank, ok := order[issue.Category]
		if !ok {
			t.Fatalf("unknown category %q", issue.Category)
		}
		if rank < last {
			t.Fatalf("issues not category-major ordered: %+v", result.Issues)
		}
		last = rank
	}
}

func TestMissingRequiredFileNeverRaisesStructureScore(t *testing.T) {
	root := compliantProject(t)
	pc := loadContext(t, root)
	baseline, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(root, "GOVERNANCE.md")); err != nil {
		t.Fatal(err)
	}
	pc = loadContext(t, root)
	degraded, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}

	var base, after int
	for _, cat := range baseline.Categories {
		if cat.Name == schema.CategoryDocumentStructure {
			base = cat.Score
		}
	}
	for _, cat := range degraded.Categories {
		if cat.Name == schema.CategoryDocumentStructure {
			after = cat.Score
		}
	}
	if after > base {
		t.Errorf("removing a required file raised document-structure score: %d -> %d", base, after)
	}
}

func TestSafetyCategoryWorkedExample(t *testing.T) {
	root := compliantProject(t)
	if err := os.RemoveAll(filepath.Join(root, "ops")); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(filepath.Join(root, "archive")); err != nil {
		t.Fatal(err)
	}
	pc := loadContext(t, root)

	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}

	for _, cat := range result.Categories {
		if cat.Name != schema.CategorySafetyCompliance {
			continue
		}
		if cat.Score != 75 {
			t.Errorf("safety score = %d, want 75", cat.Score)
		}
		if len(cat.Issues) != 2 {
			t.Fatalf("safety issues = %+v, want 2", cat.Issues)
		}
		var fixable, nonFixable int
		for _, issue := range cat.Issues {
			if issue.AutoFixable {
				fixable++
				if issue.Severity != rules.SeverityLow {
					t.Errorf("archive issue severity = %s, want low", issue.Severity)
				}
			} else {
				nonFixable++
				if issue.Severity != rules.SeverityHigh {
					t.Errorf("ops issue severity = %s, want high", issue.Severity)
				}
			}
		}
		if fixable != 1 || nonFixable != 1 {
			t.Errorf("fixable/non-fixable = %d/%d, want 1/1", fixable, nonFixable)
		}
		// Weighted contribution: 75 x 0.15.
		if cat.Weight != 0.15 {
			t.Errorf("safety weight = %v, want 0.15", cat.Weight)
		}
	}
}

func TestCategoryScoreFloorsAtZero(t *testing.T) {
	root := t.TempDir()
	// Empty project: everything missing.
	pc := loadContext(t, root)
	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}
	for _, cat := range result.Categories {
		if cat.Score < 0 {
			t.Errorf("category %s score %d below zero", cat.Name, cat.Score)
		}
	}
	if result.Grade != "F" {
		t.Errorf("empty project grade = %s, want F", result.Grade)
	}
}

func TestObsoleteFileFlaggedFixable(t *testing.T) {
	root := compliantProject(t)
	write(t, root, "notes-old.md", "stale")
	pc := loadContext(t, root)

	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, issue := range result.Issues {
		if issue.Kind == rules.KindObsoleteFile {
			found = true
			if !issue.AutoFixable || issue.File != "notes-old.md" {
				t.Errorf("obsolete issue malformed: %+v", issue)
			}
		}
	}
	if !found {
		t.Error("obsolete filename not flagged")
	}
}

func TestCrossReferenceFailure(t *testing.T) {
	root := compliantProject(t)
	write(t, root, "GOVERNANCE.md", "# Governance\n\n## Versioning\n\n## Compliance\n\nNo references here.\n")
	pc := loadContext(t, root)

	result, err := rules.NewValidator().Validate(context.Background(), pc)
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, issue := range result.Issues {
		if issue.Category == schema.CategoryQualityMetrics && issue.File == "GOVERNANCE.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing cross-reference not reported: %+v", result.Issues)
	}
}
