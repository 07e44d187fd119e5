// Package schema loads the declarative validation rule set consumed by the
// validator: required files and sections, quality thresholds, exception
// policy documents, grade thresholds, and category weights. A project-local
// override wins over the bundled default; the schema is immutable for the
// run.
package schema

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project-local schema override path relative to the
// project root.
const FileName = "governance/validation-schema.yaml"

// Validator category names. The five categories and their declared order
// are fixed; only the weights are schema-tunable.
const (
	CategoryDocumentStructure  = "document-structure"
	CategoryVersionConsistency = "version-consistency"
	CategoryQualityMetrics     = "quality-metrics"
	CategorySafetyCompliance   = "safety-compliance"
	CategoryExceptionPolicy    = "exception-policy"
)

type RequiredFile struct {
	Path     string   `yaml:"path"`
	Sections []string `yaml:"sections,omitempty"`
}

type QualityMetrics struct {
	// PrimaryDocument is the project overview document measured for word
	// count and conventional headers.
	PrimaryDocument string   `yaml:"primaryDocument"`
	MinWordCount    int      `yaml:"minWordCount"`
	RequiredHeaders []string `yaml:"requiredHeaders,omitempty"`
	// CrossReferences lists document pairs that must mention each other by
	// filename.
	CrossReferences [][2]string `yaml:"crossReferences,omitempty"`
}

type ExceptionPolicy struct {
	Path     string   `yaml:"path"`
	Sections []string `yaml:"sections,omitempty"`
}

type GradeThresholds struct {
	A int `yaml:"A"`
	B int `yaml:"B"`
	C int `yaml:"C"`
	D int `yaml:"D"`
}

type Safety struct {
	OpsDir             string `yaml:"opsDir"`
	HousekeepingScript string `yaml:"housekeepingScript"`
	ArchiveDir         string `yaml:"archiveDir"`
}

type Schema struct {
	RequiredFiles     []RequiredFile     `yaml:"requiredFiles"`
	QualityMetrics    QualityMetrics     `yaml:"qualityMetrics"`
	ExceptionPolicies []ExceptionPolicy  `yaml:"exceptionPolicies"`
	GradeThresholds   GradeThresholds    `yaml:"gradeThresholds"`
	CategoryWeights   map[string]float64 `yaml:"categoryWeights"`
	Safety            Safety             `yaml:"safety"`
	// ObsoletePatterns are filename globs flagged as obsolete by the
	// document-structure category (fixable by archival).
	ObsoletePatterns []string `yaml:"obsoletePatterns,omitempty"`
}

// Default returns the bundled schema used when no project-local override
// exists.
func Default() *Schema {
	return &Schema{
		RequiredFiles: []RequiredFile{
			{Path: "README.md", Sections: []string{"Overview"}},
			{Path: "GOVERNANCE.md", Sections: []string{"Versioning", "Compliance"}},
			{Path: "governance/OPERATING_INSTRUCTIONS.md"},
		},
		QualityMetrics: QualityMetrics{
			PrimaryDocument: "README.md",
			MinWordCount:    200,
			RequiredHeaders: []string{"Overview", "Usage"},
			CrossReferences: [][2]string{
				{"GOVERNANCE.md", "governance/OPERATING_INSTRUCTIONS.md"},
			},
		},
		ExceptionPolicies: []ExceptionPolicy{
			{Path: "governance/policies/EXCEPTIONS.md", Sections: []string{"Scope", "Approval", "Expiry"}},
		},
		GradeThresholds: GradeThresholds{A: 90, B: 80, C: 70, D: 60},
		CategoryWeights: map[string]float64{
			CategoryDocumentStructure:  0.25,
			CategoryVersionConsistency: 0.20,
			CategoryQualityMetrics:     0.25,
			CategorySafetyCompliance:   0.15,
			CategoryExceptionPolicy:    0.15,
		},
		Safety: Safety{
			OpsDir:             "ops",
			HousekeepingScript: "ops/housekeeping.sh",
			ArchiveDir:         "archive",
		},
		ObsoletePatterns: []string{
			"*-old.*", "*_old.*", "*.bak", "*.orig", "*-backup.*", "* copy.*",
		},
	}
}

// Load reads the project-local schema override if present, else the
// bundled default. A present-but-unparsable or inconsistent schema is a
// fatal error.
func Load(root string) (*Schema, error) {
	path := filepath.Join(root, filepath.FromSlash(FileName))
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read validation schema %s: %w", path, err)
	}
	s, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse validation schema %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a schema document. Omitted sections fall
// back to the bundled default so an override can be partial.
func Parse(raw []byte) (*Schema, error) {
	s := Default()
	if err := yaml.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate enforces cross-field consistency: weights cover exactly the
// five categories and sum to 1.0, and grade thresholds are strictly
// descending.
func (s *Schema) Validate() error {
	categories := []string{
		CategoryDocumentStructure,
		CategoryVersionConsistency,
		CategoryQualityMetrics,
		CategorySafetyCompliance,
		CategoryExceptionPolicy,
	}
	sum := 0.0
	for _, c := range categories {
		w, ok := s.CategoryWeights[c]
		if !ok {
			return fmt.Errorf("categoryWeights missing category %q", c)
		}
		if w < 0 || w > 1 {
			return fmt.Errorf("categoryWeights[%s] = %v out of range", c, w)
		}
		sum += w
	}
	if len(s.CategoryWeights) != len(categories) {
		return fmt.Errorf("categoryWeights declares %d categories, want %d", len(s.CategoryWeights), len(categories))
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights sum to %v, want 1.0", sum)
	}

	t := s.GradeThresholds
	if !(t.A > t.B && t.B > t.C && t.C > t.D && t.D > 0) {
		return fmt.Errorf("grade thresholds must be strictly descending and positive, got %+v", t)
	}
	if t.A > 100 {
		return fmt.Errorf("grade threshold A = %d exceeds 100", t.A)
	}

	if s.QualityMetrics.PrimaryDocument == "" {
		return fmt.Errorf("qualityMetrics.primaryDocument must be set")
	}
	if s.QualityMetrics.MinWordCount < 0 {
		return fmt.Errorf("qualityMetrics.minWordCount must be >= 0")
	}
	for _, rf := range s.RequiredFiles {
		if rf.Path == "" {
			return fmt.Errorf("requiredFiles entry with empty path")
		}
	}
	for _, ep := range s.ExceptionPolicies {
		if ep.Path == "" {
			return fmt.Errorf("exceptionPolicies entry with empty path")
		}
	}
	return nil
}

// Grade maps a 0-100 score to a letter grade using the schema thresholds.
func (s *Schema) Grade(score int) string {
	t := s.GradeThresholds
	switch {
	case score >= t.A:
		return "A"
	case score >= t.B:
		return "B"
	case score >= t.C:
		return "C"
	case score >= t.D:
		return "D"
	default:
		return "F"
	}
}

// Weight returns the weight for a named category, 0 if unknown.
func (s *Schema) Weight(category string) float64 {
	return s.CategoryWeights[category]
}

// Exists reports whether a project-local schema override is present.
func Exists(root string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(FileName)))
	return err == nil
}
