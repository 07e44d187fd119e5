// Package auditor runs deeper, non-pass/fail category audits (quality,
// compliance, security) over a project. Audit types are a tagged variant
// mapped to a fixed table of category producers; the comprehensive type
// is the union of the three. Unlike the validator, the overall score is
// the unweighted mean of category scores: the auditor expresses
// exploratory breadth, not compliance priority.
package auditor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"govsync/internal/logging"
	"govsync/internal/project"
)

type Type string

const (
	TypeQuality       Type = "quality"
	TypeCompliance    Type = "compliance"
	TypeSecurity      Type = "security"
	TypeComprehensive Type = "comprehensive"
)

// ParseType validates an audit type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeQuality, TypeCompliance, TypeSecurity, TypeComprehensive:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown audit type %q (must be one of: quality, compliance, security, comprehensive)", s)
	}
}

type Category struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Issues          []string `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

type Result struct {
	Timestamp  time.Time  `json:"timestamp"`
	Type       Type       `json:"type"`
	Score      int        `json:"score"`
	Categories []Category `json:"categories"`
}

type categoryFunc func(ctx context.Context, pc *project.Context) Category

// categoryTable is the fixed dispatch table; order is the report order.
var categoryTable = []struct {
	name string
	fn   categoryFunc
}{
	{"quality", auditQuality},
	{"compliance", auditCompliance},
	{"security", auditSecurity},
}

type Auditor struct {
	log *slog.Logger
	now func() time.Time
}

func New() *Auditor {
	return &Auditor{log: logging.ForComponent("auditor"), now: time.Now}
}

// Audit runs the categories selected by the audit type. Each category
// starts at 100, subtracts fixed penalties per finding, and floors at 0.
func (a *Auditor) Audit(ctx context.Context, pc *project.Context, t Type) (*Result, error) {
	result := &Result{Timestamp: a.now().UTC(), Type: t}

	for _, entry := range categoryTable {
		if t != TypeComprehensive && string(t) != entry.name {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cat := entry.fn(ctx, pc)
		if cat.Score < 0 {
			cat.Score = 0
		}
		result.Categories = append(result.Categories, cat)
		a.log.Debug("audit category scored", "category", cat.Name, "score", cat.Score, "issues", len(cat.Issues))
	}

	total := 0
	for _, cat := range result.Categories {
		total += cat.Score
	}
	if n := len(result.Categories); n > 0 {
		result.Score = int(math.Round(float64(total) / float64(n)))
	}
	return result, nil
}
