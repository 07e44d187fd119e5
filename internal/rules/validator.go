package rules

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"govsync/internal/logging"
	"govsync/internal/project"
)

// Validator computes the weighted compliance score across the registered
// categories. Categories run in fixed declared order; a failing category
// check never aborts its siblings.
type Validator struct {
	log *slog.Logger
}

func NewValidator() *Validator {
	return &Validator{log: logging.ForComponent("validator")}
}

// Validate runs every registered category against the project context.
// Each category starts at 100, loses a fixed severity-correlated penalty
// per issue, and floors at 0; the overall score is the weight-summed
// category score rounded to the nearest integer.
func (v *Validator) Validate(ctx context.Context, pc *project.Context) (*Result, error) {
	result := &Result{}
	weighted := 0.0

	for _, check := range List() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		issues, recs, err := check.Evaluate(ctx, pc)
		if err != nil {
			// A failing category records itself and the run continues.
			v.log.Warn("category check failed", "category", check.Name(), "error", err)
			issues = append(issues, NewIssue(check.Name(), SeverityHigh,
				fmt.Sprintf("category check failed: %v", err)))
		}

		score := 100
		for _, issue := range issues {
			score -= issue.Severity.Penalty()
		}
		if score < 0 {
			score = 0
		}

		weight := pc.Schema.Weight(check.Name())
		weighted += float64(score) * weight

		result.Categories = append(result.Categories, CategoryScore{
			Name:   check.Name(),
			Title:  check.Title(),
			Weight: weight,
			Score:  score,
			Issues: issues,
		})
		result.Issues = append(result.Issues, issues...)
		result.Recommendations = append(result.Recommendations, recs...)

		v.log.Debug("category scored", "category", check.Name(), "score", score, "issues", len(issues))
	}

	result.Score = int(math.Round(weighted))
	result.Grade = pc.Schema.Grade(result.Score)
	return result, nil
}
