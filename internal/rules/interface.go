package rules

import (
	"context"

	"govsync/internal/project"
)

// Check is one weighted compliance category. Checks read the project
// context only; they never write to the project tree and never call out
// to external tools.
type Check interface {
	// Name is the stable category identifier (also the weight key in the
	// validation schema).
	Name() string
	Title() string

	// Evaluate returns the category's issues and recommendations.
	// Discovery order is preserved in the final result.
	Evaluate(ctx context.Context, pc *project.Context) ([]Issue, []string, error)
}
