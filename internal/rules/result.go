package rules

// CategoryScore is one category's contribution to a validation result.
type CategoryScore struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Weight float64 `json:"weight"`
	// Score is the category score after penalties, floored at 0.
	Score  int     `json:"score"`
	Issues []Issue `json:"issues,omitempty"`
}

// Result is the outcome of one validation run. Derived per run, never
// persisted unless explicitly exported.
type Result struct {
	Score           int             `json:"score"`
	Grade           string          `json:"grade"`
	Categories      []CategoryScore `json:"categories"`
	Issues          []Issue         `json:"issues,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}

// CountBySeverity buckets the result's issues by severity.
func (r *Result) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int)
	for _, issue := range r.Issues {
		out[issue.Severity]++
	}
	return out
}
