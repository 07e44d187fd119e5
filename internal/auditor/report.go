package auditor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// report is the persisted artifact shape: summary plus categories.
type report struct {
	Timestamp  time.Time     `json:"timestamp"`
	Summary    reportSummary `json:"summary"`
	Categories []Category    `json:"categories"`
}

type reportSummary struct {
	Type       Type `json:"type"`
	Score      int  `json:"score"`
	Categories int  `json:"categories"`
	Issues     int  `json:"issues"`
}

// Save writes the audit result as a JSON report artifact. The auditor is
// the only component permitted to persist one, and only to a
// caller-supplied path.
func (r *Result) Save(path string) error {
	issues := 0
	for _, cat := range r.Categories {
		issues += len(cat.Issues)
	}
	doc := report{
		Timestamp: r.Timestamp,
		Summary: reportSummary{
			Type:       r.Type,
			Score:      r.Score,
			Categories: len(r.Categories),
			Issues:     issues,
		},
		Categories: r.Categories,
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write audit report: %w", err)
	}
	return nil
}
