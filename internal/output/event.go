package output

import "govsync/internal/governor"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - project.started
// - violation
// - project.finished
// - run.finished
//
// JSON mode remains an aggregate of violation Records.
type Event struct {
	Type    string `json:"type"`
	Project string `json:"project,omitempty"`
	*governor.Violation
	Projects int    `json:"projects,omitempty"`
	Score    int    `json:"score,omitempty"`
	Grade    string `json:"grade,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
}

// Record is a violation tagged with the project it was found in; it is
// the unit fanned out to sinks during a check run.
type Record struct {
	Project string `json:"project"`
	governor.Violation
}

func eventFromRecord(r Record) Event {
	v := r.Violation
	return Event{Type: "violation", Project: r.Project, Violation: &v}
}
