package syncer

import "regexp"

// referencePattern locates a version token inside a line of project text.
// Patterns apply in order; the token group holds the semantic version.
type referencePattern struct {
	name  string
	re    *regexp.Regexp
	group int
}

const semverBody = `\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`

// The ordered pattern set: "Name vX.Y.Z" mentions, where the word
// preceding the token carries the keyword or component context,
// key-style version fields in structured files, then bare vX.Y.Z
// mentions. A match must carry its own context; bare tokens never
// resolve on their own.
var referencePatterns = []referencePattern{
	{
		name:  "named",
		re:    regexp.MustCompile(`(?i)\b([A-Za-z][\w.-]*)\s+v(` + semverBody + `)\b`),
		group: 2,
	},
	{
		name:  "key",
		re:    regexp.MustCompile(`(?i)^\s*"?[\w.-]*version[\w.-]*"?\s*[:=]\s*"?v?(` + semverBody + `)"?`),
		group: 1,
	},
	{
		name:  "bare",
		re:    regexp.MustCompile(`\bv(` + semverBody + `)\b`),
		group: 1,
	},
}
