package checks

import (
	"strings"
)

// hasHeading reports whether content has a Markdown heading containing
// the given section name, case-insensitively.
func hasHeading(content, section string) bool {
	want := strings.ToLower(section)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), want) {
			return true
		}
	}
	return false
}

func wordCount(content string) int {
	return len(strings.Fields(content))
}
