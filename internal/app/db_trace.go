package app

import (
	"regexp"
	"strings"
)

// Long statements (lineup slot batches, seed inserts) get truncated so
// span payloads stay small.
const maxTracedQueryLength = 512

var whitespaceRun = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses a SQL statement to a single line for the
// db.statement span attribute.
func formatDBQueryForTrace(query string) string {
	flattened := whitespaceRun.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flattened) > maxTracedQueryLength {
		return flattened[:maxTracedQueryLength] + "..."
	}

	return flattened
}
