package confparse

import (
	"regexp"
	"strings"
)

// Pasted configs sometimes carry editor line numbers, e.g. "   12 |interface Vlan100".
var lineNumberPrefix = regexp.MustCompile(`^\s*\d+\s?\|`)

// NormalizeLines splits raw configuration text into lines and strips
// line-number artifacts. Indentation after the artifact is preserved (the
// block scanner depends on it), blank lines pass through as empty strings,
// and lines without a recognizable prefix are returned unchanged.
func NormalizeLines(text string) []string {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		line = strings.TrimRight(line, "\r")
		if loc := lineNumberPrefix.FindStringIndex(line); loc != nil {
			line = line[loc[1]:]
		}
		lines[i] = line
	}
	return lines
}
