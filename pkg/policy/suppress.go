// Package policy decides whether completion may run at a location and how
// many candidates may be surfaced once it has.
package policy

import (
	"regexp"
	"strings"
)

// MaxLineColumns bounds how much of the current line is handed to the line
// suppression regexes. Anything past this column cannot trigger a match.
const MaxLineColumns = 500

// Allowed reports whether completion may run at cursor in text. Line
// regexes run against a bounded slice of the cursor's line, file regexes
// against filePath; the first match wins and denies. Empty or nil lists
// never deny.
func Allowed(text string, cursor int, lineRegexes, fileRegexes []*regexp.Regexp, filePath string) bool {
	if len(lineRegexes) > 0 {
		// The slice is computed once and shared by every line regex.
		line := lineSlice(text, cursor)
		for _, re := range lineRegexes {
			if re.MatchString(line) {
				return false
			}
		}
	}
	for _, re := range fileRegexes {
		if re.MatchString(filePath) {
			return false
		}
	}
	return true
}

// lineSlice returns the cursor's line from column 0, cut at the line end
// or MaxLineColumns, whichever comes first.
func lineSlice(text string, cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	start := strings.LastIndexByte(text[:cursor], '\n') + 1
	end := start + MaxLineColumns
	if end > len(text) {
		end = len(text)
	}
	if nl := strings.IndexByte(text[start:end], '\n'); nl >= 0 {
		end = start + nl
	}
	return text[start:end]
}
