// Package snippet assembles snippet-syntax insertion bodies for
// synthesized suggestions.
package snippet

import "strings"

// sentinel is the character that introduces placeholders in snippet
// syntax.
const sentinel = "$"

// Escape neutralizes the placeholder sentinel so literal dollar signs in
// suggested text survive insertion. Apply exactly once per raw string; a
// second pass double-escapes.
func Escape(s string) string {
	if !strings.Contains(s, sentinel) {
		return s
	}
	return strings.ReplaceAll(s, sentinel, `\`+sentinel)
}

// Body builds the insertable snippet for a candidate: the escaped prefix,
// and when a suffix exists, a terminal placeholder ahead of the escaped
// suffix so accepting the suggestion parks the cursor between the two.
func Body(newPrefix, newSuffix string) string {
	if newSuffix == "" {
		return Escape(newPrefix)
	}
	return Escape(newPrefix) + sentinel + "0" + Escape(newSuffix)
}
