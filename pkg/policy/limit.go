package policy

import (
	"strings"

	"github.com/snipserve/snipserve/pkg/provider"
)

// DefaultMaxResults caps the candidate count requested from the
// generation service when no capability and no config override it.
const DefaultMaxResults = 5

// Limits are the inputs to the pre-request result ceiling.
type Limits struct {
	OneSuggestion  bool
	TwoSuggestions bool
	ConfiguredMax  int
}

// MaxResults computes how many candidates to request. First match wins:
// the one-suggestion capability forces 1, two-suggestions forces 2, then
// the configured maximum applies.
func MaxResults(l Limits) int {
	switch {
	case l.OneSuggestion:
		return 1
	case l.TwoSuggestions:
		return 2
	case l.ConfiguredMax > 0:
		return l.ConfiguredMax
	default:
		return DefaultMaxResults
	}
}

// CollapseToOne reports whether an already-limited candidate list should
// be cut down to its top entry. Undecorated candidates right after a
// member-access operator are noise; only then does the list collapse.
// A single decorated candidate keeps the whole list.
func CollapseToOne(results []provider.Candidate, preceding string) bool {
	for _, r := range results {
		if r.Kind != "" || r.Documentation != nil {
			return false
		}
	}
	return strings.HasSuffix(preceding, ".") || strings.HasSuffix(preceding, "::")
}
