// Package namematch resolves requested names against a known name set,
// either by nearest edit distance or by * wildcard expansion.
package namematch

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

// IsPattern reports whether a requested name is a wildcard pattern.
func IsPattern(name string) bool {
	return strings.Contains(name, "*")
}

// Distance returns the unit-cost edit distance (insertions, deletions,
// substitutions) between two strings.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Nearest returns the known name closest to the requested one by edit
// distance, comparing case-folded and trimmed forms. Ties go to the first
// name in the supplied order, so callers that need reproducible results
// must pass a sorted slice. There is no distance cutoff; ok is false only
// when the known set is empty.
func Nearest(requested string, known []string) (best string, ok bool) {
	if len(known) == 0 {
		return "", false
	}

	needle := strings.ToLower(strings.TrimSpace(requested))
	bestDistance := -1
	for _, candidate := range known {
		d := Distance(needle, strings.ToLower(strings.TrimSpace(candidate)))
		if bestDistance < 0 || d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best, true
}

// Expand returns the subset of known names matching a * wildcard pattern.
// Each * matches any run of characters, including the empty run; literal
// segments match exactly and case-sensitively, with regexp metacharacters
// escaped. The match is anchored to the full string.
func Expand(pattern string, known []string) []string {
	segments := strings.Split(pattern, "*")
	quoted := make([]string, len(segments))
	for i, seg := range segments {
		quoted[i] = regexp.QuoteMeta(seg)
	}

	re, err := regexp.Compile("^" + strings.Join(quoted, ".*") + "$")
	if err != nil {
		return nil
	}

	var matches []string
	for _, candidate := range known {
		if re.MatchString(candidate) {
			matches = append(matches, candidate)
		}
	}
	return matches
}
