// Package extractor recovers structured video metadata from the raw HTML of
// detail and listing pages. The site renders most content client-side, so
// every field is extracted through an ordered chain of candidate strategies:
// DOM selectors and labeled patterns first, looser shapes after, first
// plausible match wins. A chain that exhausts all candidates returns its
// documented zero value, never an error.
package extractor

import "regexp"

// step is one candidate strategy in a field's chain.
type step func(html string) (string, bool)

// firstMatch runs steps in priority order and returns the first hit.
func firstMatch(html string, steps ...step) (string, bool) {
	for _, s := range steps {
		if v, ok := s(html); ok {
			return v, true
		}
	}
	return "", false
}

// reGroup matches re and yields capture group n (0 for the whole match).
func reGroup(re *regexp.Regexp, n int) step {
	return func(html string) (string, bool) {
		m := re.FindStringSubmatch(html)
		if m == nil || n >= len(m) || m[n] == "" {
			return "", false
		}
		return m[n], true
	}
}
