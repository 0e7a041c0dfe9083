package extractor

import (
	"regexp"

	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

var durationSteps = []step{
	reGroup(regexp.MustCompile(`(?i)duration["']?\s*[=:]\s*["']?(\d{1,2}:\d{2}(?::\d{2})?)`), 1),
	reGroup(regexp.MustCompile(`(?i)<span[^>]*class="[^"]*duration[^"]*"[^>]*>(\d{1,2}:\d{2}(?::\d{2})?)</span>`), 1),
	reGroup(regexp.MustCompile(`時長[：:]\s*(\d{1,2}:\d{2}(?::\d{2})?)`), 1),
	// Bare clock-shaped token anywhere in the document. Known to
	// false-positive on unrelated time-like fragments; kept last so the
	// contextual patterns above always win when present.
	reGroup(regexp.MustCompile(`(\d{1,2}:\d{2}(?::\d{2})?)`), 1),
}

// Duration extracts the runtime in seconds, 0 when nothing matches.
func Duration(html string) int {
	if m, ok := firstMatch(html, durationSteps...); ok {
		return parse.Duration(m)
	}
	return 0
}
