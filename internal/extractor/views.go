package extractor

import (
	"regexp"

	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

// The whole matched substring goes into the magnitude parser, not just the
// number: the 万/萬 marker sits next to the digits and must survive.
var viewsSteps = []step{
	reGroup(regexp.MustCompile(`觀看次數[：:]\s*[\d,.]+\s*(?:万|萬)?次`), 0),
	reGroup(regexp.MustCompile(`[\d,.]+\s*(?:万|萬)\s*次`), 0),
	reGroup(regexp.MustCompile(`[\d,]+\s*次(?:觀看|观看|瀏覽)?`), 0),
	reGroup(regexp.MustCompile(`(?i)views?[：:]\s*[\d,.]+`), 0),
}

// Views extracts the view count, 0 when nothing count-shaped is found.
func Views(html string) int {
	if m, ok := firstMatch(html, viewsSteps...); ok {
		return parse.Views(m)
	}
	return 0
}
