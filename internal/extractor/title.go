package extractor

import (
	"regexp"
	"strings"

	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

var (
	detailsTitleRegex = regexp.MustCompile(`(?i)<h3[^>]*class="[^"]*video-details-title[^"]*"[^>]*>([^<]+)</h3>`)
	docTitleRegex     = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)
	siteSuffixRegex   = regexp.MustCompile(`(?i)\s*[-|]\s*Hanime1.*$`)
)

// Title prefers the details heading; the document <title> is the fallback,
// with the trailing site-name suffix stripped.
func Title(html string) string {
	if m := detailsTitleRegex.FindStringSubmatch(html); m != nil {
		return parse.StripMarkup(m[1])
	}

	if m := docTitleRegex.FindStringSubmatch(html); m != nil {
		title := parse.StripMarkup(m[1])
		return strings.TrimSpace(siteSuffixRegex.ReplaceAllString(title, ""))
	}

	return ""
}
