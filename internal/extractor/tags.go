package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

var (
	metaTagRegex = regexp.MustCompile(`(?i)<meta\s+property="article:tag"\s+content="([^"]+)"`)

	// class="single-video-tag" wraps each tag anchor; decorative spans
	// inside carry hash markers and counters, never the tag text.
	tagContainerRegex = regexp.MustCompile(`(?is)class="single-video-tag"[^>]*>.*?<a[^>]*>(.*?)</a>`)
	innerSpanRegex    = regexp.MustCompile(`(?is)<span[^>]*>.*?</span>`)
)

// Navigation and branding tokens that leak into the tag area.
var tagDenylist = map[string]struct{}{
	"Hanime1": {},
	"H動漫":     {},
	"線上看":     {},
	"免費":      {},
	"1080p":   {},
	"HD":      {},
	"登入":      {},
	"註冊":      {},
}

// Tags unions the meta-tag elements with the tag-container elements,
// deduplicates, subtracts the denylist and sorts for stable output.
func Tags(doc *goquery.Document, html string) []string {
	set := make(map[string]struct{})

	for _, m := range metaTagRegex.FindAllStringSubmatch(html, -1) {
		if tag := parse.StripMarkup(m[1]); tag != "" {
			set[tag] = struct{}{}
		}
	}

	if doc != nil {
		doc.Find(".single-video-tag a").Each(func(_ int, a *goquery.Selection) {
			a.Find("span").Remove()
			tag := cleanTagText(a.Text())
			if tag != "" && len([]rune(tag)) < 50 {
				set[tag] = struct{}{}
			}
		})
	} else {
		for _, m := range tagContainerRegex.FindAllStringSubmatch(html, -1) {
			inner := innerSpanRegex.ReplaceAllString(m[1], "")
			tag := parse.StripMarkup(inner)
			if tag != "" && len([]rune(tag)) < 50 {
				set[tag] = struct{}{}
			}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		if _, banned := tagDenylist[tag]; banned {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// cleanTagText normalizes text goquery already decoded: hash markers drop,
// non-breaking spaces become plain ones, whitespace runs collapse.
func cleanTagText(s string) string {
	s = strings.ReplaceAll(s, "#", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return parse.StripMarkup(s)
}
