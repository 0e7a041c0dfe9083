package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var thumbnailSteps = []step{
	// Social preview metas, both attribute orderings.
	reGroup(regexp.MustCompile(`(?i)<meta\s+property="og:image"\s+content="([^"]+)"`), 1),
	reGroup(regexp.MustCompile(`(?i)content="([^"]+)"\s+property="og:image"`), 1),
	reGroup(regexp.MustCompile(`(?i)poster["']?\s*[=:]\s*["']([^"']+)["']`), 1),
	reGroup(regexp.MustCompile(`(?i)<img[^>]+id="player-cover"[^>]+src="([^"]+)"`), 1),
	reGroup(regexp.MustCompile(`(?i)<img[^>]+class="[^"]*cover[^"]*"[^>]+src="([^"]+)"`), 1),
	reGroup(regexp.MustCompile(`(?i)data-poster="([^"]+)"`), 1),
}

// Thumbnail extracts the cover image URL. The DOM lookup runs first; the
// raw-HTML patterns cover documents goquery fails to assemble.
func Thumbnail(doc *goquery.Document, html string) string {
	if doc != nil {
		if content, exists := doc.Find(`meta[property="og:image"]`).Attr("content"); exists {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}

	if m, ok := firstMatch(html, thumbnailSteps...); ok {
		return m
	}
	return ""
}
