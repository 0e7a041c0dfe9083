package extractor

import (
	"regexp"
	"strings"

	"github.com/vmoranv/hanime-scraper/pkg/models"
	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

var (
	// The artist anchor is the stable signal; DOTALL because the name can
	// sit on the line after the opening tag.
	artistAnchorRegex = regexp.MustCompile(`(?is)id="video-artist-name"[^>]*>(.*?)</a>`)

	// Many titles open with "[Artist] ...".
	bracketTitleRegex = regexp.MustCompile(`(?i)<h3\s+id="shareBtn-title"[^>]*>\s*\[([^\]]+)\]`)

	// Description block: "Brand / ブランド: Name".
	brandFieldRegex = regexp.MustCompile(`(?i)(?:Brand|Circle|Artist)\s*/\s*(?:ブランド|サークル|作者)[^:]*:\s*([^\n<]+)`)
)

// Markers that show up inside title brackets but are never an artist name.
var nonNameMarkers = []string{"中文字幕", "無碼"}

// Uploader runs three escalating strategies and falls back to the explicit
// unknown sentinel, never to "".
func Uploader(html string) string {
	if m := artistAnchorRegex.FindStringSubmatch(html); m != nil {
		if name := parse.StripMarkup(m[1]); name != "" {
			return name
		}
	}

	if m := bracketTitleRegex.FindStringSubmatch(html); m != nil {
		name := parse.StripMarkup(m[1])
		if name != "" && !containsAny(name, nonNameMarkers) {
			return name
		}
	}

	if m := brandFieldRegex.FindStringSubmatch(html); m != nil {
		if name := parse.StripMarkup(m[1]); name != "" {
			return name
		}
	}

	return models.UnknownUploader
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
