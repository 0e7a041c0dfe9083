package extractor

import (
	"regexp"
	"strings"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

// maxChunkSpan caps a listing item's search neighborhood. Listing pages
// repeat each watch link (thumbnail anchor and title anchor), and searching
// the whole document would let one card's title bleed into its neighbor's.
const maxChunkSpan = 3000

var (
	watchLinkRegex  = regexp.MustCompile(`href="(/watch\?v=(\d+))"`)
	imgAltRegex     = regexp.MustCompile(`(?i)alt="([^"]+)"`)
	titleClassRegex = regexp.MustCompile(`(?i)class="[^"]*(?:card-mobile-title|home-rows-videos-title|title)[^"]*"[^>]*>([^<]+)<`)
	imgSrcRegex     = regexp.MustCompile(`(?i)<img[^>]+(?:src|data-src)="([^"]+)"`)
)

// ParseListing extracts previews from a listing page using chunk-bounded
// neighborhoods. For each first occurrence of an id the neighborhood runs
// from just after its match to the start of the next different id (document
// end for the last), capped at maxChunkSpan. Later occurrences of an id
// already resolved are skipped so the repeated anchor never overwrites the
// first, higher-confidence extraction.
func ParseListing(html string, limit int) []models.VideoPreview {
	matches := watchLinkRegex.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return nil
	}

	var previews []models.VideoPreview
	seen := make(map[string]struct{})

	for i, m := range matches {
		id := html[m[4]:m[5]]
		if _, done := seen[id]; done {
			continue
		}
		seen[id] = struct{}{}

		start := m[1]
		end := len(html)
		for _, next := range matches[i+1:] {
			if html[next[4]:next[5]] != id {
				end = next[0]
				break
			}
		}
		if end > start+maxChunkSpan {
			end = start + maxChunkSpan
		}
		chunk := html[start:end]

		previews = append(previews, parseChunk(id, chunk))
		if limit > 0 && len(previews) >= limit {
			break
		}
	}

	logger.Log.Debug().Int("previews", len(previews)).Msg("listing parsed")
	return previews
}

// parseChunk looks only inside one item's neighborhood. The image alt text
// is the best title signal; the title-class element is second.
func parseChunk(id, chunk string) models.VideoPreview {
	preview := models.VideoPreview{VideoID: id}

	for _, m := range imgAltRegex.FindAllStringSubmatch(chunk, -1) {
		alt := parse.StripMarkup(m[1])
		if alt == "" || strings.Contains(strings.ToLower(alt), "user") {
			continue
		}
		preview.Title = alt
		break
	}
	if preview.Title == "" {
		if m := titleClassRegex.FindStringSubmatch(chunk); m != nil {
			preview.Title = parse.StripMarkup(m[1])
		}
	}

	if m := imgSrcRegex.FindStringSubmatch(chunk); m != nil {
		preview.Thumbnail = m[1]
	}

	return preview
}
