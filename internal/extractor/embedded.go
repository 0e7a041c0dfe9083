package extractor

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

// maxTraversalDepth bounds the recursive search through decoded state blobs
// so degenerate payloads cannot run away.
const maxTraversalDepth = 5

var (
	hydrationVarRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)window\.__NUXT__\s*=\s*(\{.+?\})(?:;|\s*</script>)`),
		regexp.MustCompile(`(?s)__NUXT__\s*=\s*(\{.+?\})(?:;|\s*</script>)`),
		regexp.MustCompile(`(?s)window\.__NUXT__\.state\s*=\s*(\{.+?\})(?:;|\s*</script>)`),
	}

	inlineStateRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)window\.__INITIAL_STATE__\s*=\s*(\{.+?\});?\s*</script>`),
		regexp.MustCompile(`(?is)<script[^>]*>\s*var\s+(?:videos?|data)\s*=\s*(\[.+?\]);\s*</script>`),
		regexp.MustCompile(`(?is)<script[^>]+type="application/ld\+json"[^>]*>(\{.+?\})</script>`),
	}

	undefinedRegex = regexp.MustCompile(`\bundefined\b`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// Keys whose values are worth recursing into when hunting for records.
var containerKeys = map[string]struct{}{
	"videos":        {},
	"items":         {},
	"results":       {},
	"data":          {},
	"hentai_videos": {},
	"state":         {},
}

var thumbnailKeys = []string{"cover_url", "thumbnail", "poster_url", "cover"}

// FromHydration pulls previews out of the framework hydration payload: the
// dedicated data script block first, then the legacy global assignments.
// Malformed fragments are skipped; partial success accumulates.
func FromHydration(doc *goquery.Document, html string, limit int) []models.VideoPreview {
	var results []models.VideoPreview

	if doc != nil {
		doc.Find(`script#__NUXT_DATA__`).Each(func(_ int, s *goquery.Selection) {
			results = append(results, decodeAndCollect(s.Text())...)
		})
	}

	for _, re := range hydrationVarRegexes {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			results = append(results, decodeAndCollect(m[1])...)
		}
	}

	results = dedupePreviews(results)
	if len(results) > 0 {
		logger.Log.Debug().Int("previews", len(results)).Msg("hydration payload yielded previews")
	}
	return capResults(results, limit)
}

// FromInlineState tries the looser embedded-data shapes: a generic initial
// state variable, inline data arrays and JSON-LD blocks.
func FromInlineState(html string, limit int) []models.VideoPreview {
	var results []models.VideoPreview

	for _, re := range inlineStateRegexes {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			results = append(results, decodeAndCollect(m[1])...)
		}
	}

	results = dedupePreviews(results)
	if len(results) > 0 {
		logger.Log.Debug().Int("previews", len(results)).Msg("inline state yielded previews")
	}
	return capResults(results, limit)
}

// decodeAndCollect parses one blob, repairing JS-only literals first. These
// blobs are not always strict JSON; a fragment that still fails to decode is
// dropped silently.
func decodeAndCollect(blob string) []models.VideoPreview {
	fixed := undefinedRegex.ReplaceAllString(blob, "null")

	var data any
	if err := json.Unmarshal([]byte(fixed), &data); err != nil {
		return nil
	}
	return collectRecords(data, maxTraversalDepth)
}

// collectRecords walks a decoded blob looking for record-shaped nodes,
// recursing only into container keys and array elements, spending one depth
// unit per level.
func collectRecords(data any, depth int) []models.VideoPreview {
	if depth <= 0 {
		return nil
	}

	var results []models.VideoPreview

	switch v := data.(type) {
	case map[string]any:
		if preview, ok := recordFromMap(v); ok {
			results = append(results, preview)
		}
		for key, value := range v {
			if _, recurse := containerKeys[key]; recurse {
				results = append(results, collectRecords(value, depth-1)...)
			}
		}
	case []any:
		for _, item := range v {
			results = append(results, collectRecords(item, depth-1)...)
		}
	}

	return results
}

// recordFromMap accepts a node when it carries a numeric identity plus at
// least a title or a thumbnail.
func recordFromMap(m map[string]any) (models.VideoPreview, bool) {
	id := idFromValue(m["id"])
	if id == "" {
		id = idFromValue(m["video_id"])
	}
	if id == "" {
		if slug := idFromValue(m["slug"]); digitsOnly.MatchString(slug) {
			id = slug
		}
	}
	if id == "" || !digitsOnly.MatchString(id) {
		return models.VideoPreview{}, false
	}

	preview := models.VideoPreview{VideoID: id}
	if s, ok := m["name"].(string); ok && s != "" {
		preview.Title = s
	} else if s, ok := m["title"].(string); ok {
		preview.Title = s
	}
	for _, key := range thumbnailKeys {
		if s, ok := m[key].(string); ok && s != "" {
			preview.Thumbnail = s
			break
		}
	}

	if preview.Title == "" && preview.Thumbnail == "" {
		return models.VideoPreview{}, false
	}
	return preview, true
}

func idFromValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
	}
	return ""
}

func capResults(results []models.VideoPreview, limit int) []models.VideoPreview {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// dedupePreviews keeps the first preview per id, preserving order.
func dedupePreviews(previews []models.VideoPreview) []models.VideoPreview {
	seen := make(map[string]struct{}, len(previews))
	out := previews[:0]
	for _, p := range previews {
		if _, dup := seen[p.VideoID]; dup {
			continue
		}
		seen[p.VideoID] = struct{}{}
		out = append(out, p)
	}
	return out
}
