package extractor

import (
	"html"
	"regexp"
	"strings"
)

// Stage one: quoted URL literals inside inline script, manifest extension
// before direct file, double quotes before single.
var mediaLiteralRegexes = []*regexp.Regexp{
	regexp.MustCompile(`"(https?://[^"]+\.m3u8[^"]*)"`),
	regexp.MustCompile(`'(https?://[^']+\.m3u8[^']*)'`),
	regexp.MustCompile(`url:\s*"(https?://[^"]+\.m3u8[^"]*)"`),
	regexp.MustCompile(`"(https?://[^"]+\.mp4[^"]*)"`),
	regexp.MustCompile(`'(https?://[^']+\.mp4[^']*)'`),
}

// Stage two: labeled source attributes and bare manifest/file URLs.
var mediaFallbackSteps = []step{
	reGroup(regexp.MustCompile(`(?i)["']?(?:src|source)["']?\s*[=:]\s*["']([^"']+\.m3u8[^"']*)["']`), 1),
	reGroup(regexp.MustCompile(`(?i)https?://[^\s"'<>]+\.m3u8[^\s"'<>]*`), 0),
	reGroup(regexp.MustCompile(`(?i)https?://[^\s"'<>]+\.mp4[^\s"'<>]*`), 0),
}

var unicodeEscapeRegex = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// MediaURL recovers the direct stream or file URL. Script blobs escape URLs
// three different ways, so each candidate goes through unicode-escape
// decoding, backslash-slash repair and entity unescaping before the scheme
// check.
func MediaURL(htmlDoc string) string {
	for _, re := range mediaLiteralRegexes {
		for _, m := range re.FindAllStringSubmatch(htmlDoc, -1) {
			u := normalizeMediaURL(m[1])
			if strings.HasPrefix(u, "http") {
				return u
			}
		}
	}

	if m, ok := firstMatch(htmlDoc, mediaFallbackSteps...); ok {
		return normalizeMediaURL(m)
	}

	return ""
}

func normalizeMediaURL(u string) string {
	u = decodeUnicodeEscapes(u)
	u = strings.ReplaceAll(u, `\/`, "/")
	return html.UnescapeString(u)
}

// decodeUnicodeEscapes turns JS \uXXXX sequences into their runes.
func decodeUnicodeEscapes(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	return unicodeEscapeRegex.ReplaceAllStringFunc(s, func(m string) string {
		var r rune
		for _, c := range m[2:] {
			r = r<<4 + rune(hexVal(byte(c)))
		}
		return string(r)
	})
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
