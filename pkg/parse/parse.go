// Package parse holds the primitive string<->number conversions shared by the
// extraction pipeline: view counts with 万/萬 magnitude suffixes, clock-style
// durations and markup stripping. Every function here degrades to a zero
// value on malformed input instead of returning an error.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRegex      = regexp.MustCompile(`[\d,.]+`)
	scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRegex         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)

	watchIDRegex   = regexp.MustCompile(`watch\?v=(\d+)`)
	videoPathRegex = regexp.MustCompile(`/video/(\d+)`)
	anyDigitsRegex = regexp.MustCompile(`(\d{4,})`)
	digitsRegex    = regexp.MustCompile(`^\d+$`)

	illegalFileChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	controlChars     = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// Views parses a human-readable view count. "9.7万次" and "9.7萬次" both give
// 97000, "9,700次" gives 9700. Unparseable input gives 0.
func Views(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	hasWan := strings.Contains(s, "万") || strings.Contains(s, "萬")

	numStr := numberRegex.FindString(s)
	if numStr == "" {
		return 0
	}
	numStr = strings.ReplaceAll(numStr, ",", "")

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0
	}
	if hasWan {
		num *= 10000
	}
	return int(num)
}

// FormatViews renders a count for display. Lossy: 97049 becomes "9.7万".
func FormatViews(views int) string {
	switch {
	case views >= 10000:
		return fmt.Sprintf("%.1f万", float64(views)/10000)
	case views >= 1000:
		return fmt.Sprintf("%.1fk", float64(views)/1000)
	default:
		return strconv.Itoa(views)
	}
}

// Duration parses "MM:SS" or "HH:MM:SS" into seconds. Any other token count
// or a non-numeric part gives 0.
func Duration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 2:
		return nums[0]*60 + nums[1]
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	default:
		return 0
	}
}

// FormatDuration renders seconds as zero-padded "MM:SS", or "HH:MM:SS" when
// the duration reaches an hour. Zero and negative values give "00:00".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// StripMarkup reduces an HTML fragment to plain text: script/style blocks go
// first (with their content), then remaining tags, then a fixed entity set is
// decoded. Entity decoding must run after tag stripping so that encoded
// angle brackets never come back as markup.
func StripMarkup(html string) string {
	if html == "" {
		return ""
	}

	html = scriptBlockRegex.ReplaceAllString(html, "")
	html = styleBlockRegex.ReplaceAllString(html, "")
	html = tagRegex.ReplaceAllString(html, "")

	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
	html = replacer.Replace(html)

	html = whitespaceRegex.ReplaceAllString(html, " ")
	return strings.TrimSpace(html)
}

// VideoID pulls a numeric video id out of a URL or a bare id string. Returns
// "" when nothing id-shaped is present.
func VideoID(urlOrID string) string {
	urlOrID = strings.TrimSpace(urlOrID)
	if urlOrID == "" {
		return ""
	}

	if digitsRegex.MatchString(urlOrID) {
		return urlOrID
	}
	if m := watchIDRegex.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	if m := videoPathRegex.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	if m := anyDigitsRegex.FindStringSubmatch(urlOrID); m != nil {
		return m[1]
	}
	return ""
}

// SanitizeFilename replaces characters that are illegal in file names,
// removes control characters and caps the length at 200 runes.
func SanitizeFilename(name string) string {
	name = illegalFileChars.ReplaceAllString(name, "_")
	name = controlChars.ReplaceAllString(name, "")

	runes := []rune(name)
	if len(runes) > 200 {
		name = string(runes[:200])
	}
	return strings.TrimSpace(name)
}
