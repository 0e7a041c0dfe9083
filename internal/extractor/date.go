package extractor

import "regexp"

var uploadDateRegex = regexp.MustCompile(`(\d{4}[-/]\d{1,2}[-/]\d{1,2})`)

// UploadDate returns the first date-shaped token in the document. The value
// is a free-text token; calendar validity is not checked.
func UploadDate(html string) string {
	if m := uploadDateRegex.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}
