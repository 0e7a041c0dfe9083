package extractor

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	os.Exit(m.Run())
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

const detailHTML = `<!DOCTYPE html>
<html><head>
<title>[StarryMomoko] Ellen Oral - Hanime1.me 線上看</title>
<meta property="og:image" content="https://img.example.test/cover.jpg">
<meta property="article:tag" content="3DCG">
<meta property="article:tag" content="MMD">
</head><body>
<h3 class="video-details-title">[StarryMomoko] Ellen Oral</h3>
<h3 id="shareBtn-title">[StarryMomoko] Ellen Oral</h3>
<a id="video-artist-name" href="/search?query=StarryMomoko">
StarryMomoko
</a>
<div>觀看次數：9.7万次  2026-01-16</div>
<span class="video-duration">02:59</span>
<div class="single-video-tag"><a href="/search?genre=3DCG"><span>#</span>&nbsp;3DCG</a></div>
<div class="single-video-tag"><a href="/search?query=MMD">MMD&nbsp;<span>(12)</span></a></div>
<div class="single-video-tag"><a href="/login">登入</a></div>
<script>const source = "https://cdn.example.test/stream/video.m3u8?sig=abc&amp;exp=9";</script>
</body></html>`

func TestParseDetail(t *testing.T) {
	video := ParseDetail("12345", detailHTML)

	if video.VideoID != "12345" {
		t.Errorf("VideoID = %q", video.VideoID)
	}
	if video.Title != "[StarryMomoko] Ellen Oral" {
		t.Errorf("Title = %q", video.Title)
	}
	if video.Views != 97000 {
		t.Errorf("Views = %d, want 97000", video.Views)
	}
	if video.Duration != 179 {
		t.Errorf("Duration = %d, want 179", video.Duration)
	}
	if video.UploadDate != "2026-01-16" {
		t.Errorf("UploadDate = %q", video.UploadDate)
	}
	if video.Thumbnail != "https://img.example.test/cover.jpg" {
		t.Errorf("Thumbnail = %q", video.Thumbnail)
	}
	if video.Uploader != "StarryMomoko" {
		t.Errorf("Uploader = %q", video.Uploader)
	}
	if want := []string{"3DCG", "MMD"}; !reflect.DeepEqual(video.Tags, want) {
		t.Errorf("Tags = %v, want %v", video.Tags, want)
	}
	if video.MediaURL != "https://cdn.example.test/stream/video.m3u8?sig=abc&exp=9" {
		t.Errorf("MediaURL = %q", video.MediaURL)
	}
}

func TestParseDetailEmptyDocument(t *testing.T) {
	video := ParseDetail("1", "")

	if video.Title != "" || video.Views != 0 || video.Duration != 0 {
		t.Errorf("expected zero fields, got %+v", video)
	}
	if video.Uploader != models.UnknownUploader {
		t.Errorf("Uploader = %q, want unknown sentinel", video.Uploader)
	}
}

func TestTitleFallbackStripsSiteSuffix(t *testing.T) {
	html := `<html><head><title>Some Video - Hanime1.me</title></head></html>`
	if got := Title(html); got != "Some Video" {
		t.Errorf("Title = %q, want %q", got, "Some Video")
	}
}

func TestViewsFallbackPatterns(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected int
	}{
		{"labeled", "觀看次數：9.7万次", 97000},
		{"wan with unit", "<span>2.5萬 次</span>", 25000},
		{"plain with suffix", "97000次觀看", 97000},
		{"english label", "Views: 1,234", 1234},
		{"nothing", "<div>no numbers here</div>", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Views(tt.html); got != tt.expected {
				t.Errorf("Views = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDurationContextualBeatsBare(t *testing.T) {
	html := `<div>posted at 11:45</div><span class="duration">23:15</span>`
	if got := Duration(html); got != 23*60+15 {
		t.Errorf("Duration = %d, want %d", got, 23*60+15)
	}
}

// The bare clock-token fallback is an accepted-risk heuristic: with no
// contextual pattern present, any clock-shaped substring wins.
func TestDurationBareFallback(t *testing.T) {
	if got := Duration(`<footer>last sync 1:23</footer>`); got != 83 {
		t.Errorf("Duration = %d, want 83", got)
	}
}

func TestUploaderStrategies(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			"artist anchor",
			`<a id="video-artist-name" href="/x">Alice</a>`,
			"Alice",
		},
		{
			"bracket title prefix",
			`<h3 id="shareBtn-title">[Bob] some video</h3>`,
			"Bob",
		},
		{
			"bracket prefix rejects subtitle marker",
			`<h3 id="shareBtn-title">[中文字幕] some video</h3>`,
			models.UnknownUploader,
		},
		{
			"bracket prefix rejects uncensored marker",
			`<h3 id="shareBtn-title">[無碼] some video</h3>`,
			models.UnknownUploader,
		},
		{
			"brand description field",
			`Title / タイトル: x
Brand / ブランド: StarryMomoko`,
			"StarryMomoko",
		},
		{
			"nothing found",
			`<div>anonymous</div>`,
			models.UnknownUploader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Uploader(tt.html); got != tt.expected {
				t.Errorf("Uploader = %q, want %q", got, tt.expected)
			}
		})
	}
}

// The same literal tag arriving through the meta strategy and the container
// strategy must collapse to a single entry.
func TestTagsDeduplicate(t *testing.T) {
	html := `<html><head><meta property="article:tag" content="3DCG"></head>
<body><div class="single-video-tag"><a href="/x"><span>#</span>&nbsp;3DCG</a></div></body></html>`

	got := Tags(mustDoc(t, html), html)
	if want := []string{"3DCG"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestTagsDenylist(t *testing.T) {
	html := `<html><body>
<div class="single-video-tag"><a href="/a">NTR</a></div>
<div class="single-video-tag"><a href="/b">Hanime1</a></div>
<div class="single-video-tag"><a href="/c">HD</a></div>
</body></html>`

	got := Tags(mustDoc(t, html), html)
	if want := []string{"NTR"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestTagsRegexFallbackWithoutDOM(t *testing.T) {
	html := `<div class="single-video-tag"><a href="/x">MMD&nbsp;<span>(3)</span></a></div>`

	got := Tags(nil, html)
	if want := []string{"MMD"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestMediaURL(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			"manifest beats direct file",
			`<script>a = "https://cdn.test/v.mp4"; b = "https://cdn.test/v.m3u8";</script>`,
			"https://cdn.test/v.m3u8",
		},
		{
			"single quoted literal",
			`<script>play('https://cdn.test/v.m3u8?q=1')</script>`,
			"https://cdn.test/v.m3u8?q=1",
		},
		{
			"escaped slashes and entities repaired",
			`<script>s = "https://cdn.test\/path\/v.mp4?a=1&amp;b=2";</script>`,
			"https://cdn.test/path/v.mp4?a=1&b=2",
		},
		{
			"unicode escapes decoded",
			"<script>s = \"https://cdn.test/a\\u002Fb.m3u8\";</script>",
			"https://cdn.test/a/b.m3u8",
		},
		{
			"labeled source fallback",
			`<video src="/relative/v.m3u8"></video>`,
			"/relative/v.m3u8",
		},
		{
			"nothing",
			`<div>no media</div>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MediaURL(tt.html); got != tt.expected {
				t.Errorf("MediaURL = %q, want %q", got, tt.expected)
			}
		})
	}
}
