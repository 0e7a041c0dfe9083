// Package models defines the value objects the scraper hands to its callers.
// Both types are built fresh per fetch and never persisted.
package models

import (
	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

const (
	BaseURL        = "https://hanime1.me"
	WatchURLPrefix = BaseURL + "/watch?v="

	// UnknownUploader marks an uploader extraction that ran and found
	// nothing. Callers must treat it differently from "": empty means the
	// field was never populated.
	UnknownUploader = "未知上传者"
)

// Video is the fully fetched, single-video result. VideoID is immutable once
// the record exists; every other field is overwritten wholesale on each
// successful fetch.
type Video struct {
	VideoID    string   `json:"video_id"`
	Title      string   `json:"title"`
	Views      int      `json:"views"`
	Duration   int      `json:"duration"` // seconds
	UploadDate string   `json:"upload_date"`
	Thumbnail  string   `json:"thumbnail"`
	Uploader   string   `json:"uploader"`
	Tags       []string `json:"tags"`
	MediaURL   string   `json:"media_url"` // m3u8 or mp4
}

func (v *Video) URL() string {
	return WatchURLPrefix + v.VideoID
}

func (v *Video) ViewsFormatted() string {
	return parse.FormatViews(v.Views)
}

func (v *Video) DurationFormatted() string {
	return parse.FormatDuration(v.Duration)
}

// ToMap is the plain-data projection consumed by the presentation layer.
func (v *Video) ToMap() map[string]any {
	return map[string]any{
		"video_id":           v.VideoID,
		"title":              v.Title,
		"url":                v.URL(),
		"views":              v.Views,
		"views_formatted":    v.ViewsFormatted(),
		"duration":           v.Duration,
		"duration_formatted": v.DurationFormatted(),
		"upload_date":        v.UploadDate,
		"thumbnail":          v.Thumbnail,
		"uploader":           v.Uploader,
		"tags":               v.Tags,
		"media_url":          v.MediaURL,
	}
}

// VideoPreview is the partial listing-row view of the same identity. Duration
// and views stay raw here because listing rows carry abbreviated display
// strings; parsing happens on demand through the accessors. Upgrading a
// preview to a full Video requires re-fetching the detail page by id.
type VideoPreview struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	DurationRaw string `json:"duration"`
	ViewsRaw    string `json:"views"`
}

func (p *VideoPreview) URL() string {
	return WatchURLPrefix + p.VideoID
}

func (p *VideoPreview) Duration() int {
	return parse.Duration(p.DurationRaw)
}

func (p *VideoPreview) Views() int {
	return parse.Views(p.ViewsRaw)
}

func (p *VideoPreview) ToMap() map[string]any {
	return map[string]any{
		"video_id":  p.VideoID,
		"title":     p.Title,
		"url":       p.URL(),
		"thumbnail": p.Thumbnail,
		"duration":  p.DurationRaw,
		"views":     p.ViewsRaw,
	}
}
