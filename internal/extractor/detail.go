package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

// ParseDetail runs every field chain over one detail document and assigns
// whatever comes back, including zero values and the uploader sentinel.
// There is no cross-field validation.
func ParseDetail(videoID, html string) models.Video {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Log.Debug().Err(err).Str("video_id", videoID).Msg("dom parse failed, regex tiers only")
		doc = nil
	}

	video := models.Video{
		VideoID:    videoID,
		Title:      Title(html),
		Views:      Views(html),
		Duration:   Duration(html),
		UploadDate: UploadDate(html),
		Thumbnail:  Thumbnail(doc, html),
		Uploader:   Uploader(html),
		Tags:       Tags(doc, html),
		MediaURL:   MediaURL(html),
	}

	logger.Log.Debug().
		Str("video_id", videoID).
		Str("title", video.Title).
		Int("views", video.Views).
		Int("tags", len(video.Tags)).
		Bool("has_media", video.MediaURL != "").
		Msg("detail parsed")

	return video
}
