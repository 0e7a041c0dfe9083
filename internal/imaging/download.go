// Package imaging is the thin collaborator the presentation layer uses to
// pull thumbnail bytes. The core never touches image content.
package imaging

import (
	"context"

	"github.com/vmoranv/hanime-scraper/internal/fetch"
)

type Downloader struct {
	fetcher *fetch.Fetcher
}

func NewDownloader(fetcher *fetch.Fetcher) *Downloader {
	return &Downloader{fetcher: fetcher}
}

// Download returns the image bytes, or nil on any transport problem.
func (d *Downloader) Download(ctx context.Context, imageURL string) []byte {
	if imageURL == "" {
		return nil
	}
	body, ok := d.fetcher.FetchBytes(ctx, imageURL)
	if !ok {
		return nil
	}
	return body
}
