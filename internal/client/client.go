// Package client orchestrates the extraction tiers per operation: which
// document to fetch, which strategies to try in which order, and how to
// degrade when a tier yields nothing. All failures fail closed: callers get
// nil or an empty slice, never an error.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vmoranv/hanime-scraper/internal/extractor"
	"github.com/vmoranv/hanime-scraper/internal/fetch"
	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

const defaultListingLimit = 20

type Client struct {
	baseURL string
	fetcher *fetch.Fetcher

	// guessed suppresses re-trying an id the random fallback already
	// burned an attempt on during this client's lifetime.
	guessed *guessFilter
}

func New(fetcher *fetch.Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = models.BaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		guessed: newGuessFilter(10000, 0.01),
	}
}

func (c *Client) watchURL(videoID string) string {
	return c.baseURL + "/watch?v=" + videoID
}

// GetVideo fetches and parses one detail page. Nil means the fetch failed;
// a non-nil record is populated best-effort and fields may be zero.
func (c *Client) GetVideo(ctx context.Context, videoID string) *models.Video {
	html, ok := c.fetcher.Fetch(ctx, c.watchURL(videoID))
	if !ok {
		logger.Log.Debug().Str("video_id", videoID).Msg("detail fetch failed")
		return nil
	}

	video := extractor.ParseDetail(videoID, html)
	return &video
}

// GetLatest fetches the front page and tries the strategy tiers in order:
// hydration payload, inline state, chunk-bounded markup parsing. Each tier
// runs only when the previous one yielded nothing.
func (c *Client) GetLatest(ctx context.Context, limit int) []models.VideoPreview {
	if limit <= 0 {
		limit = defaultListingLimit
	}

	html, ok := c.fetcher.Fetch(ctx, c.baseURL)
	if !ok {
		logger.Log.Warn().Msg("listing fetch failed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc = nil
	}

	if previews := extractor.FromHydration(doc, html, limit); len(previews) > 0 {
		logger.Log.Info().Int("count", len(previews)).Msg("listing from hydration payload")
		return previews
	}
	if previews := extractor.FromInlineState(html, limit); len(previews) > 0 {
		logger.Log.Info().Int("count", len(previews)).Msg("listing from inline state")
		return previews
	}

	previews := extractor.ParseListing(html, limit)
	logger.Log.Info().Int("count", len(previews)).Msg("listing from markup")
	return previews
}

// sortOptions are the orderings the site's search page accepts. "latest" is
// the site default and stays off the URL.
var sortOptions = map[string]struct{}{
	"latest": {},
	"views":  {},
	"likes":  {},
}

type SearchOptions struct {
	Query string
	Genre string
	Sort  string // see sortOptions
	Page  int
	Limit int
}

// Search fetches a search results page and parses its listing markup.
func (c *Client) Search(ctx context.Context, opts SearchOptions) []models.VideoPreview {
	if opts.Limit <= 0 {
		opts.Limit = defaultListingLimit
	}

	html, ok := c.fetcher.Fetch(ctx, c.searchURL(opts))
	if !ok {
		return nil
	}
	return extractor.ParseListing(html, opts.Limit)
}

// GetByGenre is Search constrained to one genre.
func (c *Client) GetByGenre(ctx context.Context, genre string, page, limit int) []models.VideoPreview {
	return c.Search(ctx, SearchOptions{Genre: genre, Page: page, Limit: limit})
}

// WalkLatest pages through search results, calling fn per preview until fn
// returns false, a page comes back empty, or maxPages is exhausted.
func (c *Client) WalkLatest(ctx context.Context, maxPages, perPage int, fn func(models.VideoPreview) bool) {
	for page := 1; page <= maxPages; page++ {
		previews := c.Search(ctx, SearchOptions{Page: page, Limit: perPage})
		if len(previews) == 0 {
			return
		}
		for _, p := range previews {
			if !fn(p) {
				return
			}
		}
	}
}

// UpgradePreview turns a preview into a full record by re-fetching the
// detail page. Preview fields seed the record first; a successful fetch
// overwrites them wholesale.
func (c *Client) UpgradePreview(ctx context.Context, preview models.VideoPreview) *models.Video {
	if full := c.GetVideo(ctx, preview.VideoID); full != nil {
		return full
	}
	return &models.Video{
		VideoID:   preview.VideoID,
		Title:     preview.Title,
		Thumbnail: preview.Thumbnail,
		Duration:  preview.Duration(),
		Views:     preview.Views(),
	}
}

// searchURL builds {base}/search with query/genre/sort/page params; default
// sort and page one stay off the URL.
func (c *Client) searchURL(opts SearchOptions) string {
	params := url.Values{}
	if opts.Query != "" {
		params.Set("query", opts.Query)
	}
	if opts.Genre != "" {
		params.Set("genre", opts.Genre)
	}
	if _, known := sortOptions[opts.Sort]; known && opts.Sort != "latest" {
		params.Set("sort", opts.Sort)
	}
	if opts.Page > 1 {
		params.Set("page", fmt.Sprint(opts.Page))
	}

	if len(params) == 0 {
		return c.baseURL
	}
	return c.baseURL + "/search?" + params.Encode()
}
