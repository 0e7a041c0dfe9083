package client

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

// randomAttempts is how many id guesses the fallback burns before giving up.
const randomAttempts = 5

// guessRanges maps each attempt to an id range, newest ids first. The site's
// listing is often unreachable without running its scripts, so guessing ids
// is the accepted last resort.
var guessRanges = [randomAttempts]struct{ lo, hi int }{
	{100000, 200000},
	{100000, 200000},
	{50000, 100000},
	{50000, 100000},
	{10000, 50000},
}

// GetRandom picks uniformly from the front-page listing when one can be
// parsed, otherwise guesses ids across decreasing ranges and accepts the
// first guess whose detail page yields a non-empty title.
func (c *Client) GetRandom(ctx context.Context) *models.Video {
	log := logger.Log

	if previews := c.GetLatest(ctx, defaultListingLimit); len(previews) > 0 {
		pick := previews[rand.Intn(len(previews))]
		return c.GetVideo(ctx, pick.VideoID)
	}

	for attempt := 0; attempt < randomAttempts; attempt++ {
		id := c.guessID(guessRanges[attempt].lo, guessRanges[attempt].hi)

		log.Info().Str("video_id", id).Int("attempt", attempt+1).Msg("trying random video id")
		if video := c.GetVideo(ctx, id); video != nil && video.Title != "" {
			return video
		}
	}

	log.Warn().Int("attempts", randomAttempts).Msg("random video fallback exhausted")
	return nil
}

// guessID draws an id from [lo, hi), redrawing once when the bloom filter
// says the id was probably tried before.
func (c *Client) guessID(lo, hi int) string {
	id := strconv.Itoa(lo + rand.Intn(hi-lo))
	if c.guessed.MayContain(id) {
		id = strconv.Itoa(lo + rand.Intn(hi-lo))
	}
	c.guessed.Add(id)
	return id
}
