package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
)

const (
	// Keys live under their own namespace so the scraper can share a redis
	// instance with other services.
	pageKeyPrefix = "scrape:page:"

	// Below this a cache entry expires faster than the page is likely to
	// be re-requested, so the TTL is floored.
	minPageTTL = time.Minute

	redisPingTimeout = 3 * time.Second
)

// PageCache keeps raw fetched documents in redis for a short TTL so repeated
// lookups of the same page (random picks, preview upgrades) skip the
// network. Parsed records are never cached.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPageCache(redisURL string, ttl time.Duration) (*PageCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl < minPageTTL {
		ttl = minPageTTL
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &PageCache{client: client, ttl: ttl}, nil
}

func (c *PageCache) Get(ctx context.Context, pageURL string) (string, bool) {
	html, err := c.client.Get(ctx, pageKey(pageURL)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logger.Log.Debug().Err(err).Str("url", pageURL).Msg("page cache get error")
		return "", false
	}
	return html, true
}

func (c *PageCache) Set(ctx context.Context, pageURL, html string) error {
	return c.client.Set(ctx, pageKey(pageURL), html, c.ttl).Err()
}

func (c *PageCache) Close() error {
	return c.client.Close()
}

// pageKey hashes the URL so key length stays fixed no matter how long the
// query string gets. A trailing slash addresses the same page.
func pageKey(pageURL string) string {
	sum := sha256.Sum256([]byte(strings.TrimRight(pageURL, "/")))
	return pageKeyPrefix + hex.EncodeToString(sum[:])
}
