// Package fetch owns the outbound HTTP side of the scraper: one shared
// client with a cookie jar, browser-like headers, optional proxy, rate
// limiting and an optional redis-backed HTML cache. Transport problems never
// surface as errors; callers get ("", false) and fall through to the next
// strategy tier.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
)

var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8,ja;q=0.7",
	"Connection":      "keep-alive",
	"Referer":         models.BaseURL,
}

type Options struct {
	ProxyURL     string
	Timeout      time.Duration
	RateLimitRPS float64
	Cache        *PageCache // optional
}

type Fetcher struct {
	opts    Options
	limiter *rate.Limiter

	once   sync.Once
	client *http.Client
}

func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	return &Fetcher{
		opts:    opts,
		limiter: limiter,
	}
}

// httpClient builds the shared client on first use.
func (f *Fetcher) httpClient() *http.Client {
	f.once.Do(func() {
		jar, _ := cookiejar.New(nil)

		transport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		}
		if f.opts.ProxyURL != "" {
			if proxyURL, err := url.Parse(f.opts.ProxyURL); err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			} else {
				logger.Log.Warn().Err(err).Str("proxy", f.opts.ProxyURL).Msg("invalid proxy url, ignoring")
			}
		}

		f.client = &http.Client{
			Timeout:   f.opts.Timeout,
			Jar:       jar,
			Transport: transport,
		}
	})
	return f.client
}

// Fetch retrieves one document. Any non-200 status, transport error or empty
// body reports ("", false).
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, bool) {
	log := logger.Log

	if f.opts.Cache != nil {
		if html, ok := f.opts.Cache.Get(ctx, pageURL); ok {
			log.Debug().Str("url", pageURL).Msg("page cache hit")
			return html, true
		}
	}

	body, ok := f.fetchBytes(ctx, pageURL)
	if !ok || len(body) == 0 {
		return "", false
	}

	html := string(body)
	if f.opts.Cache != nil {
		if err := f.opts.Cache.Set(ctx, pageURL, html); err != nil {
			log.Debug().Err(err).Str("url", pageURL).Msg("page cache set error")
		}
	}
	return html, true
}

// FetchBytes retrieves a binary resource (thumbnails). Same soft-failure
// contract as Fetch, without the cache.
func (f *Fetcher) FetchBytes(ctx context.Context, resourceURL string) ([]byte, bool) {
	return f.fetchBytes(ctx, resourceURL)
}

func (f *Fetcher) fetchBytes(ctx context.Context, fetchURL string) ([]byte, bool) {
	log := logger.Log

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		log.Error().Err(err).Str("url", fetchURL).Msg("create request")
		return nil, false
	}
	for k, v := range defaultHeaders {
		req.Header.Set(k, v)
	}

	log.Debug().Str("url", fetchURL).Msg("fetching")

	resp, err := f.httpClient().Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", fetchURL).Msg("fetch failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", fetchURL).Msg("non-200 response")
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("url", fetchURL).Msg("read body failed")
		return nil, false
	}

	log.Debug().Int("bytes", len(body)).Str("url", fetchURL).Msg("fetched")
	return body, true
}

// Close releases the connection pool and the cache handle.
func (f *Fetcher) Close() {
	if f.client != nil {
		f.client.CloseIdleConnections()
	}
	if f.opts.Cache != nil {
		_ = f.opts.Cache.Close()
	}
}
