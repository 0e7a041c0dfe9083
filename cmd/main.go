package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/vmoranv/hanime-scraper/internal/api"
	"github.com/vmoranv/hanime-scraper/internal/client"
	"github.com/vmoranv/hanime-scraper/internal/config"
	"github.com/vmoranv/hanime-scraper/internal/fetch"
	"github.com/vmoranv/hanime-scraper/internal/imaging"
	"github.com/vmoranv/hanime-scraper/internal/queue"
	"github.com/vmoranv/hanime-scraper/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	var cache *fetch.PageCache
	if cfg.RedisURL != "" {
		var err error
		cache, err = fetch.NewPageCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("page cache enabled")
	}

	fetcher := fetch.New(fetch.Options{
		ProxyURL:     cfg.ProxyURL,
		Timeout:      cfg.FetchTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
		Cache:        cache,
	})
	defer fetcher.Close()

	var publisher *queue.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = queue.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to NATS")
		}
		defer publisher.Close()
	}

	scraper := client.New(fetcher, cfg.BaseURL)

	// Images go through their own uncached fetcher with a separate timeout.
	imageFetcher := fetch.New(fetch.Options{
		ProxyURL:     cfg.ProxyURL,
		Timeout:      cfg.ImageTimeout,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	defer imageFetcher.Close()
	images := imaging.NewDownloader(imageFetcher)

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024,
	})
	api.NewHandler(scraper, images, publisher).SetupRoutes(app)

	go func() {
		addr := ":" + cfg.HTTPPort
		log.Info().Str("addr", addr).Str("base_url", cfg.BaseURL).Msg("HTTP API server starting")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	_ = app.Shutdown()
}
