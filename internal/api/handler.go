package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vmoranv/hanime-scraper/internal/client"
	"github.com/vmoranv/hanime-scraper/internal/imaging"
	"github.com/vmoranv/hanime-scraper/internal/queue"
	"github.com/vmoranv/hanime-scraper/pkg/logger"
	"github.com/vmoranv/hanime-scraper/pkg/models"
	"github.com/vmoranv/hanime-scraper/pkg/parse"
)

type Handler struct {
	client    *client.Client
	images    *imaging.Downloader
	publisher *queue.Publisher // nil when NATS is not configured
}

func NewHandler(c *client.Client, images *imaging.Downloader, publisher *queue.Publisher) *Handler {
	return &Handler{client: c, images: images, publisher: publisher}
}

func (h *Handler) SetupRoutes(app *fiber.App) {
	app.Get("/api/video/:id", h.handleVideo)
	app.Get("/api/video/:id/thumbnail", h.handleThumbnail)
	app.Get("/api/latest", h.handleLatest)
	app.Get("/api/search", h.handleSearch)
	app.Get("/api/random", h.handleRandom)
	app.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) handleVideo(c *fiber.Ctx) error {
	videoID := parse.VideoID(c.Params("id"))
	if videoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	video := h.client.GetVideo(c.Context(), videoID)
	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
	}

	h.publishVideo(video)
	return c.JSON(video.ToMap())
}

// handleThumbnail proxies the video's cover image so callers never touch the
// upstream host directly.
func (h *Handler) handleThumbnail(c *fiber.Ctx) error {
	videoID := parse.VideoID(c.Params("id"))
	if videoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	video := h.client.GetVideo(c.Context(), videoID)
	if video == nil || video.Thumbnail == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "thumbnail not found"})
	}

	data := h.images.Download(c.Context(), video.Thumbnail)
	if data == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "thumbnail fetch failed"})
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}

func (h *Handler) handleLatest(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	rows := previewMaps(h.client.GetLatest(c.Context(), limit))
	h.publishListing(rows)
	return c.JSON(rows)
}

func (h *Handler) handleSearch(c *fiber.Ctx) error {
	opts := client.SearchOptions{
		Query: c.Query("query"),
		Genre: c.Query("genre"),
		Sort:  c.Query("sort", "latest"),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}

	previews := h.client.Search(c.Context(), opts)
	return c.JSON(previewMaps(previews))
}

func (h *Handler) handleRandom(c *fiber.Ctx) error {
	video := h.client.GetRandom(c.Context())
	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no video found"})
	}

	h.publishVideo(video)
	return c.JSON(video.ToMap())
}

// publishVideo emits a fetched-record event, fire and forget.
func (h *Handler) publishVideo(video *models.Video) {
	if h.publisher == nil {
		return
	}
	payload := video.ToMap()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.PublishVideoFetched(ctx, payload); err != nil {
			logger.Log.Warn().Err(err).Msg("publish video event failed")
		}
	}()
}

// publishListing emits a listing snapshot event, fire and forget.
func (h *Handler) publishListing(rows []map[string]any) {
	if h.publisher == nil || len(rows) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.publisher.PublishListingFetched(ctx, rows); err != nil {
			logger.Log.Warn().Err(err).Msg("publish listing event failed")
		}
	}()
}

func previewMaps(previews []models.VideoPreview) []map[string]any {
	out := make([]map[string]any, 0, len(previews))
	for i := range previews {
		out = append(out, previews[i].ToMap())
	}
	return out
}
