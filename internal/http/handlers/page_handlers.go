package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/content"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"go.uber.org/zap"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	noStore         = "no-store"
)

type PageHandler struct {
	renderer PageRenderer
	cache    PageCache
	cacheTTL time.Duration
	// cacheVersion separates cached pages rendered under different settings.
	cacheVersion string
	logger       *zap.Logger
}

// NewPageHandler builds a page handler. cache may be nil to disable caching.
func NewPageHandler(renderer PageRenderer, cache PageCache, cacheTTL time.Duration, cacheVersion string, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		renderer:     renderer,
		cache:        cache,
		cacheTTL:     cacheTTL,
		cacheVersion: cacheVersion,
		logger:       logger,
	}
}

// Page serves the catalog page with the given slug.
func (h *PageHandler) Page(slug string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var cacheKey string
		if h.cache != nil && h.cacheTTL > 0 {
			cacheKey = h.cache.GenerateCacheKey(storage.PageCachePrefix, slug, h.cacheVersion)

			cached, err := h.cache.GetFromCache(ctx, cacheKey)
			if err != nil {
				h.logger.Warn("Page cache read failed", zap.String("slug", slug), zap.Error(err))
			} else if cached != nil {
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, htmlContentType, cached)
				return
			}
		}

		body, err := h.renderer.RenderPage(slug)
		if err != nil {
			if errors.Is(err, content.ErrPageNotFound) {
				h.NotFound(c)
				return
			}
			h.logger.Error("Failed to render page", zap.String("slug", slug), zap.Error(err))
			c.Header("Cache-Control", noStore)
			c.Data(http.StatusInternalServerError, htmlContentType, []byte("Internal server error"))
			return
		}

		if cacheKey != "" {
			if err := h.cache.SetCacheTTL(ctx, cacheKey, body, h.cacheTTL); err != nil {
				h.logger.Warn("Failed to cache page", zap.String("slug", slug), zap.Error(err))
			}
		}

		c.Header("X-Cache", "MISS")
		c.Data(http.StatusOK, htmlContentType, body)
	}
}

// NotFound answers unknown routes: JSON under /api, the 404 page elsewhere.
func (h *PageHandler) NotFound(c *gin.Context) {
	c.Header("Cache-Control", noStore)

	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		respondError(c, http.StatusNotFound, "Resource not found")
		return
	}

	body, err := h.renderer.RenderNotFound()
	if err != nil {
		h.logger.Error("Failed to render not found page", zap.Error(err))
		c.String(http.StatusNotFound, "Page not found")
		return
	}
	c.Data(http.StatusNotFound, htmlContentType, body)
}
