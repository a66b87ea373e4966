package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/content"
	"github.com/phambaophuc/studio-site/internal/http/handlers"
	"github.com/phambaophuc/studio-site/internal/http/middleware"
	"go.uber.org/zap"
)

const pageCacheControl = "public, max-age=300"

type Router struct {
	site              *content.Site
	pageHandler       *handlers.PageHandler
	imageHandler      *handlers.ImageHandler
	derivativeHandler *handlers.DerivativeHandler
	systemHandler     *handlers.SystemHandler
	allowedOrigins    []string
	logger            *zap.Logger
}

func NewRouter(
	site *content.Site,
	pageHandler *handlers.PageHandler,
	imageHandler *handlers.ImageHandler,
	derivativeHandler *handlers.DerivativeHandler,
	systemHandler *handlers.SystemHandler,
	allowedOrigins []string,
	logger *zap.Logger,
) *Router {
	return &Router{
		site:              site,
		pageHandler:       pageHandler,
		imageHandler:      imageHandler,
		derivativeHandler: derivativeHandler,
		systemHandler:     systemHandler,
		allowedOrigins:    allowedOrigins,
		logger:            logger,
	}
}

func (r *Router) SetupRoutes() (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.allowedOrigins))
	router.Use(middleware.SecurityHeaders())

	assets, err := staticAssets()
	if err != nil {
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	router.Use(assets)

	pages := router.Group("/")
	pages.Use(middleware.CacheControl(pageCacheControl))
	for _, page := range r.site.Pages {
		pages.GET(page.Path(), r.pageHandler.Page(page.Slug))
	}

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.systemHandler.HealthCheck)
		v1.GET("/stats", r.systemHandler.GetStats)

		images := v1.Group("/images")
		{
			images.GET("/url", r.imageHandler.URL)
			images.GET("/responsive", r.imageHandler.Responsive)
			images.GET("/srcset", r.imageHandler.SrcSet)
			images.GET("/sizes", r.imageHandler.Sizes)
			images.GET("/props", r.imageHandler.Props)
			images.GET("/background", r.imageHandler.Background)
		}

		derivatives := v1.Group("/derivatives")
		{
			derivatives.POST("", middleware.RequireJSON(), r.derivativeHandler.Create)
			derivatives.GET("/:id", r.derivativeHandler.Get)
		}
	}

	router.NoRoute(r.pageHandler.NotFound)

	return router, nil
}
