package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/config"
	"github.com/phambaophuc/studio-site/internal/content"
	"github.com/phambaophuc/studio-site/internal/http/handlers"
	"github.com/phambaophuc/studio-site/internal/http/routes"
	"github.com/phambaophuc/studio-site/internal/services/processor"
	"github.com/phambaophuc/studio-site/internal/services/queue"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"github.com/phambaophuc/studio-site/internal/web"
	"github.com/phambaophuc/studio-site/pkg/cloudinary"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.App.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	site, err := content.LoadFile(cfg.Site.ContentPath)
	if err != nil {
		logger.Fatal("Failed to load site content", zap.String("path", cfg.Site.ContentPath), zap.Error(err))
	}

	images := cloudinary.New(cfg.Cloudinary.CloudName)

	renderer, err := web.NewRenderer(site, images)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	// Initialize services
	store, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage service", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pages rendered by a previous build may be stale.
	if removed, err := store.PurgeCache(ctx, storage.PageCachePrefix); err != nil {
		logger.Warn("Failed to purge page cache", zap.Error(err))
	} else {
		logger.Info("Page cache purged", zap.Int("keys", removed))
	}

	var derivativeQueue handlers.DerivativeQueue
	imageProcessor := processor.NewImageProcessor(cfg.Queue.DerivativeQuality)

	queueService, err := queue.NewQueueService(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.QueueName,
		cfg.Storage.MaxFileSize,
		imageProcessor,
		store,
		logger,
	)
	if err != nil {
		logger.Warn("Failed to initialize queue service", zap.Error(err))
		// Continue without derivative generation
	} else {
		defer queueService.Close()
		derivativeQueue = queueService

		for i := 1; i <= cfg.Queue.Workers; i++ {
			if err := queueService.StartWorker(ctx, i); err != nil {
				logger.Error("Failed to start worker", zap.Int("worker_id", i), zap.Error(err))
			}
		}
	}

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(renderer, store, cfg.Site.PageCacheTTL, images.CloudName(), logger)
	imageHandler := handlers.NewImageHandler(images, logger)
	derivativeHandler := handlers.NewDerivativeHandler(derivativeQueue, store, logger)
	systemHandler := handlers.NewSystemHandler(store, derivativeQueue, logger)

	router := routes.NewRouter(
		site,
		pageHandler,
		imageHandler,
		derivativeHandler,
		systemHandler,
		cfg.Server.AllowedOrigins,
		logger,
	)

	engine, err := router.SetupRoutes()
	if err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      engine,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("site", site.Name),
			zap.String("cloud_name", images.CloudName()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
