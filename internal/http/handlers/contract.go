package handlers

import (
	"context"
	"time"

	"github.com/phambaophuc/studio-site/internal/models"
)

type PageRenderer interface {
	RenderPage(slug string) ([]byte, error)
	RenderNotFound() ([]byte, error)
}

type PageCache interface {
	GetFromCache(ctx context.Context, cacheKey string) ([]byte, error)
	SetCacheTTL(ctx context.Context, cacheKey string, data []byte, ttl time.Duration) error
	GenerateCacheKey(prefix string, parts ...string) string
}

type DerivativeQueue interface {
	Submit(ctx context.Context, req models.DerivativeRequest) (*models.DerivativeJob, error)
	HealthCheck() string
	GetQueueStats() (map[string]interface{}, error)
}

type JobStore interface {
	GetJob(ctx context.Context, id string) (*models.DerivativeJob, error)
}

type StorageStatus interface {
	HealthCheck(ctx context.Context) map[string]string
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
}
