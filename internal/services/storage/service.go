package storage

import (
	"errors"
	"time"

	"github.com/phambaophuc/studio-site/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
)

var ErrNotConfigured = errors.New("object storage not configured")

type StorageService struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var sbClient *storage_go.Client
	if cfg.Supabase.URL != "" {
		sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return NewWithClients(sbClient, redisClient, cfg.Supabase.BUCKET, cfg.Storage.CacheDuration), nil
}

// NewWithClients wires already constructed clients. sbClient may be nil when
// object storage is not configured.
func NewWithClients(sbClient *storage_go.Client, redisClient *redis.Client, bucket string, cacheDuration time.Duration) *StorageService {
	if cacheDuration <= 0 {
		cacheDuration = 24 * time.Hour
	}
	return &StorageService{
		sbClient:      sbClient,
		redisClient:   redisClient,
		bucket:        bucket,
		cacheDuration: cacheDuration,
	}
}

func (s *StorageService) Close() error {
	return s.redisClient.Close()
}
