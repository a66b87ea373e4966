package storage

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const PageCachePrefix = "page_cache"

// GetFromCache returns nil, nil on a cache miss.
func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.SetCacheTTL(ctx, cacheKey, data, s.cacheDuration)
}

func (s *StorageService) SetCacheTTL(ctx context.Context, cacheKey string, data []byte, ttl time.Duration) error {
	return s.redisClient.Set(ctx, cacheKey, data, ttl).Err()
}

// GenerateCacheKey hashes parts under prefix so arbitrary input (URLs, query
// strings) yields a fixed-length key.
func (s *StorageService) GenerateCacheKey(prefix string, parts ...string) string {
	hash := md5.New()
	hash.Write([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%s:%x", prefix, hash.Sum(nil))
}

// PurgeCache deletes every key under prefix and returns how many were removed.
func (s *StorageService) PurgeCache(ctx context.Context, prefix string) (int, error) {
	var removed int

	iter := s.redisClient.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan cache: %w", err)
	}

	return removed, nil
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	pages, err := s.countKeys(ctx, PageCachePrefix)
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys":      dbSize,
		"cached_pages": pages,
	}

	return stats, nil
}

func (s *StorageService) countKeys(ctx context.Context, prefix string) (int, error) {
	var n int
	iter := s.redisClient.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}
