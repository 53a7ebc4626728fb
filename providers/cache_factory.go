package providers

import (
	"time"

	"skyglance.app/config"
	"skyglance.app/errors"
	"skyglance.app/providers/cache"
)

// NewSnapshotCache builds the snapshot cache selected by configuration:
// an in-process TTL map by default, or Redis when configured.
func NewSnapshotCache(cfg *config.CacheConfig) (cache.SnapshotCacheInterface, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, errors.NewCacheError("connect redis cache", err)
		}
		return redisCache, nil
	case "memory":
		return cache.NewSnapshotCache(cache.NewMemoryCache()), nil
	default:
		return nil, errors.NewConfigurationError("unknown cache type: "+cfg.Type, nil)
	}
}
