package providers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"skyglance.app/metrics"
	"skyglance.app/models"
	"skyglance.app/providers/cache"
)

// WeatherCacheProxy serves repeated searches for the same city from a
// short-TTL cache instead of re-hitting the upstream provider. Hits and
// misses are recorded in the Prometheus cache metrics.
type WeatherCacheProxy struct {
	realProvider WeatherProvider
	cache        cache.SnapshotCacheInterface
	cacheTTL     time.Duration
	cacheMetrics *metrics.CacheMetrics
}

func NewWeatherCacheProxy(
	realProvider WeatherProvider,
	snapshotCache cache.SnapshotCacheInterface,
	cacheTTL time.Duration,
	cacheMetrics *metrics.CacheMetrics,
) WeatherProvider {
	return &WeatherCacheProxy{
		realProvider: realProvider,
		cache:        snapshotCache,
		cacheTTL:     cacheTTL,
		cacheMetrics: cacheMetrics,
	}
}

func (p *WeatherCacheProxy) FetchSnapshot(city string) (*models.WeatherSnapshot, error) {
	cacheKey := p.generateCacheKey(city)

	start := time.Now()
	cached, found := p.cache.Get(cacheKey)
	p.cacheMetrics.RecordLatency("get", time.Since(start))

	if found {
		p.cacheMetrics.RecordHit()
		slog.Info("cache hit", "city", city)
		return cached, nil
	}

	p.cacheMetrics.RecordMiss()
	slog.Info("cache miss", "city", city)

	snapshot, err := p.realProvider.FetchSnapshot(city)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	p.cache.Set(cacheKey, snapshot, p.cacheTTL)
	p.cacheMetrics.RecordLatency("set", time.Since(start))

	return snapshot, nil
}

// generateCacheKey creates a consistent cache key for a city; lookups are
// case-insensitive so "Paris" and "paris" share an entry
func (p *WeatherCacheProxy) generateCacheKey(city string) string {
	return fmt.Sprintf("weather:%s", strings.ToLower(city))
}
