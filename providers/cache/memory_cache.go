package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skyglance.app/models"
)

// GenericCacheInterface defines generic byte-level cache operations
type GenericCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// SnapshotCacheInterface defines the interface for weather snapshot caching
type SnapshotCacheInterface interface {
	Get(key string) (*models.WeatherSnapshot, bool)
	Set(key string, value *models.WeatherSnapshot, ttl time.Duration)
	Delete(key string)
	Clear()
}

type cacheEntry struct {
	Data      []byte
	ExpiresAt time.Time
}

type MemoryCache struct {
	data   map[string]cacheEntry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

func NewMemoryCache() GenericCacheInterface {
	cache := &MemoryCache{
		data:   make(map[string]cacheEntry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go cache.cleanup()
	return cache
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}

	return entry.Data, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (c *MemoryCache) Delete(ctx context.Context, key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

func (c *MemoryCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]cacheEntry)
}

func (c *MemoryCache) cleanup() {
	for {
		select {
		case <-c.ticker.C:
			c.removeExpiredEntries()
		case <-c.stopCh:
			c.ticker.Stop()
			return
		}
	}
}

func (c *MemoryCache) removeExpiredEntries() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.data {
		if now.After(entry.ExpiresAt) {
			delete(c.data, key)
		}
	}
}

// SnapshotCache wraps a generic cache with snapshot-typed operations
type SnapshotCache struct {
	cache GenericCacheInterface
}

func NewSnapshotCache(cache GenericCacheInterface) SnapshotCacheInterface {
	return &SnapshotCache{
		cache: cache,
	}
}

func (s *SnapshotCache) Get(key string) (*models.WeatherSnapshot, bool) {
	data, found := s.cache.Get(context.Background(), key)
	if !found {
		return nil, false
	}

	var snapshot models.WeatherSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false
	}

	return &snapshot, true
}

func (s *SnapshotCache) Set(key string, value *models.WeatherSnapshot, ttl time.Duration) {
	if value == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	s.cache.Set(context.Background(), key, data, ttl)
}

func (s *SnapshotCache) Delete(key string) {
	s.cache.Delete(context.Background(), key)
}

func (s *SnapshotCache) Clear() {
	s.cache.Clear(context.Background())
}
