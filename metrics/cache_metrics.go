package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type CacheMetricsCollector struct {
	Hits     *prometheus.CounterVec
	Misses   *prometheus.CounterVec
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	HitRatio *prometheus.GaugeVec
}

var (
	globalCollector *CacheMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *CacheMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &CacheMetricsCollector{
			Hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_hits_total",
					Help: "The total number of cache hits",
				},
				[]string{"cache_type"},
			),
			Misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_misses_total",
					Help: "The total number of cache misses",
				},
				[]string{"cache_type"},
			),
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_cache_requests_total",
					Help: "The total number of cache requests",
				},
				[]string{"cache_type"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_cache_duration_seconds",
					Help:    "Cache operation duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"cache_type", "operation"},
			),
			HitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "weather_cache_hit_ratio",
					Help: "Cache hit ratio (hits/total requests)",
				},
				[]string{"cache_type"},
			),
		}
	})
	return globalCollector
}

// CacheMetrics tracks hit/miss statistics for one cache instance
type CacheMetrics struct {
	cacheType string
	hits      int64
	misses    int64
	total     int64
	collector *CacheMetricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheType string) *CacheMetrics {
	return &CacheMetrics{
		cacheType: cacheType,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.Hits.WithLabelValues(m.cacheType).Inc()
	m.collector.Requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.Misses.WithLabelValues(m.cacheType).Inc()
	m.collector.Requests.WithLabelValues(m.cacheType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordLatency(operation string, duration time.Duration) {
	m.collector.Latency.WithLabelValues(m.cacheType, operation).Observe(duration.Seconds())
}

// updateHitRatio must be called with the mutex held
func (m *CacheMetrics) updateHitRatio() {
	if m.total == 0 {
		return
	}
	m.collector.HitRatio.WithLabelValues(m.cacheType).Set(float64(m.hits) / float64(m.total))
}

// Stats is a point-in-time view of cache effectiveness
type Stats struct {
	Hits   int64
	Misses int64
	Total  int64
}

func (m *CacheMetrics) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Hits:   m.hits,
		Misses: m.misses,
		Total:  m.total,
	}
}
