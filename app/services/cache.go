package services

import (
	"time"

	"github.com/nikhilmekle/mern-ecommerce-app/pkg/cache"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/metrics"
)

// catalogCacheTTL bounds staleness for cached catalogue reads. Mutations
// invalidate eagerly; the TTL is the backstop.
const catalogCacheTTL = 5 * time.Minute

func cacheHit(key string, dest interface{}) bool {
	if cache.Get(key, dest) {
		metrics.CacheHits.Inc()
		return true
	}
	metrics.CacheMisses.Inc()
	return false
}

func cacheStore(key string, value interface{}) {
	cache.Set(key, value, catalogCacheTTL)
}
