package analytics

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"ymcli/internal/spatial"
)

// WeightsCache is a size- and TTL-bounded cache for weights relations,
// which are expensive to rebuild and do not change per date. It is an
// explicit object passed into the Service so tests can construct fresh
// instances without cross-test leakage. Correctness never depends on
// it: a miss recomputes an identical relation.
type WeightsCache struct {
	lru     *expirable.LRU[string, spatial.Relation]
	metrics *Metrics
}

// NewWeightsCache creates a cache holding at most maxEntries relations,
// each evicted after ttl.
func NewWeightsCache(maxEntries int, ttl time.Duration, metrics *Metrics) *WeightsCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &WeightsCache{
		lru:     expirable.NewLRU[string, spatial.Relation](maxEntries, nil, ttl),
		metrics: metrics,
	}
}

// Get returns the cached relation for a key.
func (c *WeightsCache) Get(key string) (spatial.Relation, bool) {
	rel, ok := c.lru.Get(key)
	if c.metrics != nil {
		if ok {
			c.metrics.CacheHits.Inc()
		} else {
			c.metrics.CacheMisses.Inc()
		}
	}
	return rel, ok
}

// Add stores a relation under a key.
func (c *WeightsCache) Add(key string, rel spatial.Relation) {
	c.lru.Add(key, rel)
}

// Len returns the number of cached relations.
func (c *WeightsCache) Len() int {
	return c.lru.Len()
}

// CacheKey derives the cache key for a weights build: mode, bandwidth,
// and a digest of the sorted region id set.
func CacheKey(mode spatial.Mode, bandwidthKm float64, regionIDs []string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.Join(regionIDs, "\x1f")))
	return fmt.Sprintf("%s|%.3f|%016x", mode, bandwidthKm, h.Sum64())
}
