package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ymcli/internal/spatial"
)

func TestWeightsCacheRoundTrip(t *testing.T) {
	c := NewWeightsCache(4, time.Minute, nil)

	rel := spatial.Relation{}
	rel.Add("aden", "lahj", 1.0)

	key := CacheKey(spatial.ModeBinary, 0, []string{"aden", "lahj"})
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Add(key, rel)
	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, got.Weight("aden", "lahj"), 1e-12)
	assert.Equal(t, 1, c.Len())
}

func TestWeightsCacheEvictsOldest(t *testing.T) {
	c := NewWeightsCache(2, time.Minute, nil)

	c.Add("a", spatial.Relation{})
	c.Add("b", spatial.Relation{})
	c.Add("c", spatial.Relation{})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCacheKeyDistinguishesParameters(t *testing.T) {
	ids := []string{"aden", "sanaa", "taizz"}

	base := CacheKey(spatial.ModeDistanceDecay, 200, ids)

	assert.NotEqual(t, base, CacheKey(spatial.ModeBinary, 200, ids))
	assert.NotEqual(t, base, CacheKey(spatial.ModeDistanceDecay, 150, ids))
	assert.NotEqual(t, base, CacheKey(spatial.ModeDistanceDecay, 200, []string{"aden", "sanaa"}))

	// Same inputs always produce the same key.
	assert.Equal(t, base, CacheKey(spatial.ModeDistanceDecay, 200, ids))
}
