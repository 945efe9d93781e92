package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMoranZeroVariance(t *testing.T) {
	e := NewEngine(nil)
	values := map[string]float64{"a": 7, "b": 7, "c": 7}

	s := e.LocalMoran(values, fullBinary("a", "b", "c"))

	assert.False(t, s.Computable)
	for id, r := range s.Results {
		assert.Equal(t, 0.0, r.LocalI, id)
		assert.Equal(t, ClusterNotSignificant, r.ClusterType, id)
		assert.False(t, r.Significant, id)
	}
}

func TestLocalMoranSigns(t *testing.T) {
	// Two tight value clusters joined by a single link: high regions
	// surrounded by high neighbors carry positive local indices, and
	// their spatial lag is positive.
	e := NewEngine(nil)
	values := map[string]float64{
		"h1": 100, "h2": 105, "h3": 95,
		"l1": 5, "l2": 10, "l3": 0,
	}
	rel := make(Relation)
	for _, p := range [][2]string{{"h1", "h2"}, {"h2", "h3"}, {"h1", "h3"}, {"l1", "l2"}, {"l2", "l3"}, {"l1", "l3"}} {
		rel.Add(p[0], p[1], 1)
		rel.Add(p[1], p[0], 1)
	}

	s := e.LocalMoran(values, rel)
	require.True(t, s.Computable)

	for _, id := range []string{"h1", "h2", "h3"} {
		r := s.Results[id]
		assert.Greater(t, r.LocalI, 0.0, id)
		assert.Greater(t, r.SpatialLag, 0.0, id)
	}
	for _, id := range []string{"l1", "l2", "l3"} {
		r := s.Results[id]
		assert.Greater(t, r.LocalI, 0.0, "like-valued neighborhoods score positive for %s", id)
		assert.Less(t, r.SpatialLag, 0.0, id)
	}

	for id, r := range s.Results {
		if !r.Significant {
			assert.Equal(t, ClusterNotSignificant, r.ClusterType, id)
			assert.Empty(t, r.Strength, id)
		} else {
			assert.Contains(t, []string{ClusterHighHigh, ClusterLowLow, ClusterHighLow, ClusterLowHigh}, r.ClusterType, id)
		}
		assert.False(t, math.IsNaN(r.ZScore), id)
		assert.False(t, math.IsNaN(r.PValue), id)
	}
}

func TestLocalMoranGlobalIndexIsMean(t *testing.T) {
	e := NewEngine(nil)
	values := map[string]float64{"a": 1, "b": 4, "c": 2, "d": 9}

	s := e.LocalMoran(values, fullBinary("a", "b", "c", "d"))
	require.True(t, s.Computable)

	var sum float64
	for _, r := range s.Results {
		sum += r.LocalI
	}
	assert.InDelta(t, sum/4, s.GlobalIndex, 1e-12)
}

func TestLocalMoranIsolatedRegion(t *testing.T) {
	e := NewEngine(nil)
	values := map[string]float64{"a": 1, "b": 2, "c": 10}
	rel := make(Relation)
	rel.Add("a", "b", 1)
	rel.Add("b", "a", 1)

	s := e.LocalMoran(values, rel)
	require.True(t, s.Computable)

	r := s.Results["c"]
	assert.Equal(t, 0.0, r.LocalI, "region with no neighbors has a zero local index")
	assert.Equal(t, 0.0, r.SpatialLag)
	assert.Equal(t, ClusterNotSignificant, r.ClusterType)
}

func TestClassifyCluster(t *testing.T) {
	tests := []struct {
		name     string
		z, lag   float64
		expected string
	}{
		{"high value high lag", 1.5, 0.8, ClusterHighHigh},
		{"low value low lag", -1.5, -0.8, ClusterLowLow},
		{"high outlier in low surroundings", 1.5, -0.8, ClusterHighLow},
		{"low outlier in high surroundings", -1.5, 0.8, ClusterLowHigh},
		{"zero value", 0, 0.8, ClusterNotSignificant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyCluster(tt.z, tt.lag))
		})
	}
}

func TestClassifyStrength(t *testing.T) {
	assert.Equal(t, StrengthVeryHigh, classifyStrength(1.0, 3.0))
	assert.Equal(t, StrengthHigh, classifyStrength(1.0, 2.0))
	assert.Equal(t, StrengthVeryLow, classifyStrength(-1.0, -3.1))
	assert.Equal(t, StrengthLow, classifyStrength(-1.0, -1.2))
	assert.Equal(t, "", classifyStrength(0, 5))
}
