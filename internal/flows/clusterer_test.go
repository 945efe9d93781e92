package flows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterChain(t *testing.T) {
	c := NewClusterer(nil)
	edges := []FlowEdge{
		{Source: "a", Target: "b", Weight: 2},
		{Source: "b", Target: "c", Weight: 3},
	}

	clusters := c.Cluster(edges)
	require.Len(t, clusters, 1)

	cl := clusters[0]
	assert.Equal(t, "b", cl.MainMarket, "b has the highest aggregate outgoing flow (5)")
	assert.Equal(t, []string{"a", "b", "c"}, cl.ConnectedMarkets)
	assert.Equal(t, 3, cl.MarketCount)
	assert.Equal(t, 5.0, cl.TotalFlow)
	assert.InDelta(t, 5.0/3, cl.AvgFlow, 1e-12)
	// Two connected pairs out of a possible three.
	assert.InDelta(t, 4.0/6, cl.FlowDensity, 1e-12)
}

func TestClusterFullyConnected(t *testing.T) {
	c := NewClusterer(nil)
	ids := []string{"a", "b", "c", "d"}
	var edges []FlowEdge
	for _, s := range ids {
		for _, d := range ids {
			if s != d {
				edges = append(edges, FlowEdge{Source: s, Target: d, Weight: 1})
			}
		}
	}

	clusters := c.Cluster(edges)
	require.Len(t, clusters, 1)
	assert.Equal(t, 1.0, clusters[0].FlowDensity)
	assert.Equal(t, 4, clusters[0].MarketCount)
}

func TestClusterFullyConnectedUndirectedListing(t *testing.T) {
	// The same topology listed with one edge per pair must report the
	// same density: adjacency is direction-agnostic.
	c := NewClusterer(nil)
	edges := []FlowEdge{
		{Source: "a", Target: "b", Weight: 1},
		{Source: "a", Target: "c", Weight: 1},
		{Source: "a", Target: "d", Weight: 1},
		{Source: "b", Target: "c", Weight: 1},
		{Source: "b", Target: "d", Weight: 1},
		{Source: "c", Target: "d", Weight: 1},
	}

	clusters := c.Cluster(edges)
	require.Len(t, clusters, 1)
	assert.Equal(t, 1.0, clusters[0].FlowDensity)
}

func TestClusterDisconnectedComponents(t *testing.T) {
	c := NewClusterer(nil)
	edges := []FlowEdge{
		{Source: "a", Target: "b", Weight: 1},
		{Source: "x", Target: "y", Weight: 4},
		{Source: "y", Target: "z", Weight: 1},
	}

	clusters := c.Cluster(edges)
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"a", "b"}, clusters[0].ConnectedMarkets)
	assert.Equal(t, []string{"x", "y", "z"}, clusters[1].ConnectedMarkets)
	assert.Equal(t, "x", clusters[1].MainMarket)
}

func TestClusterDeterminism(t *testing.T) {
	c := NewClusterer(nil)
	edges := []FlowEdge{
		{Source: "m3", Target: "m1", Weight: 2},
		{Source: "m2", Target: "m3", Weight: 2}, // tie on outgoing flow
		{Source: "m1", Target: "m4", Weight: 1},
	}

	first := c.Cluster(edges)

	// Same edges in a different order.
	reordered := []FlowEdge{edges[2], edges[0], edges[1]}
	second := c.Cluster(reordered)

	assert.Equal(t, first, second, "identical input must produce identical clusters")
	require.Len(t, first, 1)
	assert.Equal(t, "m2", first[0].MainMarket, "ties resolve to the first member in sorted order")
}

func TestClusterInvalidEdges(t *testing.T) {
	c := NewClusterer(nil)
	edges := []FlowEdge{
		{Source: "a", Target: "a", Weight: 3},  // self-loop
		{Source: "", Target: "b", Weight: 1},   // missing endpoint
		{Source: "a", Target: "b", Weight: -2}, // negative weight
	}

	assert.Empty(t, c.Cluster(edges))
}

func TestClusterSingletonsDropped(t *testing.T) {
	c := NewClusterer(nil)
	assert.Empty(t, c.Cluster(nil))
	assert.Empty(t, c.Cluster([]FlowEdge{}))
}
