package flows

import (
	"log/slog"
	"sort"
)

// Clusterer partitions regions into connected trade clusters.
type Clusterer struct {
	logger *slog.Logger
}

// NewClusterer creates a flow-graph clusterer.
func NewClusterer(logger *slog.Logger) *Clusterer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clusterer{logger: logger.With(slog.String("component", "flow_clusterer"))}
}

// Cluster partitions the regions appearing in the edge list into
// connected components and reports every component with at least two
// members. Edges with empty endpoints, self-loops, or negative weights
// are logged and skipped. The result is deterministic for identical
// input regardless of edge order.
func (c *Clusterer) Cluster(edges []FlowEdge) []Cluster {
	adjacency := make(map[string]map[string]bool)
	outflow := make(map[string]float64)
	skipped := 0

	valid := make([]FlowEdge, 0, len(edges))
	for _, e := range edges {
		if e.Source == "" || e.Target == "" || e.Source == e.Target || e.Weight < 0 {
			skipped++
			continue
		}
		valid = append(valid, e)

		if adjacency[e.Source] == nil {
			adjacency[e.Source] = make(map[string]bool)
		}
		if adjacency[e.Target] == nil {
			adjacency[e.Target] = make(map[string]bool)
		}
		adjacency[e.Source][e.Target] = true
		adjacency[e.Target][e.Source] = true
		outflow[e.Source] += e.Weight
	}

	if skipped > 0 {
		c.logger.Warn("invalid flow edges skipped", slog.Int("count", skipped))
	}

	nodes := make([]string, 0, len(adjacency))
	for id := range adjacency {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	var clusters []Cluster
	visited := make(map[string]bool, len(nodes))

	for _, root := range nodes {
		if visited[root] {
			continue
		}
		members := c.component(root, adjacency, visited)
		if len(members) < 2 {
			continue
		}
		clusters = append(clusters, c.describe(members, valid, outflow))
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].MainMarket < clusters[j].MainMarket
	})

	c.logger.Debug("flow clustering complete",
		slog.Int("edges", len(valid)),
		slog.Int("markets", len(nodes)),
		slog.Int("clusters", len(clusters)),
	)

	return clusters
}

// component collects the connected component containing root using an
// explicit stack; large flow graphs must not rely on recursion depth.
func (c *Clusterer) component(root string, adjacency map[string]map[string]bool, visited map[string]bool) []string {
	var members []string
	stack := []string{root}
	visited[root] = true

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, node)

		nbrs := make([]string, 0, len(adjacency[node]))
		for n := range adjacency[node] {
			nbrs = append(nbrs, n)
		}
		sort.Strings(nbrs)
		for _, n := range nbrs {
			if !visited[n] {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}

	sort.Strings(members)
	return members
}

// describe computes the hub and flow metrics for one component.
// members must be sorted; the hub tiebreak takes the first member in
// that order.
func (c *Clusterer) describe(members []string, edges []FlowEdge, outflow map[string]float64) Cluster {
	inCluster := make(map[string]bool, len(members))
	for _, m := range members {
		inCluster[m] = true
	}

	hub := members[0]
	for _, m := range members[1:] {
		if outflow[m] > outflow[hub] {
			hub = m
		}
	}

	var totalFlow float64
	pairs := make(map[[2]string]bool)
	for _, e := range edges {
		if !inCluster[e.Source] {
			continue
		}
		totalFlow += e.Weight
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		pairs[[2]string{a, b}] = true
	}

	k := len(members)
	cl := Cluster{
		MainMarket:       hub,
		ConnectedMarkets: members,
		MarketCount:      k,
		TotalFlow:        totalFlow,
		AvgFlow:          totalFlow / float64(k),
	}
	// Each connected unordered pair covers both ordered directions.
	cl.FlowDensity = float64(2*len(pairs)) / float64(k*(k-1))

	return cl
}
