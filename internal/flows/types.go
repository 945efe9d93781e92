package flows

// FlowEdge is a directed trade flow between two market regions, loaded
// per commodity and date window.
type FlowEdge struct {
	Source            string  `json:"source"`
	Target            string  `json:"target"`
	Weight            float64 `json:"flow_weight"`
	PriceDifferential float64 `json:"avg_price_differential,omitempty"`
}

// Cluster is a maximal set of markets connected by trade flows. Only
// components with at least two members are reported.
type Cluster struct {
	// MainMarket is the hub: the member with the highest aggregate
	// outgoing flow inside the cluster.
	MainMarket       string   `json:"mainMarket"`
	ConnectedMarkets []string `json:"connectedMarkets"`
	MarketCount      int      `json:"marketCount"`

	// TotalFlow sums the weights of all edges inside the cluster.
	TotalFlow float64 `json:"totalFlow"`
	// AvgFlow is TotalFlow divided by the member count.
	AvgFlow float64 `json:"avgFlow"`
	// FlowDensity relates connected ordered pairs to the theoretical
	// maximum k*(k-1); 1.0 means every market trades with every other.
	FlowDensity float64 `json:"flowDensity"`
}
