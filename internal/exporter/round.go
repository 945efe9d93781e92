package exporter

import (
	"ymcli/internal/analytics"
	"ymcli/internal/flows"
	"ymcli/internal/shocks"
	"ymcli/internal/spatial"
)

// RoundResult returns a copy of the result with every float rounded to
// four decimal places for presentation. The input is not modified, so
// callers can keep the full-precision result for further computation.
func RoundResult(res *analytics.Result) *analytics.Result {
	out := *res

	out.Global.I = Round4(res.Global.I)
	out.Global.Expected = Round4(res.Global.Expected)
	out.Global.Variance = Round4(res.Global.Variance)
	out.Global.ZScore = Round4(res.Global.ZScore)
	out.Global.PValue = Round4(res.Global.PValue)
	out.Global.WeightSum = Round4(res.Global.WeightSum)

	out.Local.GlobalIndex = Round4(res.Local.GlobalIndex)
	if res.Local.Results != nil {
		out.Local.Results = make(map[string]spatial.LocalResult, len(res.Local.Results))
		for id, lr := range res.Local.Results {
			lr.LocalI = Round4(lr.LocalI)
			lr.SpatialLag = Round4(lr.SpatialLag)
			lr.ZScore = Round4(lr.ZScore)
			lr.PValue = Round4(lr.PValue)
			out.Local.Results[id] = lr
		}
	}

	if res.Weights != nil {
		out.Weights = make(spatial.Relation, len(res.Weights))
		for i, neighbors := range res.Weights {
			rounded := make(map[string]float64, len(neighbors))
			for j, w := range neighbors {
				rounded[j] = Round4(w)
			}
			out.Weights[i] = rounded
		}
	}

	if res.Clusters != nil {
		out.Clusters = append([]flows.Cluster(nil), res.Clusters...)
		for i := range out.Clusters {
			out.Clusters[i].TotalFlow = Round4(out.Clusters[i].TotalFlow)
			out.Clusters[i].AvgFlow = Round4(out.Clusters[i].AvgFlow)
			out.Clusters[i].FlowDensity = Round4(out.Clusters[i].FlowDensity)
		}
	}

	if res.Shocks != nil {
		out.Shocks = append([]shocks.Event(nil), res.Shocks...)
		for i := range out.Shocks {
			out.Shocks[i].Magnitude = Round4(out.Shocks[i].Magnitude)
			out.Shocks[i].Volatility = Round4(out.Shocks[i].Volatility)
		}
	}

	if res.PriceVector != nil {
		out.PriceVector = make(map[string]float64, len(res.PriceVector))
		for id, v := range res.PriceVector {
			out.PriceVector[id] = Round4(v)
		}
	}

	return &out
}
