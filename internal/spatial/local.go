package spatial

import (
	"math"
	"sort"
)

// Cluster type labels assigned to locally significant regions.
const (
	ClusterHighHigh       = "high-high"
	ClusterLowLow         = "low-low"
	ClusterHighLow        = "high-low"
	ClusterLowHigh        = "low-high"
	ClusterNotSignificant = "not-significant"
)

// Strength sub-labels, split at the 99% two-tailed critical value.
const (
	StrengthVeryHigh = "very-high"
	StrengthHigh     = "high"
	StrengthVeryLow  = "very-low"
	StrengthLow      = "low"
)

// criticalZ99 is the 99% two-tailed standard normal critical value.
const criticalZ99 = 2.576

// localSignificance is the p-value below which a region is classified
// into a cluster type.
const localSignificance = 0.05

// LocalResult is the LISA decomposition for a single region.
type LocalResult struct {
	Region      string  `json:"region"`
	LocalI      float64 `json:"local_i"`
	SpatialLag  float64 `json:"spatial_lag"`
	ZScore      float64 `json:"z_score"`
	PValue      float64 `json:"p_value"`
	ClusterType string  `json:"cluster_type"`
	Strength    string  `json:"strength,omitempty"`
	Significant bool    `json:"significant"`
}

// LocalSummary holds the per-region LISA results. GlobalIndex is the
// simple mean of the local indices; it is informational and not the
// formally derived global Moran's I.
type LocalSummary struct {
	Results     map[string]LocalResult `json:"results"`
	GlobalIndex float64                `json:"global_index"`
	Computable  bool                   `json:"computable"`
}

// LocalMoran computes local indicators of spatial association for each
// region in the value vector. Values are standardized; each region's
// local index is its standardized value times the weighted sum of its
// neighbors' standardized values.
//
// Classification into cluster types happens only below the 5%
// significance level; everything else is labeled not-significant.
// Zero-variance input marks the whole summary as not computable.
func (e *Engine) LocalMoran(values map[string]float64, rel Relation) LocalSummary {
	a := e.align(values, rel)
	n := len(a.ids)

	summary := LocalSummary{Results: make(map[string]LocalResult, n)}
	if n < 2 || a.sumZ2 == 0 {
		for _, id := range a.ids {
			summary.Results[id] = LocalResult{Region: id, PValue: 1, ClusterType: ClusterNotSignificant}
		}
		return summary
	}
	summary.Computable = true

	// Standardize the deviations; kurtosis is scale-free so it can be
	// taken from the deviations directly.
	sd := math.Sqrt(a.sumZ2 / float64(n))
	zs := make([]float64, n)
	var sumZ4 float64
	for i, z := range a.z {
		zs[i] = z / sd
		sumZ4 += z * z * z * z
	}
	b2 := float64(n) * sumZ4 / (a.sumZ2 * a.sumZ2)

	// Group pairs by source region.
	type nbr struct {
		j int
		w float64
	}
	adj := make([][]nbr, n)
	for _, p := range a.pairs {
		adj[p.i] = append(adj[p.i], nbr{j: p.j, w: p.w})
	}

	nf := float64(n)
	var sumLocal float64

	for i, id := range a.ids {
		var wSum, w2Sum, lagNum float64
		for _, nb := range adj[i] {
			wSum += nb.w
			w2Sum += nb.w * nb.w
			lagNum += nb.w * zs[nb.j]
		}

		res := LocalResult{Region: id, PValue: 1, ClusterType: ClusterNotSignificant}
		res.LocalI = zs[i] * lagNum
		if wSum > 0 {
			res.SpatialLag = lagNum / wSum
		}
		sumLocal += res.LocalI

		if wSum > 0 && n > 2 {
			expected := -wSum / (nf - 1)
			variance := w2Sum*(nf-b2)/(nf-1) +
				(wSum*wSum-w2Sum)*(2*b2-nf)/((nf-1)*(nf-2)) -
				expected*expected
			if variance > 0 {
				res.ZScore = (res.LocalI - expected) / math.Sqrt(variance)
				res.PValue = twoTailedP(res.ZScore)
			}
		}

		if res.PValue < localSignificance {
			res.Significant = true
			res.ClusterType = classifyCluster(zs[i], res.SpatialLag)
			res.Strength = classifyStrength(zs[i], res.ZScore)
		}

		summary.Results[id] = res
	}

	summary.GlobalIndex = sumLocal / nf
	return summary
}

func classifyCluster(z, lag float64) string {
	switch {
	case z > 0 && lag > 0:
		return ClusterHighHigh
	case z < 0 && lag < 0:
		return ClusterLowLow
	case z > 0 && lag < 0:
		return ClusterHighLow
	case z < 0 && lag > 0:
		return ClusterLowHigh
	default:
		return ClusterNotSignificant
	}
}

func classifyStrength(z, zScore float64) string {
	strong := math.Abs(zScore) > criticalZ99
	if z > 0 {
		if strong {
			return StrengthVeryHigh
		}
		return StrengthHigh
	}
	if z < 0 {
		if strong {
			return StrengthVeryLow
		}
		return StrengthLow
	}
	return ""
}

// SignificantRegions returns the ids of significant regions in sorted
// order, a convenience for presentation layers.
func (s LocalSummary) SignificantRegions() []string {
	var out []string
	for id, r := range s.Results {
		if r.Significant {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
