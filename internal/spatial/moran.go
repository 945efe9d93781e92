package spatial

import (
	"log/slog"
	"math"
	"sort"
)

// Engine computes global and local Moran's I statistics. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an autocorrelation engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "autocorrelation_engine"))}
}

// GlobalResult is the global Moran's I statistic with its randomization
// moments and significance.
type GlobalResult struct {
	I          float64 `json:"i"`
	Expected   float64 `json:"expected"`
	Variance   float64 `json:"variance"`
	ZScore     float64 `json:"z_score"`
	PValue     float64 `json:"p_value"`
	N          int     `json:"n"`
	WeightSum  float64 `json:"weight_sum"`
	Computable bool    `json:"computable"`
	// Method records how the p-value was obtained: "normal" for the
	// analytic approximation, "permutation" for Monte Carlo.
	Method string `json:"method"`
}

// pair is a weighted ordered region pair resolved to value indices.
type pair struct {
	i, j int
	w    float64
}

// alignment binds a value vector to a weights relation: sorted ids,
// mean-deviations, and the resolved pair list in deterministic order.
type alignment struct {
	ids    []string
	z      []float64 // deviations from the mean
	sumZ2  float64
	pairs  []pair
	w      float64 // S0
	orphan int     // stored pairs referencing ids absent from the values
}

func (e *Engine) align(values map[string]float64, rel Relation) alignment {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	index := make(map[string]int, len(ids))
	var mean float64
	for i, id := range ids {
		index[id] = i
		mean += values[id]
	}
	if len(ids) > 0 {
		mean /= float64(len(ids))
	}

	a := alignment{ids: ids, z: make([]float64, len(ids))}
	for i, id := range ids {
		a.z[i] = values[id] - mean
		a.sumZ2 += a.z[i] * a.z[i]
	}

	sym := rel.Symmetrized()
	for _, i := range ids {
		nbrs := sym.Neighbors(i)
		if len(nbrs) == 0 {
			continue
		}
		njs := make([]string, 0, len(nbrs))
		for j := range nbrs {
			njs = append(njs, j)
		}
		sort.Strings(njs)
		for _, j := range njs {
			jj, ok := index[j]
			if !ok {
				a.orphan++
				continue
			}
			a.pairs = append(a.pairs, pair{i: index[i], j: jj, w: nbrs[j]})
			a.w += nbrs[j]
		}
	}

	if a.orphan > 0 {
		e.logger.Warn("weights reference regions absent from the value vector",
			slog.Int("pairs_skipped", a.orphan))
	}

	return a
}

// moranI computes the raw index over a deviation vector and pair list.
func moranI(z []float64, sumZ2 float64, pairs []pair, w float64) float64 {
	var cross float64
	for _, p := range pairs {
		cross += p.w * z[p.i] * z[p.j]
	}
	return float64(len(z)) / w * cross / sumZ2
}

// GlobalMoran computes the global Moran's I with the analytic
// normal-approximation p-value.
//
// Degenerate inputs never error: zero variance or a zero weight sum
// yields I = 0, p = 1 with Computable false.
func (e *Engine) GlobalMoran(values map[string]float64, rel Relation) GlobalResult {
	a := e.align(values, rel)
	n := len(a.ids)

	res := GlobalResult{N: n, PValue: 1, Method: "normal", WeightSum: a.w}
	if n < 2 {
		return res
	}
	res.Expected = -1 / float64(n-1)

	if a.sumZ2 == 0 || a.w == 0 {
		return res
	}

	res.Computable = true
	res.I = moranI(a.z, a.sumZ2, a.pairs, a.w)

	res.Variance = randomizationVariance(a, n)
	if res.Variance > 0 {
		res.ZScore = (res.I - res.Expected) / math.Sqrt(res.Variance)
		res.PValue = twoTailedP(res.ZScore)
	}

	return res
}

// randomizationVariance is the variance of I under the randomization
// (nonfree sampling) assumption, a function of the weight structure and
// the kurtosis of the deviations. Returns 0 when n is too small for the
// formula's denominator.
func randomizationVariance(a alignment, n int) float64 {
	if n < 4 {
		return 0
	}

	s0 := a.w

	var s1 float64
	rev := make(map[[2]int]float64, len(a.pairs))
	for _, p := range a.pairs {
		rev[[2]int{p.i, p.j}] = p.w
	}
	for _, p := range a.pairs {
		s1 += (p.w + rev[[2]int{p.j, p.i}]) * (p.w + rev[[2]int{p.j, p.i}])
	}
	s1 /= 2

	rowSum := make([]float64, n)
	colSum := make([]float64, n)
	for _, p := range a.pairs {
		rowSum[p.i] += p.w
		colSum[p.j] += p.w
	}
	var s2 float64
	for i := 0; i < n; i++ {
		t := rowSum[i] + colSum[i]
		s2 += t * t
	}

	var sumZ4 float64
	for _, z := range a.z {
		sumZ4 += z * z * z * z
	}
	b2 := float64(n) * sumZ4 / (a.sumZ2 * a.sumZ2)

	nf := float64(n)
	num := nf*((nf*nf-3*nf+3)*s1-nf*s2+3*s0*s0) -
		b2*((nf*nf-nf)*s1-2*nf*s2+6*s0*s0)
	den := (nf - 1) * (nf - 2) * (nf - 3) * s0 * s0
	expected := -1 / (nf - 1)

	v := num/den - expected*expected
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// twoTailedP is the two-tailed p-value for a standard normal z-score.
func twoTailedP(z float64) float64 {
	return math.Erfc(math.Abs(z) / math.Sqrt2)
}
