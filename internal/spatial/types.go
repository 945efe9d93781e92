package spatial

import "sort"

// Mode selects the weighting scheme for Builder.
type Mode string

const (
	// ModeBinary links every distinct ordered pair with weight 1.
	ModeBinary Mode = "binary"
	// ModeDistanceDecay links pairs within the bandwidth with weight
	// 1/distance.
	ModeDistanceDecay Mode = "distance-decay"
)

// Relation is a spatial weights relation: region id to neighbor id to
// non-negative weight. It serializes as the nested mapping consumed by
// presentation layers. A relation never contains self-loops.
type Relation map[string]map[string]float64

// Add records a directed neighbor weight; self-pairs and non-positive
// weights are ignored.
func (r Relation) Add(i, j string, w float64) {
	if i == j || w <= 0 {
		return
	}
	if r[i] == nil {
		r[i] = make(map[string]float64)
	}
	r[i][j] = w
}

// Weight returns the stored weight for the ordered pair, falling back
// to the reverse direction: the relation is conceptually symmetric even
// when only one direction was recorded.
func (r Relation) Weight(i, j string) float64 {
	if w, ok := r[i][j]; ok {
		return w
	}
	return r[j][i]
}

// Neighbors returns the neighbor set of a region; may be empty.
func (r Relation) Neighbors(i string) map[string]float64 {
	return r[i]
}

// Symmetrized returns a copy with every stored weight mirrored to the
// reverse direction (keeping existing reverse weights where present).
func (r Relation) Symmetrized() Relation {
	out := make(Relation, len(r))
	for i, nbrs := range r {
		for j, w := range nbrs {
			out.Add(i, j, w)
			if _, ok := r[j][i]; !ok {
				out.Add(j, i, w)
			}
		}
	}
	return out
}

// TotalWeight returns the sum of all stored weights (S0).
func (r Relation) TotalWeight() float64 {
	var total float64
	for _, nbrs := range r {
		for _, w := range nbrs {
			total += w
		}
	}
	return total
}

// PairCount returns the number of stored ordered pairs.
func (r Relation) PairCount() int {
	n := 0
	for _, nbrs := range r {
		n += len(nbrs)
	}
	return n
}

// Regions returns the sorted set of region ids appearing in the
// relation as a source or a neighbor.
func (r Relation) Regions() []string {
	set := make(map[string]struct{})
	for i, nbrs := range r {
		set[i] = struct{}{}
		for j := range nbrs {
			set[j] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
