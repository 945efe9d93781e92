// Package spatial implements the spatial statistics core: construction
// of spatial weights relations over market regions and global/local
// Moran's I autocorrelation measures on per-region price vectors.
//
// # Weights
//
// Builder produces a Relation in one of two modes. Binary mode treats
// every distinct ordered region pair as neighbors with weight 1.
// Distance-decay mode links pairs whose centroid great-circle distance
// is positive and within a bandwidth, weighted 1/distance. A region may
// legitimately end up with no neighbors; fewer than two regions yields
// an empty relation.
//
// # Autocorrelation
//
// Engine computes the global Moran's I with its randomization-assumption
// expectation and variance, an analytic normal-approximation p-value,
// and optionally a seeded Monte Carlo permutation p-value. The local
// variant (LISA) decomposes the statistic per region and classifies
// significant regions into high-high/low-low/high-low/low-high cluster
// types. Degenerate inputs (zero variance, zero weight sum) short-circuit
// to neutral results instead of propagating NaN.
package spatial
