// Package analytics orchestrates the spatial market analysis for a
// commodity/date selection and assembles the combined result consumed
// by presentation layers.
//
// The Service wires the geometry index, weights builder, Moran engine,
// flow clusterer, and shock detector behind a single Analyze call. All
// results are value objects recomputed per request; concurrent Analyze
// calls for independent selections share no mutable state. Weights
// relations, which do not change per date, are held in a size- and
// TTL-bounded cache; a cache miss recomputes an identical relation.
//
// Monte Carlo significance testing runs on a bounded worker pool with
// last-request-wins semantics per logical slot: a newer request for the
// same slot cancels a still-running older one, which then reports
// errors.ErrSuperseded.
package analytics
