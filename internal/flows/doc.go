// Package flows partitions market regions into connected trade clusters
// from inter-market flow data.
//
// Two regions belong to the same cluster when a chain of flow edges
// connects them, regardless of edge direction. Components are found by
// an explicit stack-based traversal, so deep flow graphs cannot exhaust
// the call stack. Each reported cluster names its hub (the member with
// the highest aggregate outgoing flow) and carries flow totals and a
// density measure of internal connectivity. Output ordering is fully
// deterministic to keep golden-file comparisons stable.
package flows
