// Package shocks scans per-region monthly price series for abnormal
// movements and emits discrete shock events.
//
// A point triggers a shock when its relative change against the
// previous month exceeds the price-change threshold, or when the
// windowed volatility (standard deviation over mean of the trailing
// comparison window) exceeds the volatility threshold. Events are
// ephemeral: recomputed per query, never persisted.
package shocks
