// Package geography provides region-name canonicalization and
// centroid-based great-circle distances for the market regions.
//
// Region names arrive from several upstream datasets with inconsistent
// transliteration ("Ta'izz Governorate", "Taizz", "Taiz"). Normalize
// folds case, strips diacritics and apostrophe variants, drops the
// "governorate" suffix, and resolves known orthographic variants
// through a single immutable alias table. The fold-then-lookup pipeline
// is idempotent: canonical identifiers normalize to themselves.
//
// Index holds the normalized region set and answers centroid and
// distance lookups; all downstream joins key on its identifiers.
package geography
