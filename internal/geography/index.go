package geography

import (
	"log/slog"
	"sort"
)

// Region is a market region with an optional centroid. The ID field may
// be supplied raw; the Index normalizes it on construction.
type Region struct {
	ID       string      `json:"region_id"`
	Name     string      `json:"name,omitempty"`
	Centroid *Coordinate `json:"centroid,omitempty"`
}

// Index holds the normalized region set and answers identifier and
// centroid lookups. It is immutable after construction and safe for
// concurrent use.
type Index struct {
	regions map[string]Region
	ids     []string
	logger  *slog.Logger
}

// NewIndex builds an Index from the supplied regions. Identifiers are
// normalized; duplicates after normalization keep the first occurrence
// and are logged.
func NewIndex(regions []Region, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "geometry_index"))

	byID := make(map[string]Region, len(regions))
	for _, r := range regions {
		id := Normalize(r.ID)
		if id == "" {
			logger.Warn("skipping region with empty identifier")
			continue
		}
		if _, exists := byID[id]; exists {
			logger.Warn("duplicate region after normalization", slog.String("region", id))
			continue
		}
		r.ID = id
		byID[id] = r
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Index{regions: byID, ids: ids, logger: logger}
}

// Resolve normalizes a raw name and reports whether the resulting
// identifier is a known region. Callers use the second return to make
// dangling references observable instead of silently passing them on.
func (ix *Index) Resolve(raw string) (string, bool) {
	id := Normalize(raw)
	_, ok := ix.regions[id]
	return id, ok
}

// Region returns the region for a normalized identifier.
func (ix *Index) Region(id string) (Region, bool) {
	r, ok := ix.regions[id]
	return r, ok
}

// Centroid returns the centroid for a normalized identifier; the second
// return is false when the region is unknown or has no geometry.
func (ix *Index) Centroid(id string) (Coordinate, bool) {
	r, ok := ix.regions[id]
	if !ok || r.Centroid == nil {
		return Coordinate{}, false
	}
	return *r.Centroid, true
}

// Distance returns the great-circle distance in kilometers between two
// region centroids; false when either centroid is missing.
func (ix *Index) Distance(i, j string) (float64, bool) {
	a, ok := ix.Centroid(i)
	if !ok {
		return 0, false
	}
	b, ok := ix.Centroid(j)
	if !ok {
		return 0, false
	}
	return Haversine(a, b), true
}

// IDs returns the sorted normalized identifiers.
func (ix *Index) IDs() []string {
	out := make([]string, len(ix.ids))
	copy(out, ix.ids)
	return out
}

// Len returns the number of indexed regions.
func (ix *Index) Len() int {
	return len(ix.ids)
}
