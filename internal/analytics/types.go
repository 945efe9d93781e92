package analytics

import (
	"time"

	"ymcli/internal/flows"
	"ymcli/internal/geography"
	"ymcli/internal/shocks"
	"ymcli/internal/spatial"
)

// PriceObservation is one georeferenced commodity-price record.
// Region may be a raw display name; the facade normalizes it.
type PriceObservation struct {
	Region            string    `json:"region"`
	Month             time.Time `json:"month"`
	Price             float64   `json:"price"`
	USDPrice          float64   `json:"avgUsdPrice"`
	ConflictIntensity float64   `json:"conflict_intensity,omitempty"`
}

// Request selects the commodity and date window to analyze.
type Request struct {
	Commodity  string    `json:"commodity" validate:"required"`
	StartMonth time.Time `json:"start_month"`
	EndMonth   time.Time `json:"end_month"`

	// WeightMode and BandwidthKm override the configured defaults when
	// non-empty / non-zero.
	WeightMode  string  `json:"weight_mode,omitempty" validate:"omitempty,oneof=binary distance-decay"`
	BandwidthKm float64 `json:"bandwidth_km,omitempty" validate:"gte=0"`

	// UseMonteCarlo selects the permutation p-value for the global
	// statistic; otherwise the normal approximation is reported.
	UseMonteCarlo bool `json:"use_monte_carlo,omitempty"`
}

// Result is the combined analysis output for one selection.
type Result struct {
	Commodity   string    `json:"commodity"`
	GeneratedAt time.Time `json:"generated_at"`

	Weights  spatial.Relation     `json:"weights"`
	Global   spatial.GlobalResult `json:"global_moran"`
	Local    spatial.LocalSummary `json:"local_moran"`
	Clusters []flows.Cluster      `json:"clusters"`
	Shocks   []shocks.Event       `json:"shocks"`

	// PriceVector is the per-region average USD price the spatial
	// statistics were computed over.
	PriceVector map[string]float64 `json:"price_vector"`
	// SkippedRecords counts observations and flow edges dropped for
	// referencing regions absent from the geometry.
	SkippedRecords int `json:"skipped_records,omitempty"`
}

// InputBundle is the JSON boundary format the command-line tools load:
// geometry, observations, and flow edges for one commodity.
type InputBundle struct {
	Regions      []geography.Region `json:"regions"`
	Observations []PriceObservation `json:"observations"`
	Flows        []flows.FlowEdge   `json:"flows"`
}

// truncateMonth drops everything below month granularity.
func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
