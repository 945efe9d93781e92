package shocks

import (
	"log/slog"
	"math"
	"sort"

	"ymcli/internal/config"
)

// Detector scans monthly price series for shock events. It holds only
// thresholds and is safe for concurrent use.
type Detector struct {
	priceChangeThreshold float64
	volatilityThreshold  float64
	window               int
	logger               *slog.Logger
}

// NewDetector creates a detector from shock configuration.
func NewDetector(cfg config.ShockConfig, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.VolatilityWindow
	if window < 2 {
		window = 2
	}
	return &Detector{
		priceChangeThreshold: cfg.PriceChangeThreshold,
		volatilityThreshold:  cfg.VolatilityThreshold,
		window:               window,
		logger:               logger.With(slog.String("component", "shock_detector")),
	}
}

// Detect returns the shock events in a region's price series. The
// series is sorted ascending by month before scanning; the input slice
// is not modified. Series shorter than two points yield no events.
//
// A point whose previous price is zero cannot produce a relative
// change; it is logged as indeterminate and skipped rather than
// dividing by zero.
func (d *Detector) Detect(region string, series []PricePoint) []Event {
	if len(series) < 2 {
		return nil
	}

	sorted := make([]PricePoint, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Month.Before(sorted[j].Month)
	})

	var events []Event

	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].AvgPrice
		if prev == 0 {
			d.logger.Warn("indeterminate price change, zero previous price",
				slog.String("region", region),
				slog.Time("month", sorted[i].Month),
			)
			continue
		}

		change := (sorted[i].AvgPrice - prev) / prev
		volatility := d.windowVolatility(sorted, i)

		if math.Abs(change) <= d.priceChangeThreshold && volatility <= d.volatilityThreshold {
			continue
		}

		ev := Event{
			Region:     region,
			Month:      sorted[i].Month,
			Type:       TypeSurge,
			Magnitude:  math.Abs(change),
			Severity:   SeverityMedium,
			Volatility: volatility,
		}
		if change < 0 {
			ev.Type = TypeDrop
		}
		if volatility > 2*d.volatilityThreshold {
			ev.Severity = SeverityHigh
		}

		events = append(events, ev)
	}

	return events
}

// windowVolatility is the coefficient of variation of the trailing
// comparison window ending at index i.
func (d *Detector) windowVolatility(series []PricePoint, i int) float64 {
	start := i - d.window + 1
	if start < 0 {
		start = 0
	}
	window := series[start : i+1]

	var mean float64
	for _, p := range window {
		mean += p.AvgPrice
	}
	mean /= float64(len(window))
	if mean == 0 {
		return 0
	}

	var ss float64
	for _, p := range window {
		dev := p.AvgPrice - mean
		ss += dev * dev
	}
	sd := math.Sqrt(ss / float64(len(window)))

	return sd / mean
}
