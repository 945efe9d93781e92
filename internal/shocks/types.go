package shocks

import "time"

// Type distinguishes upward from downward shocks.
type Type string

const (
	TypeSurge Type = "surge"
	TypeDrop  Type = "drop"
)

// Severity grades a shock by its measured volatility.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PricePoint is one month of a region's aggregated price series.
type PricePoint struct {
	Month    time.Time `json:"month"`
	AvgPrice float64   `json:"avgPrice"`
}

// Event is a detected abnormal price movement in a region's series.
type Event struct {
	Region string    `json:"region"`
	Month  time.Time `json:"month"`
	Type   Type      `json:"type"`
	// Magnitude is the unsigned relative price change against the
	// previous month.
	Magnitude float64  `json:"magnitude"`
	Severity  Severity `json:"severity"`
	// Volatility is the coefficient of variation measured over the
	// comparison window at this point.
	Volatility float64 `json:"volatility,omitempty"`
}
