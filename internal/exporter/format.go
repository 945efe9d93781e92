package exporter

import (
	"fmt"
	"math"
	"time"
)

// formatFloat formats a float64 for tabular output with exactly 4
// decimal places, so values like 0.81 appear as 0.8100. NaN and
// infinities render as an empty cell.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int for tabular output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatBool formats a boolean for tabular output.
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// formatMonth formats a month timestamp as YYYY-MM.
func formatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// Round4 rounds to four decimal places for JSON presentation. Non-finite
// inputs collapse to zero so encoded documents stay valid.
func Round4(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Round(f*10000) / 10000
}
