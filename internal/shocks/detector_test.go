package shocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ymcli/internal/config"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func series(prices ...float64) []PricePoint {
	out := make([]PricePoint, len(prices))
	for i, p := range prices {
		out[i] = PricePoint{Month: month(2023, time.Month(i+1)), AvgPrice: p}
	}
	return out
}

func defaultDetector() *Detector {
	return NewDetector(config.ShockConfig{
		PriceChangeThreshold: 0.15,
		VolatilityThreshold:  0.25,
		VolatilityWindow:     3,
	}, nil)
}

func TestDetectFlatSeries(t *testing.T) {
	d := defaultDetector()
	assert.Empty(t, d.Detect("ibb", series(100, 100, 100, 100, 100)))
}

func TestDetectShortSeries(t *testing.T) {
	d := defaultDetector()
	assert.Empty(t, d.Detect("ibb", nil))
	assert.Empty(t, d.Detect("ibb", series(100)))
}

func TestDetectSingleSurge(t *testing.T) {
	d := defaultDetector()

	events := d.Detect("aden", series(100, 100, 100, 150))
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "aden", ev.Region)
	assert.Equal(t, month(2023, time.April), ev.Month)
	assert.Equal(t, TypeSurge, ev.Type)
	assert.InDelta(t, 0.5, ev.Magnitude, 1e-12)
	assert.Equal(t, SeverityMedium, ev.Severity)
}

func TestDetectDrop(t *testing.T) {
	d := defaultDetector()

	events := d.Detect("aden", series(200, 200, 120))
	require.Len(t, events, 1)
	assert.Equal(t, TypeDrop, events[0].Type)
	assert.InDelta(t, 0.4, events[0].Magnitude, 1e-12)
}

func TestDetectHighSeverity(t *testing.T) {
	// Violent swings push the window's coefficient of variation above
	// twice the threshold.
	d := defaultDetector()

	events := d.Detect("ta'izz", series(100, 300, 50))
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, SeverityHigh, last.Severity)
	assert.Greater(t, last.Volatility, 0.5)
}

func TestDetectZeroPreviousPrice(t *testing.T) {
	d := defaultDetector()

	// The transition off the zero month is indeterminate and skipped;
	// the following flat months raise nothing.
	events := d.Detect("hajjah", []PricePoint{
		{Month: month(2023, time.January), AvgPrice: 0},
		{Month: month(2023, time.February), AvgPrice: 100},
		{Month: month(2023, time.March), AvgPrice: 100},
	})
	for _, ev := range events {
		assert.NotEqual(t, month(2023, time.February), ev.Month, "zero-previous transition must be skipped")
	}
}

func TestDetectUnsortedInput(t *testing.T) {
	d := defaultDetector()

	shuffled := []PricePoint{
		{Month: month(2023, time.April), AvgPrice: 150},
		{Month: month(2023, time.January), AvgPrice: 100},
		{Month: month(2023, time.March), AvgPrice: 100},
		{Month: month(2023, time.February), AvgPrice: 100},
	}

	events := d.Detect("dhamar", shuffled)
	require.Len(t, events, 1)
	assert.Equal(t, month(2023, time.April), events[0].Month)
	assert.Equal(t, month(2023, time.April), shuffled[0].Month, "input slice must not be reordered")
}
