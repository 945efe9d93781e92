package exporter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"pads to four decimals", 0.81, "0.8100"},
		{"rounds half away", 0.00005, "0.0001"},
		{"negative", -1.5, "-1.5000"},
		{"zero", 0, "0.0000"},
		{"nan is empty", math.NaN(), ""},
		{"inf is empty", math.Inf(1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFloat(tt.input))
		})
	}
}

func TestRound4(t *testing.T) {
	assert.InDelta(t, 0.1235, Round4(0.12346), 1e-12)
	assert.InDelta(t, -0.1235, Round4(-0.12346), 1e-12)
	assert.Zero(t, Round4(math.NaN()))
	assert.Zero(t, Round4(math.Inf(-1)))
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "2020-03", formatMonth(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "true", formatBool(true))
	assert.Equal(t, "false", formatBool(false))
}
