package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"below one thousand", 999, "$999.00"},
		{"thousands", 1500, "$1.50K"},
		{"millions", 2500000, "$2.50M"},
		{"billions", 3100000000, "$3.10B"},
		{"trillions", 1e12, "$1.00T"},
		{"boundary thousand", 1000, "$1.00K"},
		{"zero", 0, "$0.00"},
		{"negative stays plain", -1500, "$-1500.00"},
		{"nan", math.NaN(), "N/A"},
		{"positive infinity", math.Inf(1), "N/A"},
		{"negative infinity", math.Inf(-1), "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.value))
		})
	}
}

func TestFormatMarketCap(t *testing.T) {
	assert.Equal(t, "N/A", FormatMarketCap(0))
	assert.Equal(t, "N/A", FormatMarketCap(math.NaN()))
	assert.Equal(t, "$2.50M", FormatMarketCap(2500000))
	assert.Equal(t, "$1.00T", FormatMarketCap(1e12))
}

func TestFormatVolumeDollars(t *testing.T) {
	// 10M shares at $150 is a $1.50B dollar volume.
	assert.Equal(t, "$1.50B", FormatVolumeDollars(10000000, 150))
	assert.Equal(t, "$0.00", FormatVolumeDollars(0, 150))
	assert.Equal(t, "N/A", FormatVolumeDollars(math.NaN(), 150))
	assert.Equal(t, "N/A", FormatVolumeDollars(1e6, math.Inf(1)))
}
