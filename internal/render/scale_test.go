package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScale_QuantileBins(t *testing.T) {
	values := map[string]float64{}
	for i := 1; i <= 10; i++ {
		values[string(rune('a'+i))] = float64(i)
	}

	s := NewScale(values, DefaultPalette)

	require.Len(t, s.Thresholds, len(DefaultPalette)-1)
	assert.Equal(t, []float64{2, 4, 6, 8}, s.Thresholds)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 10.0, s.Max)

	assert.Equal(t, 0, s.Bin(1))
	assert.Equal(t, 0, s.Bin(2))
	assert.Equal(t, 1, s.Bin(3))
	assert.Equal(t, 4, s.Bin(10))
	assert.Equal(t, DefaultPalette[4], s.Color(9))

	lo, hi := s.BinRange(0)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
	lo, hi = s.BinRange(4)
	assert.Equal(t, 8.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestNewScale_Empty(t *testing.T) {
	s := NewScale(nil, nil)

	assert.Equal(t, DefaultPalette, s.Palette)
	assert.Empty(t, s.Thresholds)
	assert.Equal(t, 0, s.Bin(3))
}

func TestNewScale_SingleValue(t *testing.T) {
	s := NewScale(map[string]float64{"af": 1.5}, []string{"#fff", "#000"})

	assert.Equal(t, []float64{1.5}, s.Thresholds)
	assert.Equal(t, "#fff", s.Color(1.5))
}

func TestFormatGDP(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{59.78, "59.78"},
		{1234.4, "1,234"},
		{543300000000, "543,300,000,000"},
		{0.5, "0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGDP(math.Log10(tt.value)), "value %v", tt.value)
	}
}
