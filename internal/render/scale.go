package render

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPalette is a sequential light-to-dark green scale.
var DefaultPalette = []string{"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"}

// Fixed colors for the two series without values.
const (
	colorNotFound = "#d9d9d9"
	colorNoData   = "#fdae6b"
)

// Scale colors log10 values by quantile bins. Thresholds[i] is the upper
// bound of bin i; values above the last threshold fall in the last bin.
type Scale struct {
	Palette    []string
	Thresholds []float64
	Min, Max   float64
}

// NewScale computes len(palette) quantile bins over values.
func NewScale(values map[string]float64, palette []string) Scale {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	s := Scale{Palette: palette}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		sorted = append(sorted, v)
	}
	sort.Float64s(sorted)

	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	n := len(palette)
	s.Thresholds = make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		s.Thresholds = append(s.Thresholds, stat.Quantile(float64(i)/float64(n), stat.Empirical, sorted, nil))
	}
	return s
}

// Bin returns the palette index for v.
func (s Scale) Bin(v float64) int {
	i := 0
	for i < len(s.Thresholds) && v > s.Thresholds[i] {
		i++
	}
	return i
}

// Color returns the fill for v.
func (s Scale) Color(v float64) string {
	return s.Palette[s.Bin(v)]
}

// BinRange returns the value range covered by bin i, in log10 units.
func (s Scale) BinRange(i int) (lo, hi float64) {
	lo, hi = s.Min, s.Max
	if i > 0 && i-1 < len(s.Thresholds) {
		lo = s.Thresholds[i-1]
	}
	if i < len(s.Thresholds) {
		hi = s.Thresholds[i]
	}
	return lo, hi
}

var printer = message.NewPrinter(language.English)

// FormatGDP prints 10^logValue with thousands separators.
func FormatGDP(logValue float64) string {
	v := math.Pow(10, logValue)
	if v >= 1000 {
		return printer.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%.2f", v)
}
