package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"cardsmith/internal/card"
)

const (
	defaultTextColor = "#111827"
	defaultFontSize  = 14.0
)

// parseColor reads a #rgb or #rrggbb color, falling back when value is
// empty or malformed.
func parseColor(value, fallback string) colorful.Color {
	if c, err := colorful.Hex(value); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}

// alpha treats an unset opacity as fully opaque.
func alpha(st card.Style) float64 {
	if st.Opacity <= 0 {
		return 1
	}
	return math.Min(1, st.Opacity)
}

func fontSize(st card.Style) float64 {
	if st.FontSize <= 0 {
		return defaultFontSize
	}
	return st.FontSize
}

func progressRatio(e card.Element) float64 {
	value, _ := strconv.ParseFloat(e.Data["value"], 64)
	maxValue, err := strconv.ParseFloat(e.Data["max"], 64)
	if err != nil || maxValue <= 0 {
		maxValue = 100
	}
	ratio := value / maxValue
	if math.IsNaN(ratio) {
		return 0
	}
	return math.Max(0, math.Min(1, ratio))
}

func parseSeries(series string) []float64 {
	var values []float64
	for _, part := range strings.Split(series, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err == nil {
			values = append(values, v)
		}
	}
	return values
}

func seriesRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// tableRows splits the "a,b|c,d" table payload into cells.
func tableRows(e card.Element) [][]string {
	var rows [][]string
	for _, row := range strings.Split(e.Data["rows"], "|") {
		if row == "" {
			continue
		}
		rows = append(rows, strings.Split(row, ","))
	}
	return rows
}
