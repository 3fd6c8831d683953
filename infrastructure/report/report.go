// Package report renders the pipeline's outputs: semicolon-delimited CSV,
// Markdown summaries, Excel workbooks and GeoPackage layers.
package report

import (
	"fmt"
	"strconv"
)

// formatValue renders an optional number for report cells: absent data is
// an empty cell, never a zero.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatKm renders a kilometer figure with one decimal.
func formatKm(km float64) string {
	return fmt.Sprintf("%.1f", km)
}

// formatPosition renders a link position with three decimals, the precision
// NVDB uses for relative positions.
func formatPosition(pos float64) string {
	return strconv.FormatFloat(pos, 'f', 3, 64)
}
