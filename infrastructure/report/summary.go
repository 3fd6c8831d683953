package report

import (
	"sort"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/geometry"
)

// SummaryRow aggregates the bottlenecks of one municipality and road:
// how many there are and how many kilometers of road they cover.
type SummaryRow struct {
	Municipality int
	RoadNumber   int
	Count        int
	LengthKm     float64
}

// Summarize groups bottlenecks per municipality and road number. Rows come
// back sorted by municipality then road, so repeated runs produce identical
// reports.
func Summarize(bottlenecks []roadnet.Bottleneck) []SummaryRow {
	type key struct {
		municipality int
		road         int
	}

	acc := make(map[key]*SummaryRow)
	for _, b := range bottlenecks {
		k := key{municipality: b.Municipality(), road: b.RoadNumber()}
		row, ok := acc[k]
		if !ok {
			row = &SummaryRow{Municipality: k.municipality, RoadNumber: k.road}
			acc[k] = row
		}
		row.Count++
		row.LengthKm += geometry.LengthKm(b.WKT())
	}

	rows := make([]SummaryRow, 0, len(acc))
	for _, row := range acc {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Municipality != rows[j].Municipality {
			return rows[i].Municipality < rows[j].Municipality
		}
		return rows[i].RoadNumber < rows[j].RoadNumber
	})
	return rows
}
