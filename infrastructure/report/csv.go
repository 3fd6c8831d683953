package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mrfylke/vegprofil/domain/roadnet"
)

// bottleneckHeader is the column order of the bottleneck CSV export.
var bottleneckHeader = []string{
	"veglenkesekv_id", "startpos", "sluttpos", "kommune", "vegnummer",
	"begrensning_type", "beskrivelse", "arsak",
	"tillatt_tonn", "maks_lengde", "min_hoyde", "dim_kilde",
}

// WriteBottlenecksCSV writes bottlenecks as semicolon-delimited CSV, the
// variant Norwegian Excel expects.
func WriteBottlenecksCSV(w io.Writer, bottlenecks []roadnet.Bottleneck) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(bottleneckHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, b := range bottlenecks {
		row := []string{
			strconv.FormatInt(b.LinkID(), 10),
			formatPosition(b.Position().Start()),
			formatPosition(b.Position().End()),
			strconv.Itoa(b.Municipality()),
			strconv.Itoa(b.RoadNumber()),
			b.LimitationType(),
			b.Description(),
			b.Cause(),
			formatValue(b.Tonnage()),
			formatValue(b.MaxLength()),
			formatValue(b.MinHeight()),
			b.DimSource(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// summaryHeader is the column order of the summary CSV export.
var summaryHeader = []string{"kommune", "vegnummer", "antall", "lengde_km"}

// WriteSummaryCSV writes per-municipality/road summary rows as
// semicolon-delimited CSV.
func WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Municipality),
			strconv.Itoa(r.RoadNumber),
			strconv.Itoa(r.Count),
			formatKm(r.LengthKm),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// rutHeader is the column order of the rut parcel CSV export.
var rutHeader = []string{"vegnummer", "parsell_start", "parsell_slutt", "spor_p90", "antall_malinger"}

// WriteRutParcelsCSV writes aggregated rut parcels as semicolon-delimited CSV.
func WriteRutParcelsCSV(w io.Writer, parcels []roadnet.RutParcel) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(rutHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range parcels {
		record := []string{
			strconv.Itoa(p.RoadNumber()),
			strconv.FormatFloat(p.StartMeter(), 'f', 0, 64),
			strconv.FormatFloat(p.EndMeter(), 'f', 0, 64),
			fmt.Sprintf("%.1f", p.P90()),
			strconv.Itoa(p.Measurements()),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
