package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mrfylke/vegprofil/domain/roadnet"
)

// WriteExcel writes an Excel workbook with one sheet of bottlenecks and one
// summary sheet.
func WriteExcel(path string, vehicle roadnet.VehicleProfile, bottlenecks []roadnet.Bottleneck) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const detailSheet = "Flaskehalser"
	const summarySheet = "Oppsummering"

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{
		"Veglenke", "Startpos", "Sluttpos", "Kommune", "Vegnummer",
		"Begrensning", "Beskrivelse", "Årsak", "Tillatt tonn", "Maks lengde", "Min høyde", "Dim. kilde",
	}
	if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, b := range bottlenecks {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{
			b.LinkID(),
			b.Position().Start(),
			b.Position().End(),
			b.Municipality(),
			b.RoadNumber(),
			b.LimitationType(),
			b.Description(),
			b.Cause(),
			cellValue(b.Tonnage()),
			cellValue(b.MaxLength()),
			cellValue(b.MinHeight()),
			b.DimSource(),
		}
		if err := f.SetSheetRow(detailSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	summaryHeader := []any{"Kommune", "Vegnummer", "Antall", "Lengde (km)"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, r := range Summarize(bottlenecks) {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{r.Municipality, r.RoadNumber, r.Count, r.LengthKm}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}

	title := fmt.Sprintf("Flaskehalser for %s", vehicle.Name())
	if err := f.SetDocProps(&excelize.DocProperties{Title: title}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// cellValue converts an optional number to a cell: absent data stays an
// empty cell.
func cellValue(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
