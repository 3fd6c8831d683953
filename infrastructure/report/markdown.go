package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrfylke/vegprofil/domain/roadnet"
)

// WriteMarkdown writes a human-readable bottleneck report: a summary table
// per municipality and road, followed by the individual bottlenecks.
func WriteMarkdown(w io.Writer, vehicle roadnet.VehicleProfile, bottlenecks []roadnet.Bottleneck) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Flaskehalser for %s\n\n", vehicle.Name())
	fmt.Fprintf(&b, "Krav: %st totalvekt, %st bru, %sm lengde, %sm frihøyde.\n\n",
		trimFloat(vehicle.Tonnage()), trimFloat(vehicle.BridgeTonnage()),
		trimFloat(vehicle.MaxLength()), trimFloat(vehicle.MinHeight()))
	fmt.Fprintf(&b, "Antall flaskehalser: %d\n\n", len(bottlenecks))

	rows := Summarize(bottlenecks)
	if len(rows) > 0 {
		b.WriteString("## Oppsummering\n\n")
		b.WriteString("| Kommune | Vegnummer | Antall | Lengde (km) |\n")
		b.WriteString("|---------|-----------|--------|-------------|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %d | FV%d | %d | %s |\n", r.Municipality, r.RoadNumber, r.Count, formatKm(r.LengthKm))
		}
		b.WriteString("\n")
	}

	if len(bottlenecks) > 0 {
		b.WriteString("## Detaljer\n\n")
		b.WriteString("| Veglenke | Posisjon | Kommune | Veg | Begrensning | Beskrivelse | Årsak |\n")
		b.WriteString("|----------|----------|---------|-----|-------------|-------------|-------|\n")
		for _, bn := range bottlenecks {
			fmt.Fprintf(&b, "| %d | %s-%s | %d | FV%d | %s | %s | %s |\n",
				bn.LinkID(),
				formatPosition(bn.Position().Start()), formatPosition(bn.Position().End()),
				bn.Municipality(), bn.RoadNumber(),
				bn.LimitationType(), bn.Description(), bn.Cause())
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func trimFloat(v float64) string {
	return formatValue(&v)
}
