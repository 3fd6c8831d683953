package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
)

func ptr(v float64) *float64 { return &v }

func sampleBottlenecks() []roadnet.Bottleneck {
	return []roadnet.Bottleneck{
		roadnet.NewBottleneck(5, linearref.NewInterval(0, 0.5), 1539, 63,
			"Vekt", "Vekt (35t < 50t)", "BRU",
			ptr(35), nil, nil, roadnet.SourceBridge, "LINESTRING (0 0, 2000 0)"),
		roadnet.NewBottleneck(6, linearref.NewInterval(0, 1), 1539, 63,
			"Høyde", "Høyde (4.1m < 4.5m)", "HØYDE",
			nil, nil, ptr(4.1), "", "LINESTRING (0 0, 1000 0)"),
		roadnet.NewBottleneck(7, linearref.NewInterval(0, 1), 1554, 64,
			"Vekt", "Vekt (40t < 50t)", "VEG",
			ptr(40), nil, nil, roadnet.SourceRoad, ""),
	}
}

func sampleVehicle() roadnet.VehicleProfile {
	return roadnet.NewVehicleProfile("NORMALTRANSPORT", 50, 60, 19.5, 4.5)
}

func TestWriteBottlenecksCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBottlenecksCSV(&buf, sampleBottlenecks()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "veglenkesekv_id;startpos;sluttpos;kommune;vegnummer;begrensning_type;beskrivelse;arsak;tillatt_tonn;maks_lengde;min_hoyde;dim_kilde", lines[0])
	assert.Contains(t, lines[1], "5;0.000;0.500;1539;63;Vekt;Vekt (35t < 50t);BRU;35;;;BRU")
	// Absent values are empty cells, not zeros.
	assert.Contains(t, lines[2], ";;4.1;")
}

func TestSummarize(t *testing.T) {
	rows := Summarize(sampleBottlenecks())
	require.Len(t, rows, 2)

	assert.Equal(t, 1539, rows[0].Municipality)
	assert.Equal(t, 63, rows[0].RoadNumber)
	assert.Equal(t, 2, rows[0].Count)
	assert.InDelta(t, 3.0, rows[0].LengthKm, 1e-9)

	assert.Equal(t, 1554, rows[1].Municipality)
	assert.Equal(t, 1, rows[1].Count)
	assert.Zero(t, rows[1].LengthKm, "missing geometry measures zero, not an error")
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, Summarize(sampleBottlenecks())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "kommune;vegnummer;antall;lengde_km", lines[0])
	assert.Equal(t, "1539;63;2;3.0", lines[1])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleVehicle(), sampleBottlenecks()))

	out := buf.String()
	assert.Contains(t, out, "# Flaskehalser for NORMALTRANSPORT")
	assert.Contains(t, out, "Krav: 50t totalvekt, 60t bru, 19.5m lengde, 4.5m frihøyde.")
	assert.Contains(t, out, "Antall flaskehalser: 3")
	assert.Contains(t, out, "| 1539 | FV63 | 2 | 3.0 |")
	assert.Contains(t, out, "| 5 | 0.000-0.500 | 1539 | FV63 | Vekt | Vekt (35t < 50t) | BRU |")
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flaskehalser.xlsx")
	require.NoError(t, WriteExcel(path, sampleVehicle(), sampleBottlenecks()))
	assert.FileExists(t, path)
}

func TestWriteRutParcelsCSV(t *testing.T) {
	var buf bytes.Buffer
	parcels := []roadnet.RutParcel{
		roadnet.NewRutParcel(63, 0, 1000, 17.44, 98),
	}
	require.NoError(t, WriteRutParcelsCSV(&buf, parcels))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "vegnummer;parsell_start;parsell_slutt;spor_p90;antall_malinger", lines[0])
	assert.Equal(t, "63;0;1000;17.4;98", lines[1])
}

func TestWriteBottlenecksGPKG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flaskehalser.gpkg")
	ctx := context.Background()

	corridors := []roadnet.Corridor{
		roadnet.NewCorridor(5, 63, 1539, ptr(35), nil, ptr(4.1), "BRU", 2,
			"LINESTRING(0 0,100 0)"),
	}
	require.NoError(t, WriteBottlenecksGPKG(ctx, path, 5973, sampleBottlenecks(), corridors))

	db, err := database.NewDatabase(ctx, "sqlite:///"+path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int64
	require.NoError(t, db.Session(ctx).Raw("SELECT COUNT(*) FROM flaskehalser").Scan(&count).Error)
	assert.Equal(t, int64(3), count)

	var geomType string
	require.NoError(t, db.Session(ctx).Raw(
		"SELECT geometry_type_name FROM gpkg_geometry_columns WHERE table_name = 'flaskehalser'",
	).Scan(&geomType).Error)
	assert.Equal(t, "LINESTRING", geomType)

	var blob []byte
	require.NoError(t, db.Session(ctx).Raw(
		"SELECT geom FROM flaskehalser WHERE veglenkesekv_id = 5",
	).Scan(&blob).Error)
	require.True(t, len(blob) > 40)
	assert.Equal(t, byte('G'), blob[0])
	assert.Equal(t, byte('P'), blob[1])

	require.NoError(t, db.Session(ctx).Raw("SELECT COUNT(*) FROM korridorer").Scan(&count).Error)
	assert.Equal(t, int64(1), count)

	var dimKilde string
	require.NoError(t, db.Session(ctx).Raw(
		"SELECT dim_kilde FROM korridorer WHERE veglenkesekv_id = 5",
	).Scan(&dimKilde).Error)
	assert.Equal(t, "BRU", dimKilde)
}
