package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/application/service"
	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/testdb"
)

func TestReportWritesAllFormats(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	store := persistence.NewBottleneckStore(db)
	require.NoError(t, store.ReplaceAll(ctx, []roadnet.Bottleneck{
		roadnet.NewBottleneck(5, linearref.NewInterval(0, 1), 1539, 63,
			"Vekt", "Vekt (35t < 50t)", "BRU",
			ptr(35), nil, nil, roadnet.SourceBridge, "LINESTRING (0 0, 100 0)"),
	}))

	svc := service.NewReport(store, persistence.NewCorridorStore(db), persistence.NewRutStore(db), testVehicle(), dir, 5973, testLogger())
	require.NoError(t, svc.Run(ctx, service.FormatAll))

	for _, name := range []string{"flaskehalser.csv", "oppsummering.csv", "flaskehalser.md", "flaskehalser.xlsx", "flaskehalser.gpkg"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	data, err := os.ReadFile(filepath.Join(dir, "flaskehalser.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "NORMALTRANSPORT")
}

func TestReportUnknownFormat(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	store := persistence.NewBottleneckStore(db)
	require.NoError(t, store.ReplaceAll(ctx, []roadnet.Bottleneck{
		roadnet.NewBottleneck(5, linearref.NewInterval(0, 1), 1539, 63,
			"Vekt", "Vekt (35t < 50t)", "", nil, nil, nil, "", ""),
	}))

	svc := service.NewReport(store, persistence.NewCorridorStore(db), persistence.NewRutStore(db), testVehicle(), t.TempDir(), 5973, testLogger())
	assert.Error(t, svc.Run(ctx, "pdf"))
}

func TestReportRequiresBottlenecks(t *testing.T) {
	db := testdb.New(t)
	svc := service.NewReport(
		persistence.NewBottleneckStore(db),
		persistence.NewCorridorStore(db),
		persistence.NewRutStore(db),
		testVehicle(), t.TempDir(), 5973, testLogger(),
	)
	assert.ErrorIs(t, svc.Run(context.Background(), service.FormatCSV), service.ErrNoBottlenecks)
}

func TestReportWriteRutsSkipsWhenEmpty(t *testing.T) {
	db := testdb.New(t)
	dir := t.TempDir()
	svc := service.NewReport(
		persistence.NewBottleneckStore(db),
		persistence.NewCorridorStore(db),
		persistence.NewRutStore(db),
		testVehicle(), dir, 5973, testLogger(),
	)

	require.NoError(t, svc.WriteRuts(context.Background()))
	assert.NoFileExists(t, filepath.Join(dir, "spordybde.csv"))
}
