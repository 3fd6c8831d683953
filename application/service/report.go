package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/infrastructure/report"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Report formats, selectable on the command line.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatExcel    = "excel"
	FormatGPKG     = "gpkg"
	FormatAll      = "all"
)

// Report renders the stored bottlenecks and rut parcels to the report
// directory.
type Report struct {
	bottlenecks persistence.BottleneckStore
	corridors   persistence.CorridorStore
	ruts        persistence.RutStore
	vehicle     roadnet.VehicleProfile
	reportDir   string
	srid        int
	logger      *log.Logger
}

// NewReport creates a Report service.
func NewReport(bottlenecks persistence.BottleneckStore, corridors persistence.CorridorStore, ruts persistence.RutStore, vehicle roadnet.VehicleProfile, reportDir string, srid int, logger *log.Logger) *Report {
	return &Report{
		bottlenecks: bottlenecks,
		corridors:   corridors,
		ruts:        ruts,
		vehicle:     vehicle,
		reportDir:   reportDir,
		srid:        srid,
		logger:      logger.With("stage", "report"),
	}
}

// Run writes the requested report format. FormatAll writes every format.
func (s *Report) Run(ctx context.Context, format string) error {
	items, err := s.bottlenecks.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrNoBottlenecks
	}

	writers := map[string]func(context.Context, []roadnet.Bottleneck) error{
		FormatCSV:      s.writeCSV,
		FormatMarkdown: s.writeMarkdown,
		FormatExcel:    s.writeExcel,
		FormatGPKG:     s.writeGPKG,
	}

	if format == FormatAll {
		for _, name := range []string{FormatCSV, FormatMarkdown, FormatExcel, FormatGPKG} {
			if err := writers[name](ctx, items); err != nil {
				return err
			}
		}
		return nil
	}

	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown report format %q", format)
	}
	return write(ctx, items)
}

func (s *Report) writeCSV(_ context.Context, items []roadnet.Bottleneck) error {
	path := filepath.Join(s.reportDir, "flaskehalser.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := report.WriteBottlenecksCSV(f, items); err != nil {
		return err
	}

	summaryPath := filepath.Join(s.reportDir, "oppsummering.csv")
	sf, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = sf.Close() }()

	if err := report.WriteSummaryCSV(sf, report.Summarize(items)); err != nil {
		return err
	}

	s.logger.Info("csv reports written", "path", path)
	return nil
}

func (s *Report) writeMarkdown(_ context.Context, items []roadnet.Bottleneck) error {
	path := filepath.Join(s.reportDir, "flaskehalser.md")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := report.WriteMarkdown(f, s.vehicle, items); err != nil {
		return err
	}
	s.logger.Info("markdown report written", "path", path)
	return nil
}

func (s *Report) writeExcel(_ context.Context, items []roadnet.Bottleneck) error {
	path := filepath.Join(s.reportDir, "flaskehalser.xlsx")
	if err := report.WriteExcel(path, s.vehicle, items); err != nil {
		return err
	}
	s.logger.Info("excel report written", "path", path)
	return nil
}

func (s *Report) writeGPKG(ctx context.Context, items []roadnet.Bottleneck) error {
	path := filepath.Join(s.reportDir, "flaskehalser.gpkg")
	// GeoPackage creation is not idempotent over an existing file.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove old geopackage: %w", err)
	}
	corridors, err := s.corridors.List(ctx)
	if err != nil {
		return err
	}
	if err := report.WriteBottlenecksGPKG(ctx, path, s.srid, items, corridors); err != nil {
		return err
	}
	s.logger.Info("geopackage written", "path", path)
	return nil
}

// WriteRuts writes the rut parcel CSV, when parcels have been aggregated.
func (s *Report) WriteRuts(ctx context.Context) error {
	parcels, err := s.ruts.List(ctx)
	if err != nil {
		return err
	}
	if len(parcels) == 0 {
		return nil
	}

	path := filepath.Join(s.reportDir, "spordybde.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := report.WriteRutParcelsCSV(f, parcels); err != nil {
		return err
	}
	s.logger.Info("rut parcel report written", "path", path, "parcels", len(parcels))
	return nil
}
