package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/nvdb"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/log"
)

// ErrNoMeasurements indicates the measurement file contained no usable rows.
var ErrNoMeasurements = errors.New("no usable rut depth measurements in input")

// Ruts aggregates raw rut depth measurements into fixed-length parcels with
// their 90th percentile. The survey vehicles deliver semicolon-delimited CSV
// with one row per measured point: road number, meter position and rut
// depth in millimeters, with a comma decimal separator.
type Ruts struct {
	store        persistence.RutStore
	parcelLength float64
	logger       *log.Logger
}

// NewRuts creates a Ruts service.
func NewRuts(store persistence.RutStore, parcelLength float64, logger *log.Logger) *Ruts {
	return &Ruts{
		store:        store,
		parcelLength: parcelLength,
		logger:       logger.With("stage", "ruts"),
	}
}

// RunFile aggregates the measurements in a CSV file and rebuilds the parcel
// table.
func (s *Ruts) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open measurement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.Run(ctx, f)
}

// Run aggregates measurements from r and rebuilds the parcel table.
func (s *Ruts) Run(ctx context.Context, r io.Reader) error {
	parcels, err := s.aggregate(r)
	if err != nil {
		return err
	}
	if len(parcels) == 0 {
		return ErrNoMeasurements
	}

	if err := s.store.ReplaceAll(ctx, parcels); err != nil {
		return err
	}

	s.logger.Info("rut parcels aggregated", "parcels", len(parcels))
	return nil
}

func (s *Ruts) aggregate(r io.Reader) ([]roadnet.RutParcel, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	type parcelKey struct {
		road   int
		parcel int
	}
	values := make(map[parcelKey][]float64)

	skipped := 0
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read measurement row: %w", err)
		}
		if first {
			first = false
			// Header row, if present.
			if _, err := strconv.Atoi(record[0]); err != nil {
				continue
			}
		}
		if len(record) < 3 {
			skipped++
			continue
		}

		road, err := strconv.Atoi(record[0])
		if err != nil {
			skipped++
			continue
		}
		meter, okM := nvdb.ParseFloat(record[1])
		depth, okD := nvdb.ParseFloat(record[2])
		if !okM || !okD || depth < 0 {
			skipped++
			continue
		}

		key := parcelKey{road: road, parcel: int(math.Floor(meter / s.parcelLength))}
		values[key] = append(values[key], depth)
	}

	if skipped > 0 {
		s.logger.Warn("measurement rows skipped", "count", skipped)
	}

	parcels := make([]roadnet.RutParcel, 0, len(values))
	for key, depths := range values {
		start := float64(key.parcel) * s.parcelLength
		parcels = append(parcels, roadnet.NewRutParcel(
			key.road,
			start,
			start+s.parcelLength,
			roadnet.Percentile(depths, 90),
			len(depths),
		))
	}
	sort.Slice(parcels, func(i, j int) bool {
		if parcels[i].RoadNumber() != parcels[j].RoadNumber() {
			return parcels[i].RoadNumber() < parcels[j].RoadNumber()
		}
		return parcels[i].StartMeter() < parcels[j].StartMeter()
	})
	return parcels, nil
}
