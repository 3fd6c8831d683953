package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/nvdb"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/log"
)

// maxSkipLogs caps how many individual skipped records are logged per
// dataset; beyond it only the final count is reported.
const maxSkipLogs = 10

// Ingest fetches the road network and the restriction datasets from NVDB
// and rebuilds the local tables.
type Ingest struct {
	client       *nvdb.Client
	segments     persistence.SegmentStore
	restrictions persistence.RestrictionStore
	county       int
	roadRef      string
	logger       *log.Logger
}

// NewIngest creates an Ingest service.
func NewIngest(client *nvdb.Client, segments persistence.SegmentStore, restrictions persistence.RestrictionStore, cfg config.NVDBConfig, logger *log.Logger) *Ingest {
	return &Ingest{
		client:       client,
		segments:     segments,
		restrictions: restrictions,
		county:       cfg.County(),
		roadRef:      cfg.RoadRef(),
		logger:       logger.With("stage", "fetch"),
	}
}

// Run fetches the network and the restriction datasets concurrently and replaces the stored
// tables. A failed dataset fails the run; tables are only rebuilt after
// every fetch succeeded, so a network error never leaves half the data
// from one run and half from another.
func (s *Ingest) Run(ctx context.Context) error {
	var (
		network []nvdb.NetworkSegment
		weights []nvdb.RoadObject
		winter  []nvdb.RoadObject
		bridges []nvdb.RoadObject
		heights []nvdb.RoadObject
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		network, err = s.client.NetworkSegments(gctx, s.county, s.roadRef)
		return err
	})
	g.Go(func() error {
		var err error
		weights, err = s.client.RoadObjects(gctx, nvdb.ObjectTypeBruksklasse, s.county, s.roadRef)
		return err
	})
	g.Go(func() error {
		var err error
		winter, err = s.client.RoadObjects(gctx, nvdb.ObjectTypeBruksklasseVtr, s.county, s.roadRef)
		return err
	})
	g.Go(func() error {
		var err error
		bridges, err = s.client.RoadObjects(gctx, nvdb.ObjectTypeBridge, s.county, s.roadRef)
		return err
	})
	g.Go(func() error {
		var err error
		heights, err = s.client.RoadObjects(gctx, nvdb.ObjectTypeHeight, s.county, s.roadRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch from nvdb: %w", err)
	}

	segments := s.convertSegments(network)
	if err := s.segments.ReplaceAll(ctx, segments); err != nil {
		return err
	}

	weightRecords := s.convertWeights(weights)
	weightRecords = append(weightRecords, s.convertWeights(winter)...)
	if err := s.restrictions.ReplaceWeights(ctx, weightRecords); err != nil {
		return err
	}

	if err := s.restrictions.ReplaceBridges(ctx, s.convertBridges(bridges)); err != nil {
		return err
	}
	if err := s.restrictions.ReplaceHeights(ctx, s.convertHeights(heights)); err != nil {
		return err
	}

	s.logger.Info("ingest complete",
		"segments", len(segments),
		"weight_restrictions", len(weightRecords),
		"bridges", len(bridges),
		"height_restrictions", len(heights))
	return nil
}

func (s *Ingest) convertSegments(network []nvdb.NetworkSegment) []roadnet.RoadSegment {
	out := make([]roadnet.RoadSegment, 0, len(network))
	skipped := 0
	for _, seg := range network {
		// Walking and cycling links carry no vehicle restrictions.
		if seg.Trafikantgruppe != "" && seg.Trafikantgruppe != nvdb.TrafficGroupVehicles {
			continue
		}
		if seg.Vegsystemreferanse == nil {
			skipped++
			if skipped <= maxSkipLogs {
				s.logger.Debug("segment without road system reference skipped", "link_id", seg.VeglenkesekvensID)
			}
			continue
		}
		wkt := ""
		if seg.Geometri != nil {
			wkt = seg.Geometri.WKT
		}
		out = append(out, roadnet.NewRoadSegment(
			seg.VeglenkesekvensID,
			linearref.NewInterval(seg.StartPosisjon, seg.SluttPosisjon),
			seg.Vegsystemreferanse.Vegsystem.Vegkategori,
			seg.Vegsystemreferanse.Vegsystem.Nummer,
			seg.Kommune,
			wkt,
		))
	}
	if skipped > 0 {
		s.logger.Warn("segments skipped", "count", skipped)
	}
	return out
}

func (s *Ingest) convertWeights(objects []nvdb.RoadObject) []roadnet.WeightRestriction {
	out := make([]roadnet.WeightRestriction, 0, len(objects))
	skipped := 0
	for _, obj := range objects {
		placement, ok := nvdb.FirstPlacement(obj)
		if !ok {
			skipped++
			if skipped <= maxSkipLogs {
				s.logger.Debug("weight record without placement skipped", "nvdb_id", obj.ID)
			}
			continue
		}

		text := nvdb.StringProperty(obj.Egenskaper, nvdb.PropBruksklasse)
		if text == "" {
			text = nvdb.StringProperty(obj.Egenskaper, nvdb.PropBruksklasseVinter)
		}
		tonnage := nvdb.TonnesFromText(text)

		var maxLength *float64
		if l, ok := nvdb.FloatProperty(obj.Egenskaper, nvdb.PropMaxLength); ok && l > 0 {
			maxLength = &l
		}

		special := strings.Contains(strings.ToLower(text), "spesiell")

		out = append(out, roadnet.NewWeightRestriction(
			placement.VeglenkesekvensID,
			linearref.NewInterval(placement.StartPosisjon, placement.SluttPosisjon),
			tonnage,
			text,
			maxLength,
			special,
			nvdb.GeometryWKT(obj),
		))
	}
	if skipped > 0 {
		s.logger.Warn("weight records skipped", "count", skipped)
	}
	return out
}

func (s *Ingest) convertBridges(objects []nvdb.RoadObject) []roadnet.BridgeRestriction {
	out := make([]roadnet.BridgeRestriction, 0, len(objects))
	skipped := 0
	for _, obj := range objects {
		category := nvdb.StringProperty(obj.Egenskaper, nvdb.PropBridgeCategory)
		if !nvdb.IsRoadBridge(category) {
			continue
		}

		placement, ok := nvdb.FirstPlacement(obj)
		if !ok {
			skipped++
			if skipped <= maxSkipLogs {
				s.logger.Debug("bridge without placement skipped", "nvdb_id", obj.ID)
			}
			continue
		}

		loadText := nvdb.StringProperty(obj.Egenskaper, nvdb.PropBridgeLoad)
		out = append(out, roadnet.NewBridgeRestriction(
			placement.VeglenkesekvensID,
			linearref.NewInterval(placement.StartPosisjon, placement.SluttPosisjon),
			nvdb.TonnesFromText(loadText),
			obj.ID,
			nvdb.StringProperty(obj.Egenskaper, nvdb.PropBridgeName),
			loadText,
			nvdb.GeometryWKT(obj),
		))
	}
	if skipped > 0 {
		s.logger.Warn("bridges skipped", "count", skipped)
	}
	return out
}

func (s *Ingest) convertHeights(objects []nvdb.RoadObject) []roadnet.HeightRestriction {
	out := make([]roadnet.HeightRestriction, 0, len(objects))
	skipped := 0
	for _, obj := range objects {
		placement, ok := nvdb.FirstPlacement(obj)
		if !ok {
			skipped++
			continue
		}

		height, source, ok := nvdb.HeightOf(obj.Egenskaper)
		if !ok {
			skipped++
			if skipped <= maxSkipLogs {
				s.logger.Debug("height record without usable value skipped", "nvdb_id", obj.ID)
			}
			continue
		}

		out = append(out, roadnet.NewHeightRestriction(
			placement.VeglenkesekvensID,
			linearref.NewInterval(placement.StartPosisjon, placement.SluttPosisjon),
			height,
			source,
			nvdb.GeometryWKT(obj),
		))
	}
	if skipped > 0 {
		s.logger.Warn("height records skipped", "count", skipped)
	}
	return out
}
