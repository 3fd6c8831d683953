package service

import (
	"context"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/log"
)

// segmentKey joins a profile back to the segment it was derived from.
type segmentKey struct {
	linkID int64
	start  float64
	end    float64
}

// Bottleneck evaluates every segment profile against a vehicle profile and
// stores the segments that fail at least one requirement.
type Bottleneck struct {
	segments persistence.SegmentStore
	profiles persistence.ProfileStore
	store    persistence.BottleneckStore
	vehicle  roadnet.VehicleProfile
	logger   *log.Logger
}

// NewBottleneck creates a Bottleneck service.
func NewBottleneck(segments persistence.SegmentStore, profiles persistence.ProfileStore, store persistence.BottleneckStore, vehicle roadnet.VehicleProfile, logger *log.Logger) *Bottleneck {
	return &Bottleneck{
		segments: segments,
		profiles: profiles,
		store:    store,
		vehicle:  vehicle,
		logger:   logger.With("stage", "bottleneck"),
	}
}

// Run rebuilds the bottleneck table for the configured vehicle.
func (s *Bottleneck) Run(ctx context.Context) error {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return ErrNoProfiles
	}

	segments, err := s.segments.List(ctx)
	if err != nil {
		return err
	}

	bySegment := make(map[segmentKey]roadnet.RoadSegment, len(segments))
	for _, seg := range segments {
		bySegment[segmentKey{seg.LinkID(), seg.Position().Start(), seg.Position().End()}] = seg
	}

	var bottlenecks []roadnet.Bottleneck
	for _, p := range profiles {
		finding := roadnet.Evaluate(p, s.vehicle)
		if !finding.IsBottleneck() {
			continue
		}

		seg := bySegment[segmentKey{p.LinkID(), p.Position().Start(), p.Position().End()}]
		bottlenecks = append(bottlenecks, roadnet.NewBottleneck(
			p.LinkID(),
			p.Position(),
			seg.Municipality(),
			seg.RoadNumber(),
			finding.LimitationType(),
			finding.Description(),
			"", // cause is assigned by the classify stage
			p.EffectiveTonnage(),
			p.EffectiveLength(),
			p.EffectiveHeight(),
			p.DimSource(),
			p.WKT(),
		))
	}

	if err := s.store.ReplaceAll(ctx, bottlenecks); err != nil {
		return err
	}

	s.logger.Info("bottlenecks detected",
		"vehicle", s.vehicle.Name(),
		"profiles", len(profiles),
		"bottlenecks", len(bottlenecks))
	return nil
}
