package service

import (
	"context"

	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Classify tags every stored bottleneck with its dimensioning cause by
// looking the restriction records back up over the bottleneck's interval.
type Classify struct {
	restrictions persistence.RestrictionStore
	bottlenecks  persistence.BottleneckStore
	vehicle      roadnet.VehicleProfile
	overlap      config.OverlapConfig
	logger       *log.Logger
}

// NewClassify creates a Classify service.
func NewClassify(restrictions persistence.RestrictionStore, bottlenecks persistence.BottleneckStore, vehicle roadnet.VehicleProfile, overlap config.OverlapConfig, logger *log.Logger) *Classify {
	return &Classify{
		restrictions: restrictions,
		bottlenecks:  bottlenecks,
		vehicle:      vehicle,
		overlap:      overlap,
		logger:       logger.With("stage", "classify"),
	}
}

// Run classifies all stored bottlenecks and writes the cause tags back.
func (s *Classify) Run(ctx context.Context) error {
	items, err := s.bottlenecks.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrNoBottlenecks
	}

	weights, err := s.restrictions.Weights(ctx)
	if err != nil {
		return err
	}
	bridges, err := s.restrictions.Bridges(ctx)
	if err != nil {
		return err
	}
	heights, err := s.restrictions.Heights(ctx)
	if err != nil {
		return err
	}

	weightIndex := linearref.NewIndex[*float64]()
	lengthIndex := linearref.NewIndex[*float64]()
	for _, w := range weights {
		weightIndex.Add(w.LinkID(), w.Position(), w.Tonnage())
		lengthIndex.Add(w.LinkID(), w.Position(), w.MaxLength())
	}
	bridgeIndex := linearref.NewIndex[*float64]()
	for _, b := range bridges {
		bridgeIndex.Add(b.LinkID(), b.Position(), b.Tonnage())
	}
	heightIndex := linearref.NewIndex[*float64]()
	for _, h := range heights {
		height := h.Height()
		heightIndex.Add(h.LinkID(), h.Position(), &height)
	}

	mode := policy(s.overlap.Classify())
	counts := make(map[string]int)
	classified := make([]roadnet.Bottleneck, len(items))
	for i, b := range items {
		values := roadnet.CauseValues{
			Road:   linearref.MinOver(weightIndex, b.LinkID(), b.Position(), mode),
			Bridge: linearref.MinOver(bridgeIndex, b.LinkID(), b.Position(), mode),
			Length: linearref.MinOver(lengthIndex, b.LinkID(), b.Position(), mode),
			Height: linearref.MinOver(heightIndex, b.LinkID(), b.Position(), mode),
		}
		cause := roadnet.ClassifyCause(values, s.vehicle)
		classified[i] = b.WithCause(cause)
		counts[cause]++
	}

	if err := s.bottlenecks.UpdateCauses(ctx, classified); err != nil {
		return err
	}

	for cause, n := range counts {
		s.logger.Info("cause classified", "cause", cause, "count", n)
	}
	return nil
}
