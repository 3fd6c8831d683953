package service

import (
	"context"

	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/config"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Profile derives the allowed profile of every stored segment: the minima
// across all overlapping restriction records of each kind.
type Profile struct {
	segments     persistence.SegmentStore
	restrictions persistence.RestrictionStore
	profiles     persistence.ProfileStore
	overlap      config.OverlapConfig
	logger       *log.Logger
}

// NewProfile creates a Profile service.
func NewProfile(segments persistence.SegmentStore, restrictions persistence.RestrictionStore, profiles persistence.ProfileStore, overlap config.OverlapConfig, logger *log.Logger) *Profile {
	return &Profile{
		segments:     segments,
		restrictions: restrictions,
		profiles:     profiles,
		overlap:      overlap,
		logger:       logger.With("stage", "profile"),
	}
}

// weightSpan carries the full weight record payload through the index, so
// one lookup yields the value, text and length limit together.
type weightSpan struct {
	tonnage   *float64
	text      string
	maxLength *float64
	special   bool
}

// Run rebuilds the profile table from the stored segments and restrictions.
func (s *Profile) Run(ctx context.Context) error {
	segments, err := s.segments.List(ctx)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return ErrNoSegments
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

	weightIndex := linearref.NewIndex[weightSpan]()
	for _, w := range weights {
		weightIndex.Add(w.LinkID(), w.Position(), weightSpan{
			tonnage:   w.Tonnage(),
			text:      w.Text(),
			maxLength: w.MaxLength(),
			special:   w.Special(),
		})
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

	profiles := make([]roadnet.SegmentProfile, 0, len(segments))
	for _, seg := range segments {
		values := s.valuesFor(seg, weightIndex, bridgeIndex, heightIndex)
		profiles = append(profiles, roadnet.NewSegmentProfile(seg.LinkID(), seg.Position(), seg.WKT(), values))
	}

	if err := s.profiles.ReplaceAll(ctx, profiles); err != nil {
		return err
	}

	s.logger.Info("profiles derived", "segments", len(segments), "weight_links", weightIndex.Links())
	return nil
}

func (s *Profile) valuesFor(seg roadnet.RoadSegment, weights *linearref.Index[weightSpan], bridges, heights *linearref.Index[*float64]) roadnet.ProfileValues {
	var values roadnet.ProfileValues

	for _, span := range weights.Overlapping(seg.LinkID(), seg.Position(), policy(s.overlap.Weight())) {
		if span.tonnage != nil && (values.BKValue == nil || *span.tonnage < *values.BKValue) {
			values.BKValue = copyFloat(span.tonnage)
			values.BKText = span.text
		}
		if span.maxLength != nil && (values.MaxLength == nil || *span.maxLength < *values.MaxLength) {
			values.MaxLength = copyFloat(span.maxLength)
		}
		if span.special {
			values.Special = true
		}
	}

	values.MinBridge = linearref.MinOver(bridges, seg.LinkID(), seg.Position(), policy(s.overlap.Bridge()))
	values.MinHeight = linearref.MinOver(heights, seg.LinkID(), seg.Position(), policy(s.overlap.Height()))
	return values
}

// policy maps a configured overlap mode to the interval predicate.
func policy(mode config.OverlapMode) linearref.Policy {
	if mode == config.OverlapInclusive {
		return linearref.Inclusive
	}
	return linearref.Strict
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
