package service

import (
	"context"
	"sort"

	"github.com/paulmach/orb"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/geometry"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/log"
)

// Propagate spreads each corridor's limiting values to all of its segments.
// A corridor is all the segments sharing one road-link sequence: a 50-tonne
// bridge in the middle of the sequence limits the whole stretch for through
// traffic, not just the segment carrying the bridge.
type Propagate struct {
	segments  persistence.SegmentStore
	profiles  persistence.ProfileStore
	corridors persistence.CorridorStore
	logger    *log.Logger
}

// NewPropagate creates a Propagate service.
func NewPropagate(segments persistence.SegmentStore, profiles persistence.ProfileStore, corridors persistence.CorridorStore, logger *log.Logger) *Propagate {
	return &Propagate{
		segments:  segments,
		profiles:  profiles,
		corridors: corridors,
		logger:    logger.With("stage", "propagate"),
	}
}

// Run recomputes the corridor minima, writes them back to every profile and
// rebuilds the corridor table with dissolved geometries. Running it twice
// yields the same result: the minima are recomputed from the segments' own
// values, not from previously propagated ones.
func (s *Propagate) Run(ctx context.Context) error {
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
	if len(segments) == 0 {
		return ErrNoSegments
	}

	roadOf := make(map[int64]int, len(segments))
	muniOf := make(map[int64]int, len(segments))
	for _, seg := range segments {
		roadOf[seg.LinkID()] = seg.RoadNumber()
		muniOf[seg.LinkID()] = seg.Municipality()
	}

	stats := make(map[int64]*roadnet.CorridorStats)
	lines := make(map[int64][]orb.LineString)
	for _, p := range profiles {
		st, ok := stats[p.LinkID()]
		if !ok {
			st = &roadnet.CorridorStats{}
			stats[p.LinkID()] = st
		}
		st.Add(p)

		if line, err := geometry.ParseLine(p.WKT()); err == nil {
			lines[p.LinkID()] = append(lines[p.LinkID()], line)
		}
	}

	updated := make([]roadnet.SegmentProfile, len(profiles))
	for i, p := range profiles {
		updated[i] = stats[p.LinkID()].Apply(p)
	}
	if err := s.profiles.ReplaceAll(ctx, updated); err != nil {
		return err
	}

	links := make([]int64, 0, len(stats))
	for link := range stats {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool { return links[i] < links[j] })

	corridors := make([]roadnet.Corridor, 0, len(links))
	for _, link := range links {
		st := stats[link]
		dissolved := geometry.Dissolve(lines[link])

		// More than one continuous line usually means a ferry crossing or
		// missing geometry in the source data.
		s.logger.Info("corridor propagated",
			"link", link,
			"road", roadOf[link],
			"segments", st.Segments(),
			"continuous_lines", len(dissolved),
			"tonnage", optional(st.Tonnage()),
			"dim_source", st.DimSource())

		corridors = append(corridors, roadnet.NewCorridor(
			link, roadOf[link], muniOf[link],
			st.Tonnage(), st.MaxLength(), st.MinHeight(),
			st.DimSource(), st.Segments(), dissolvedWKT(dissolved),
		))
	}

	return s.corridors.ReplaceAll(ctx, corridors)
}

// dissolvedWKT renders the dissolved corridor geometry: a single line stays
// a LINESTRING, disjoint pieces become a MULTILINESTRING.
func dissolvedWKT(lines []orb.LineString) string {
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return geometry.MarshalWKT(lines[0])
	default:
		return geometry.MarshalWKT(orb.MultiLineString(lines))
	}
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
