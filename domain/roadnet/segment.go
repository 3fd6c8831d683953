// Package roadnet provides the road-network domain types: segments,
// restrictions, per-segment allowed profiles, corridor propagation and the
// dimensioning-cause classifier.
package roadnet

import "github.com/mrfylke/vegprofil/domain/linearref"

// RoadSegment is a linear piece of the road network, identified by its
// road-link sequence id and a position interval along that link.
type RoadSegment struct {
	linkID       int64
	position     linearref.Interval
	category     string
	roadNumber   int
	municipality int
	wkt          string
}

// NewRoadSegment creates a RoadSegment.
func NewRoadSegment(linkID int64, position linearref.Interval, category string, roadNumber, municipality int, wkt string) RoadSegment {
	return RoadSegment{
		linkID:       linkID,
		position:     position,
		category:     category,
		roadNumber:   roadNumber,
		municipality: municipality,
		wkt:          wkt,
	}
}

// LinkID returns the road-link sequence id.
func (s RoadSegment) LinkID() int64 { return s.linkID }

// Position returns the segment's interval along the link.
func (s RoadSegment) Position() linearref.Interval { return s.position }

// Category returns the road category letter (e.g. "F").
func (s RoadSegment) Category() string { return s.category }

// RoadNumber returns the road number within the category.
func (s RoadSegment) RoadNumber() int { return s.roadNumber }

// Municipality returns the municipality number.
func (s RoadSegment) Municipality() int { return s.municipality }

// WKT returns the segment's line geometry as WKT.
func (s RoadSegment) WKT() string { return s.wkt }
