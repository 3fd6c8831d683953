package roadnet

import "github.com/mrfylke/vegprofil/domain/linearref"

// CorridorStats accumulates the limiting values along one corridor: every
// segment sharing a road corridor contributes its own profile, and the
// accumulated minima are then written back to all of them. Adding segments
// can only lower the minima, never raise them.
type CorridorStats struct {
	tonnage           *float64
	maxLength         *float64
	minHeight         *float64
	bridgeDimensioned bool
	segments          int
}

// Add folds one segment profile into the corridor. The tonnage contribution
// is the segment's allowed tonnage (road and bridge already combined); the
// bridge flag is latched when that segment is bridge-dimensioned.
func (c *CorridorStats) Add(p SegmentProfile) {
	c.tonnage = linearref.MinPtr(c.tonnage, p.AllowedTonnage())
	c.maxLength = linearref.MinPtr(c.maxLength, p.MaxLength())
	c.minHeight = linearref.MinPtr(c.minHeight, p.MinHeight())
	if p.DimensioningSource() == SourceBridge {
		c.bridgeDimensioned = true
	}
	c.segments++
}

// Tonnage returns the corridor-wide allowed tonnage, nil when no segment
// carried a weight value.
func (c *CorridorStats) Tonnage() *float64 { return copyPtr(c.tonnage) }

// MaxLength returns the corridor-wide length limit.
func (c *CorridorStats) MaxLength() *float64 { return copyPtr(c.maxLength) }

// MinHeight returns the corridor-wide clearance.
func (c *CorridorStats) MinHeight() *float64 { return copyPtr(c.minHeight) }

// Segments returns how many segment profiles were folded in.
func (c *CorridorStats) Segments() int { return c.segments }

// DimSource reports what dimensions the corridor: "BRU" when any segment in
// it is bridge-dimensioned, otherwise "VEG".
func (c *CorridorStats) DimSource() string {
	if c.bridgeDimensioned {
		return CauseBridge
	}
	return CauseRoad
}

// Apply writes the corridor minima back onto a member segment profile as its
// propagated values. Applying the same stats twice is a no-op.
func (c *CorridorStats) Apply(p SegmentProfile) SegmentProfile {
	return p.WithPropagation(c.Tonnage(), c.MaxLength(), c.MinHeight(), c.DimSource())
}

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Corridor is the derived per-corridor row: one road-link sequence with its
// accumulated minima and the segments' geometries dissolved into a single
// (multi)line for corridor-level symbolization.
type Corridor struct {
	linkID       int64
	roadNumber   int
	municipality int
	tonnage      *float64
	maxLength    *float64
	minHeight    *float64
	dimSource    string
	segments     int
	wkt          string
}

// NewCorridor creates a Corridor.
func NewCorridor(linkID int64, roadNumber, municipality int, tonnage, maxLength, minHeight *float64, dimSource string, segments int, wkt string) Corridor {
	return Corridor{
		linkID:       linkID,
		roadNumber:   roadNumber,
		municipality: municipality,
		tonnage:      tonnage,
		maxLength:    maxLength,
		minHeight:    minHeight,
		dimSource:    dimSource,
		segments:     segments,
		wkt:          wkt,
	}
}

// LinkID returns the road-link sequence id.
func (c Corridor) LinkID() int64 { return c.linkID }

// RoadNumber returns the road number.
func (c Corridor) RoadNumber() int { return c.roadNumber }

// Municipality returns the municipality number.
func (c Corridor) Municipality() int { return c.municipality }

// Tonnage returns the corridor-wide allowed tonnage, or nil.
func (c Corridor) Tonnage() *float64 { return c.tonnage }

// MaxLength returns the corridor-wide length limit, or nil.
func (c Corridor) MaxLength() *float64 { return c.maxLength }

// MinHeight returns the corridor-wide clearance, or nil.
func (c Corridor) MinHeight() *float64 { return c.minHeight }

// DimSource returns "BRU" or "VEG".
func (c Corridor) DimSource() string { return c.dimSource }

// Segments returns how many segments the corridor covers.
func (c Corridor) Segments() int { return c.segments }

// WKT returns the dissolved corridor geometry as WKT.
func (c Corridor) WKT() string { return c.wkt }
