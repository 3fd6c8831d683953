package roadnet

import "github.com/mrfylke/vegprofil/domain/linearref"

// Dimensioning source labels.
const (
	SourceBridge = "BRU"
	SourceRoad   = "VEG"
)

// ProfileValues holds the aggregated minima for one segment, as produced by
// the overlap-and-minimum step. Nil means no overlapping record carried that
// dimension.
type ProfileValues struct {
	BKValue   *float64
	BKText    string
	MaxLength *float64
	Special   bool
	MinBridge *float64
	MinHeight *float64
}

// SegmentProfile is the derived allowed profile of one road segment: the
// minima across all overlapping restriction records, plus the corridor
// minima once propagation has run.
type SegmentProfile struct {
	linkID   int64
	position linearref.Interval
	wkt      string
	values   ProfileValues

	propTonnage *float64
	propLength  *float64
	propHeight  *float64
	dimSource   string
	propagated  bool
}

// NewSegmentProfile creates a SegmentProfile before propagation.
func NewSegmentProfile(linkID int64, position linearref.Interval, wkt string, values ProfileValues) SegmentProfile {
	return SegmentProfile{
		linkID:   linkID,
		position: position,
		wkt:      wkt,
		values:   values,
	}
}

// LinkID returns the road-link sequence id.
func (p SegmentProfile) LinkID() int64 { return p.linkID }

// Position returns the segment's interval along the link.
func (p SegmentProfile) Position() linearref.Interval { return p.position }

// WKT returns the segment's line geometry as WKT.
func (p SegmentProfile) WKT() string { return p.wkt }

// BKValue returns the minimum road-rule weight class in tonnes, or nil.
func (p SegmentProfile) BKValue() *float64 { return p.values.BKValue }

// BKText returns the Bruksklasse text of an overlapping record.
func (p SegmentProfile) BKText() string { return p.values.BKText }

// MaxLength returns the minimum permitted vehicle length in meters, or nil.
func (p SegmentProfile) MaxLength() *float64 { return p.values.MaxLength }

// Special reports whether any overlapping weight record was a special limitation.
func (p SegmentProfile) Special() bool { return p.values.Special }

// MinBridge returns the minimum bridge load in tonnes, or nil.
func (p SegmentProfile) MinBridge() *float64 { return p.values.MinBridge }

// MinHeight returns the minimum clearance in meters, or nil.
func (p SegmentProfile) MinHeight() *float64 { return p.values.MinHeight }

// AllowedTonnage returns min(BK value, bridge load) with nil handling: if
// only one side exists that side wins, if neither exists the result is nil.
func (p SegmentProfile) AllowedTonnage() *float64 {
	return linearref.MinPtr(p.values.BKValue, p.values.MinBridge)
}

// DimensioningSource reports whether the bridge or the road rule is the
// binding weight constraint for this segment. The bridge wins on equality.
// Returns "" when neither value exists.
func (p SegmentProfile) DimensioningSource() string {
	return WeightSource(p.values.BKValue, p.values.MinBridge)
}

// WeightSource picks the binding weight constraint between a road-rule value
// and a bridge value. The bridge wins on equality; a missing side loses.
func WeightSource(road, bridge *float64) string {
	switch {
	case road == nil && bridge == nil:
		return ""
	case road == nil:
		return SourceBridge
	case bridge == nil:
		return SourceRoad
	case *bridge <= *road:
		return SourceBridge
	default:
		return SourceRoad
	}
}

// WithPropagation returns a copy carrying the corridor minima and the
// corridor dimensioning source.
func (p SegmentProfile) WithPropagation(tonnage, length, height *float64, dimSource string) SegmentProfile {
	p.propTonnage = tonnage
	p.propLength = length
	p.propHeight = height
	p.dimSource = dimSource
	p.propagated = true
	return p
}

// Propagated reports whether corridor propagation has run for this segment.
func (p SegmentProfile) Propagated() bool { return p.propagated }

// DimSource returns the corridor dimensioning source ("BRU" or "VEG"),
// or "" before propagation.
func (p SegmentProfile) DimSource() string { return p.dimSource }

// PropTonnage returns the corridor minimum tonnage, or nil.
func (p SegmentProfile) PropTonnage() *float64 { return p.propTonnage }

// PropLength returns the corridor minimum length, or nil.
func (p SegmentProfile) PropLength() *float64 { return p.propLength }

// PropHeight returns the corridor minimum height, or nil.
func (p SegmentProfile) PropHeight() *float64 { return p.propHeight }

// EffectiveTonnage returns the propagated corridor tonnage when present,
// falling back to the segment's own minimum. Later stages prefer propagated
// values so a corridor-wide limit is caught even on segments without a
// direct restriction hit.
func (p SegmentProfile) EffectiveTonnage() *float64 {
	if p.propagated && p.propTonnage != nil {
		return p.propTonnage
	}
	return p.AllowedTonnage()
}

// EffectiveLength returns the propagated corridor length minimum, falling
// back to the segment's own.
func (p SegmentProfile) EffectiveLength() *float64 {
	if p.propagated && p.propLength != nil {
		return p.propLength
	}
	return p.values.MaxLength
}

// EffectiveHeight returns the propagated corridor height minimum, falling
// back to the segment's own.
func (p SegmentProfile) EffectiveHeight() *float64 {
	if p.propagated && p.propHeight != nil {
		return p.propHeight
	}
	return p.values.MinHeight
}
