package roadnet

import "github.com/mrfylke/vegprofil/domain/linearref"

// Bottleneck is a segment that fails at least one vehicle requirement,
// together with the values that caused it and the classified cause.
type Bottleneck struct {
	linkID         int64
	position       linearref.Interval
	municipality   int
	roadNumber     int
	limitationType string
	description    string
	cause          string
	tonnage        *float64
	maxLength      *float64
	minHeight      *float64
	dimSource      string
	wkt            string
}

// NewBottleneck creates a Bottleneck. The limitation type and description
// normally come from a Finding.
func NewBottleneck(linkID int64, position linearref.Interval, municipality, roadNumber int, limitationType, description, cause string, tonnage, maxLength, minHeight *float64, dimSource, wkt string) Bottleneck {
	return Bottleneck{
		linkID:         linkID,
		position:       position,
		municipality:   municipality,
		roadNumber:     roadNumber,
		limitationType: limitationType,
		description:    description,
		cause:          cause,
		tonnage:        tonnage,
		maxLength:      maxLength,
		minHeight:      minHeight,
		dimSource:      dimSource,
		wkt:            wkt,
	}
}

// LinkID returns the road-link sequence id.
func (b Bottleneck) LinkID() int64 { return b.linkID }

// Position returns the segment's interval along the link.
func (b Bottleneck) Position() linearref.Interval { return b.position }

// Municipality returns the municipality number.
func (b Bottleneck) Municipality() int { return b.municipality }

// RoadNumber returns the road number.
func (b Bottleneck) RoadNumber() int { return b.roadNumber }

// LimitationType returns the failed categories, e.g. "Vekt og Høyde".
func (b Bottleneck) LimitationType() string { return b.limitationType }

// Description returns the per-category details.
func (b Bottleneck) Description() string { return b.description }

// Cause returns the dimensioning cause tags, e.g. "BRU" or "BRU, VEG".
func (b Bottleneck) Cause() string { return b.cause }

// WithCause returns a copy tagged with the given cause.
func (b Bottleneck) WithCause(cause string) Bottleneck {
	b.cause = cause
	return b
}

// Tonnage returns the limiting tonnage, or nil.
func (b Bottleneck) Tonnage() *float64 { return b.tonnage }

// MaxLength returns the limiting vehicle length, or nil.
func (b Bottleneck) MaxLength() *float64 { return b.maxLength }

// MinHeight returns the limiting clearance, or nil.
func (b Bottleneck) MinHeight() *float64 { return b.minHeight }

// DimSource returns the weight dimensioning source ("BRU" or "VEG").
func (b Bottleneck) DimSource() string { return b.dimSource }

// WKT returns the segment's geometry as WKT.
func (b Bottleneck) WKT() string { return b.wkt }
