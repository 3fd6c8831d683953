package roadnet

import "github.com/mrfylke/vegprofil/domain/linearref"

// WeightRestriction is a Bruksklasse record: a road-rule weight class with an
// optional max vehicle length, placed on an interval of a road-link sequence.
type WeightRestriction struct {
	linkID    int64
	position  linearref.Interval
	tonnage   *float64
	text      string
	maxLength *float64
	special   bool
	wkt       string
}

// NewWeightRestriction creates a WeightRestriction. Tonnage and maxLength may
// be nil when the source record does not carry them.
func NewWeightRestriction(linkID int64, position linearref.Interval, tonnage *float64, text string, maxLength *float64, special bool, wkt string) WeightRestriction {
	return WeightRestriction{
		linkID:    linkID,
		position:  position,
		tonnage:   tonnage,
		text:      text,
		maxLength: maxLength,
		special:   special,
		wkt:       wkt,
	}
}

// LinkID returns the road-link sequence id.
func (w WeightRestriction) LinkID() int64 { return w.linkID }

// Position returns the restriction's interval along the link.
func (w WeightRestriction) Position() linearref.Interval { return w.position }

// Tonnage returns the permitted weight in tonnes, or nil.
func (w WeightRestriction) Tonnage() *float64 { return w.tonnage }

// Text returns the raw Bruksklasse text (e.g. "Bk10/60").
func (w WeightRestriction) Text() string { return w.text }

// MaxLength returns the permitted vehicle length in meters, or nil.
func (w WeightRestriction) MaxLength() *float64 { return w.maxLength }

// Special reports whether the record carries a special limitation
// (e.g. the signed 13.3 m limit on Trollstigen).
func (w WeightRestriction) Special() bool { return w.special }

// WKT returns the restriction's geometry as WKT.
func (w WeightRestriction) WKT() string { return w.wkt }

// BridgeRestriction is a bridge (NVDB object 60) with a permitted load,
// placed on an interval of a road-link sequence.
type BridgeRestriction struct {
	linkID   int64
	position linearref.Interval
	tonnage  *float64
	nvdbID   int64
	name     string
	loadText string
	wkt      string
}

// NewBridgeRestriction creates a BridgeRestriction.
func NewBridgeRestriction(linkID int64, position linearref.Interval, tonnage *float64, nvdbID int64, name, loadText, wkt string) BridgeRestriction {
	return BridgeRestriction{
		linkID:   linkID,
		position: position,
		tonnage:  tonnage,
		nvdbID:   nvdbID,
		name:     name,
		loadText: loadText,
		wkt:      wkt,
	}
}

// LinkID returns the road-link sequence id.
func (b BridgeRestriction) LinkID() int64 { return b.linkID }

// Position returns the bridge's interval along the link.
func (b BridgeRestriction) Position() linearref.Interval { return b.position }

// Tonnage returns the permitted load in tonnes, or nil.
func (b BridgeRestriction) Tonnage() *float64 { return b.tonnage }

// NVDBID returns the bridge's NVDB object id.
func (b BridgeRestriction) NVDBID() int64 { return b.nvdbID }

// Name returns the bridge name.
func (b BridgeRestriction) Name() string { return b.name }

// LoadText returns the raw Brukslast text the tonnage was parsed from.
func (b BridgeRestriction) LoadText() string { return b.loadText }

// WKT returns the bridge's geometry as WKT.
func (b BridgeRestriction) WKT() string { return b.wkt }

// HeightRestriction is a clearance limit (NVDB object 591), usually a point
// or short interval on a road-link sequence.
type HeightRestriction struct {
	linkID   int64
	position linearref.Interval
	height   float64
	source   string
	wkt      string
}

// NewHeightRestriction creates a HeightRestriction. Records without a usable
// height are dropped at ingest, so height is always present here.
func NewHeightRestriction(linkID int64, position linearref.Interval, height float64, source, wkt string) HeightRestriction {
	return HeightRestriction{
		linkID:   linkID,
		position: position,
		height:   height,
		source:   source,
		wkt:      wkt,
	}
}

// LinkID returns the road-link sequence id.
func (h HeightRestriction) LinkID() int64 { return h.linkID }

// Position returns the restriction's interval along the link.
func (h HeightRestriction) Position() linearref.Interval { return h.position }

// Height returns the minimum clearance in meters.
func (h HeightRestriction) Height() float64 { return h.height }

// Source names which property the height came from (computed or signed).
func (h HeightRestriction) Source() string { return h.source }

// WKT returns the restriction's geometry as WKT.
func (h HeightRestriction) WKT() string { return h.wkt }
