package roadnet

import (
	"strconv"
	"strings"

	"github.com/mrfylke/vegprofil/domain/linearref"
)

// Cause tags.
const (
	CauseBridge = "BRU"
	CauseRoad   = "VEG"
	CauseLength = "LENGDE"
	CauseHeight = "HØYDE"
	CauseNone   = "OK"
)

// Finding is the result of evaluating one segment profile against a vehicle
// profile: which limitation categories fail and a human-readable description.
type Finding struct {
	kinds        []string
	descriptions []string
}

// IsBottleneck reports whether any limitation failed.
func (f Finding) IsBottleneck() bool { return len(f.kinds) > 0 }

// LimitationType returns the failed categories joined with " og ".
func (f Finding) LimitationType() string { return strings.Join(f.kinds, " og ") }

// Description returns the per-category details joined with ", ".
func (f Finding) Description() string { return strings.Join(f.descriptions, ", ") }

// Evaluate checks a segment profile against a vehicle profile. It prefers
// propagated corridor minima so that a corridor-wide limit is caught even on
// segments without a direct restriction hit; the bridge check always uses
// the segment's own bridge minimum.
func Evaluate(p SegmentProfile, v VehicleProfile) Finding {
	var f Finding

	if t := p.EffectiveTonnage(); t != nil && *t < v.Tonnage() {
		f.add("Vekt", "Vekt ("+trim(*t)+"t < "+trim(v.Tonnage())+"t)")
	}
	if b := p.MinBridge(); b != nil && *b < v.BridgeTonnage() {
		f.add("Bru", "Bru ("+trim(*b)+"t < "+trim(v.BridgeTonnage())+"t)")
	}
	if l := p.EffectiveLength(); l != nil && *l < v.MaxLength() {
		f.add("Lengde", "Lengde ("+trim(*l)+"m < "+trim(v.MaxLength())+"m)")
	}
	if h := p.EffectiveHeight(); h != nil && *h < v.MinHeight() {
		f.add("Høyde", "Høyde ("+trim(*h)+"m < "+trim(v.MinHeight())+"m)")
	}

	return f
}

func (f *Finding) add(kind, description string) {
	f.kinds = append(f.kinds, kind)
	f.descriptions = append(f.descriptions, description)
}

// CauseValues holds the per-category minima looked up for one bottleneck.
type CauseValues struct {
	Road   *float64
	Bridge *float64
	Length *float64
	Height *float64
}

// ClassifyCause tags a bottleneck with its dimensioning cause. The weight
// cause is the side with the lower value; the bridge wins when it is lower
// or the road value is missing, and exact equality reports both ("BRU, VEG").
// Length and height are added when below their thresholds. The result is
// deterministic and independent of input record ordering, since it operates
// on already-aggregated minima.
func ClassifyCause(values CauseValues, v VehicleProfile) string {
	var tags []string

	if dims := linearref.MinPtr(values.Road, values.Bridge); dims != nil && *dims < v.Tonnage() {
		switch {
		case values.Road != nil && values.Bridge != nil && *values.Road == *values.Bridge:
			tags = append(tags, CauseBridge, CauseRoad)
		case values.Bridge != nil && (values.Road == nil || *values.Bridge < *values.Road):
			tags = append(tags, CauseBridge)
		default:
			tags = append(tags, CauseRoad)
		}
	}

	if values.Length != nil && *values.Length < v.MaxLength() {
		tags = append(tags, CauseLength)
	}
	if values.Height != nil && *values.Height < v.MinHeight() {
		tags = append(tags, CauseHeight)
	}

	if len(tags) == 0 {
		return CauseNone
	}
	return strings.Join(tags, ", ")
}

// trim formats a threshold or value without trailing zeros (40, 19.5, 4.1).
func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
