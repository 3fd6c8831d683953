// Package geometry handles the WKT geometries NVDB returns: parsing,
// length measurement and corridor dissolve. All coordinates are in a
// projected reference system (UTM), so distances are planar meters.
package geometry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/planar"
)

// NVDB returns 3D coordinates (x y z). The pipeline is two-dimensional, so
// the z ordinate is dropped before parsing.
var (
	zDesignator = regexp.MustCompile(`(?i)\b(LINESTRING|POINT|POLYGON|MULTILINESTRING|MULTIPOINT|MULTIPOLYGON)\s+ZM?\b`)
	tripleCoord = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)\s+-?\d+(?:\.\d+)?`)
)

// DropZ rewrites a 3D WKT string to its 2D equivalent.
func DropZ(s string) string {
	s = zDesignator.ReplaceAllString(s, "$1")
	return tripleCoord.ReplaceAllString(s, "$1 $2")
}

// Parse parses a WKT string, accepting 3D input.
func Parse(s string) (orb.Geometry, error) {
	g, err := wkt.Unmarshal(DropZ(strings.TrimSpace(s)))
	if err != nil {
		return nil, fmt.Errorf("parse wkt: %w", err)
	}
	return g, nil
}

// LineOf reduces a geometry to a line string for linear measurement.
// Polygons (some bridges are registered as areas) contribute their outer
// ring; points and empty geometries yield nil.
func LineOf(g orb.Geometry) orb.LineString {
	switch t := g.(type) {
	case orb.LineString:
		return t
	case orb.MultiLineString:
		if len(t) == 0 {
			return nil
		}
		var merged orb.LineString
		for _, line := range t {
			merged = append(merged, line...)
		}
		return merged
	case orb.Polygon:
		if len(t) == 0 {
			return nil
		}
		return orb.LineString(t[0])
	default:
		return nil
	}
}

// ParseLine parses a WKT string and reduces it to a line string.
func ParseLine(s string) (orb.LineString, error) {
	g, err := Parse(s)
	if err != nil {
		return nil, err
	}
	line := LineOf(g)
	if line == nil {
		return nil, fmt.Errorf("no linear geometry in %T", g)
	}
	return line, nil
}

// LengthKm returns the planar length of a WKT geometry in kilometers.
// Unparseable or non-linear geometries measure zero; a missing length must
// not abort a report run.
func LengthKm(s string) float64 {
	if s == "" {
		return 0
	}
	g, err := Parse(s)
	if err != nil {
		return 0
	}
	return planar.Length(g) / 1000.0
}

// MarshalWKT renders a geometry back to WKT.
func MarshalWKT(g orb.Geometry) string {
	return wkt.MarshalString(g)
}
