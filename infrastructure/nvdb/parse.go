package nvdb

import (
	"regexp"
	"strconv"
	"strings"
)

// Height source labels, recorded on each height restriction so reports can
// tell a measured clearance from a signed one.
const (
	HeightSourceComputed = "beregnet"
	HeightSourceSigned   = "skiltet"
)

var (
	slashTonnesPattern  = regexp.MustCompile(`/\s*(\d+)`)
	suffixTonnesPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*[tT](?:onn)?`)
	numberPattern       = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// Property lookup over an egenskaper list.
func PickProperty(props []Property, id int) (any, bool) {
	for _, p := range props {
		if p.ID == id {
			return p.Verdi, true
		}
	}
	return nil, false
}

// StringProperty returns a property value as string, or "" when absent or
// not a string.
func StringProperty(props []Property, id int) string {
	v, ok := PickProperty(props, id)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// FloatProperty returns a property value as a float. JSON numbers come back
// as float64; Norwegian data sometimes carries numbers as strings with a
// comma decimal separator, so those are handled too.
func FloatProperty(props []Property, id int) (float64, bool) {
	v, ok := PickProperty(props, id)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return ParseFloat(t)
	}
	return 0, false
}

// ParseFloat parses a float accepting a comma as decimal separator.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// TonnesFromText extracts a tonnage from a Bruksklasse or Brukslast text.
// "Bk10/60" encodes the total weight after the slash; free-text values like
// "50 tonn" carry it before the unit; as a last resort the largest number in
// the text is used. Returns nil when no number is found.
func TonnesFromText(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if m := slashTonnesPattern.FindStringSubmatch(text); m != nil {
		if f, ok := ParseFloat(m[1]); ok {
			return &f
		}
	}

	if m := suffixTonnesPattern.FindStringSubmatch(text); m != nil {
		if f, ok := ParseFloat(m[1]); ok {
			return &f
		}
	}

	var best *float64
	for _, m := range numberPattern.FindAllString(text, -1) {
		f, ok := ParseFloat(m)
		if !ok {
			continue
		}
		if best == nil || f > *best {
			value := f
			best = &value
		}
	}
	return best
}

// LengthFromText extracts a vehicle length in meters from a free-text or
// numeric length restriction value.
func LengthFromText(text string) *float64 {
	if m := numberPattern.FindString(text); m != "" {
		if f, ok := ParseFloat(m); ok {
			return &f
		}
	}
	return nil
}

// HeightOf picks the clearance height off a height restriction object,
// preferring the computed clearance over the signed one. Returns false when
// neither property carries a usable number.
func HeightOf(props []Property) (float64, string, bool) {
	if h, ok := FloatProperty(props, PropHeightComputed); ok && h > 0 {
		return h, HeightSourceComputed, true
	}
	if h, ok := FloatProperty(props, PropHeightSigned); ok && h > 0 {
		return h, HeightSourceSigned, true
	}
	return 0, "", false
}

// IsRoadBridge reports whether a bridge object's category marks it as a road
// bridge carrying traffic, as opposed to e.g. a pedestrian overpass.
func IsRoadBridge(category string) bool {
	c := strings.ToLower(category)
	return strings.Contains(c, "vegbru") || strings.Contains(c, "bru i fylling")
}

// FirstPlacement returns the object's first stedfesting, the interval the
// pipeline joins restrictions to segments on. Objects without a placement
// cannot be positioned and are skipped by the caller.
func FirstPlacement(obj RoadObject) (Placement, bool) {
	if obj.Lokasjon == nil || len(obj.Lokasjon.Stedfestinger) == 0 {
		return Placement{}, false
	}
	return obj.Lokasjon.Stedfestinger[0], true
}

// GeometryWKT returns the object's WKT geometry, or "".
func GeometryWKT(obj RoadObject) string {
	if obj.Lokasjon == nil || obj.Lokasjon.Geometri == nil {
		return ""
	}
	return obj.Lokasjon.Geometri.WKT
}
