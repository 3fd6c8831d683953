package geometry

import "github.com/paulmach/orb"

// Dissolve merges line strings that touch end-to-end into continuous
// corridor lines. Lines are chained greedily on exact endpoint equality;
// NVDB segments on the same road share vertices, so no snapping tolerance
// is needed. The operation is idempotent: dissolving an already dissolved
// set returns it unchanged.
func Dissolve(lines []orb.LineString) []orb.LineString {
	remaining := make([]orb.LineString, 0, len(lines))
	for _, l := range lines {
		if len(l) >= 2 {
			remaining = append(remaining, cloneLine(l))
		}
	}

	var out []orb.LineString
	for len(remaining) > 0 {
		current := remaining[0]
		remaining = remaining[1:]

		for {
			extended := false
			for i := 0; i < len(remaining); i++ {
				joined, ok := join(current, remaining[i])
				if !ok {
					continue
				}
				current = joined
				remaining = append(remaining[:i], remaining[i+1:]...)
				extended = true
				break
			}
			if !extended {
				break
			}
		}

		out = append(out, current)
	}
	return out
}

// join connects b onto a when they share an endpoint, reversing b as
// needed. Returns false when the lines do not touch.
func join(a, b orb.LineString) (orb.LineString, bool) {
	aStart, aEnd := a[0], a[len(a)-1]
	bStart, bEnd := b[0], b[len(b)-1]

	switch {
	case aEnd.Equal(bStart):
		return append(a, b[1:]...), true
	case aEnd.Equal(bEnd):
		return append(a, reverse(b)[1:]...), true
	case aStart.Equal(bEnd):
		return append(cloneLine(b), a[1:]...), true
	case aStart.Equal(bStart):
		return append(reverse(b), a[1:]...), true
	}
	return nil, false
}

func reverse(l orb.LineString) orb.LineString {
	out := make(orb.LineString, len(l))
	for i, p := range l {
		out[len(l)-1-i] = p
	}
	return out
}

func cloneLine(l orb.LineString) orb.LineString {
	out := make(orb.LineString, len(l))
	copy(out, l)
	return out
}
