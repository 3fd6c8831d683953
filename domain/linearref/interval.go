// Package linearref provides linear referencing along road-link sequences:
// fractional position intervals, overlap predicates and minimum aggregation
// of restriction values over overlapping intervals.
package linearref

// Epsilon guards the overlap predicates against floating-point noise at
// segment boundaries.
const Epsilon = 1e-9

// Policy selects the overlap predicate at interval boundaries.
type Policy int

// Policy values.
const (
	// Strict excludes boundary-touching intervals: max(a0,b0) < min(a1,b1)-eps.
	Strict Policy = iota
	// Inclusive counts boundary touches as overlap: max(a0,b0) <= min(a1,b1)+eps.
	Inclusive
)

// String returns the policy name.
func (p Policy) String() string {
	if p == Inclusive {
		return "inclusive"
	}
	return "strict"
}

// Interval is a half-open position range [start, end) along a road-link
// sequence. Positions are fractions of the link in [0,1] or absolute meters;
// the aggregation logic does not care which, as long as both sides agree.
type Interval struct {
	start float64
	end   float64
}

// NewInterval creates an Interval from start and end positions.
func NewInterval(start, end float64) Interval {
	return Interval{start: start, end: end}
}

// Start returns the start position.
func (i Interval) Start() float64 { return i.start }

// End returns the end position.
func (i Interval) End() float64 { return i.end }

// Length returns end minus start, which may be zero or negative for
// degenerate inputs.
func (i Interval) Length() float64 { return i.end - i.start }

// IsEmpty reports whether the interval covers no positive extent.
// Empty intervals never overlap anything under the strict policy.
func (i Interval) IsEmpty() bool { return i.end <= i.start }

// Overlaps reports whether i and o overlap under the given policy.
func (i Interval) Overlaps(o Interval, p Policy) bool {
	left := max(i.start, o.start)
	right := min(i.end, o.end)
	if p == Inclusive {
		return left <= right+Epsilon
	}
	return left < right-Epsilon
}
