package linearref

// Span is a value placed on an interval of one road-link sequence.
type Span[T any] struct {
	interval Interval
	value    T
}

// NewSpan creates a Span.
func NewSpan[T any](interval Interval, value T) Span[T] {
	return Span[T]{interval: interval, value: value}
}

// Interval returns the span's position range.
func (s Span[T]) Interval() Interval { return s.interval }

// Value returns the span's payload.
func (s Span[T]) Value() T { return s.value }

// Index maps road-link sequence ids to the spans placed on them. It is the
// lookup side of the overlap-and-minimum aggregation: build it once from the
// restriction records, then query it per target segment.
type Index[T any] struct {
	spans map[int64][]Span[T]
}

// NewIndex creates an empty Index.
func NewIndex[T any]() *Index[T] {
	return &Index[T]{spans: make(map[int64][]Span[T])}
}

// Add places a value on an interval of the given link.
func (x *Index[T]) Add(linkID int64, interval Interval, value T) {
	x.spans[linkID] = append(x.spans[linkID], NewSpan(interval, value))
}

// Links returns the number of distinct link ids in the index.
func (x *Index[T]) Links() int { return len(x.spans) }

// Overlapping returns the values of all spans on linkID whose interval
// overlaps target under the given policy. The returned slice preserves
// insertion order; an unknown link yields nil.
func (x *Index[T]) Overlapping(linkID int64, target Interval, p Policy) []T {
	var hits []T
	for _, s := range x.spans[linkID] {
		if target.Overlaps(s.interval, p) {
			hits = append(hits, s.value)
		}
	}
	return hits
}

// MinOver returns the minimum non-nil value among spans of a *float64 index
// overlapping target, or nil when nothing overlaps. This is the aggregation
// contract: absent data stays absent, it never becomes zero or a sentinel,
// and adding more overlapping records can only lower the result.
func MinOver(x *Index[*float64], linkID int64, target Interval, p Policy) *float64 {
	return MinPtr(x.Overlapping(linkID, target, p)...)
}

// MinPtr returns the smallest non-nil value, or nil when all inputs are nil.
func MinPtr(vals ...*float64) *float64 {
	var best *float64
	for _, v := range vals {
		if v == nil {
			continue
		}
		if best == nil || *v < *best {
			value := *v
			best = &value
		}
	}
	return best
}
