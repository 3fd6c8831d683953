package linearref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestIndex_Overlapping_NonOverlapHasNoInfluence(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(5, NewInterval(20, 60), ptr(40))
	x.Add(5, NewInterval(200, 300), ptr(10)) // outside the target entirely

	got := MinOver(x, 5, NewInterval(0, 100), Strict)
	require.NotNil(t, got)
	assert.Equal(t, 40.0, *got)
}

func TestIndex_Overlapping_WrongLinkHasNoInfluence(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(7, NewInterval(0, 100), ptr(10))

	assert.Nil(t, MinOver(x, 5, NewInterval(0, 100), Inclusive))
}

func TestMinOver_Monotonic(t *testing.T) {
	x := NewIndex[*float64]()
	target := NewInterval(0, 100)

	x.Add(5, NewInterval(20, 60), ptr(40))
	first := MinOver(x, 5, target, Strict)
	require.NotNil(t, first)

	// Adding a lower overlapping value must never raise the minimum.
	x.Add(5, NewInterval(55, 58), ptr(35))
	second := MinOver(x, 5, target, Strict)
	require.NotNil(t, second)
	assert.LessOrEqual(t, *second, *first)
	assert.Equal(t, 35.0, *second)

	// Adding a higher overlapping value must not change it.
	x.Add(5, NewInterval(10, 90), ptr(80))
	third := MinOver(x, 5, target, Strict)
	require.NotNil(t, third)
	assert.Equal(t, 35.0, *third)
}

func TestMinOver_NoMatchYieldsNil(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(5, NewInterval(200, 300), ptr(12))

	assert.Nil(t, MinOver(x, 5, NewInterval(0, 100), Strict))
}

func TestMinOver_NilValuesIgnored(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(5, NewInterval(0, 50), nil)
	x.Add(5, NewInterval(0, 50), ptr(42))
	x.Add(5, NewInterval(0, 50), nil)

	got := MinOver(x, 5, NewInterval(0, 100), Strict)
	require.NotNil(t, got)
	assert.Equal(t, 42.0, *got)
}

func TestMinOver_AllNilYieldsNil(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(5, NewInterval(0, 50), nil)

	assert.Nil(t, MinOver(x, 5, NewInterval(0, 100), Strict))
}

func TestMinOver_EmptyTargetStrict(t *testing.T) {
	x := NewIndex[*float64]()
	x.Add(5, NewInterval(0, 100), ptr(30))

	// Zero-length segments never overlap anything under the strict predicate.
	assert.Nil(t, MinOver(x, 5, NewInterval(50, 50), Strict))

	got := MinOver(x, 5, NewInterval(50, 50), Inclusive)
	require.NotNil(t, got)
	assert.Equal(t, 30.0, *got)
}

func TestMinPtr(t *testing.T) {
	assert.Nil(t, MinPtr())
	assert.Nil(t, MinPtr(nil, nil))

	got := MinPtr(ptr(50), nil, ptr(35), ptr(60))
	require.NotNil(t, got)
	assert.Equal(t, 35.0, *got)
}

func TestMinPtr_CopiesValue(t *testing.T) {
	v := 10.0
	got := MinPtr(&v)
	require.NotNil(t, got)
	v = 99.0
	assert.Equal(t, 10.0, *got)
}

func TestIndex_OverlappingCarriesPayload(t *testing.T) {
	type hit struct {
		tonn *float64
		text string
	}
	x := NewIndex[hit]()
	x.Add(5, NewInterval(0, 0.5), hit{tonn: ptr(50), text: "Bk10/50"})
	x.Add(5, NewInterval(0.5, 1.0), hit{tonn: ptr(60), text: "Bk10/60"})

	hits := x.Overlapping(5, NewInterval(0.0, 0.4), Strict)
	require.Len(t, hits, 1)
	assert.Equal(t, "Bk10/50", hits[0].text)
}
