package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/domain/linearref"
)

func TestCorridorStatsAccumulatesMinima(t *testing.T) {
	var c CorridorStats
	c.Add(NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue:   ptr(50),
		MaxLength: ptr(19.5),
	}))
	c.Add(NewSegmentProfile(1, linearref.NewInterval(100, 200), "", ProfileValues{
		BKValue:   ptr(40),
		MinHeight: ptr(4.1),
	}))
	c.Add(NewSegmentProfile(1, linearref.NewInterval(200, 300), "", ProfileValues{
		MaxLength: ptr(12.4),
	}))

	require.NotNil(t, c.Tonnage())
	assert.Equal(t, 40.0, *c.Tonnage())
	assert.Equal(t, 12.4, *c.MaxLength())
	assert.Equal(t, 4.1, *c.MinHeight())
	assert.Equal(t, 3, c.Segments())
	assert.Equal(t, SourceRoad, c.DimSource())
}

func TestCorridorStatsEmpty(t *testing.T) {
	var c CorridorStats
	assert.Nil(t, c.Tonnage())
	assert.Nil(t, c.MaxLength())
	assert.Nil(t, c.MinHeight())
	assert.Equal(t, 0, c.Segments())
}

func TestCorridorBridgeDimensioned(t *testing.T) {
	var c CorridorStats
	c.Add(NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue: ptr(50),
	}))
	assert.Equal(t, SourceRoad, c.DimSource())

	// One bridge-dimensioned segment flips the whole corridor.
	c.Add(NewSegmentProfile(1, linearref.NewInterval(100, 200), "", ProfileValues{
		BKValue:   ptr(50),
		MinBridge: ptr(35),
	}))
	assert.Equal(t, SourceBridge, c.DimSource())
}

func TestCorridorApplyIdempotent(t *testing.T) {
	var c CorridorStats
	c.Add(NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue: ptr(40),
	}))
	bare := NewSegmentProfile(1, linearref.NewInterval(100, 200), "", ProfileValues{})
	c.Add(bare)

	once := c.Apply(bare)
	twice := c.Apply(once)

	require.True(t, once.Propagated())
	assert.Equal(t, 40.0, *once.EffectiveTonnage())
	assert.Equal(t, *once.EffectiveTonnage(), *twice.EffectiveTonnage())
	assert.Equal(t, once.DimSource(), twice.DimSource())
}

// Returned pointers are copies so callers cannot mutate corridor state.
func TestCorridorStatsCopiesValues(t *testing.T) {
	var c CorridorStats
	c.Add(NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{BKValue: ptr(40)}))

	v := c.Tonnage()
	*v = 99
	assert.Equal(t, 40.0, *c.Tonnage())
}
