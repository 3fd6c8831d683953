package roadnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/domain/linearref"
)

func testVehicle(t *testing.T) VehicleProfile {
	t.Helper()
	return NewVehicleProfile("NORMALTRANSPORT", 50, 60, 19.5, 4.5)
}

func TestEvaluateNoLimits(t *testing.T) {
	p := NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue:   ptr(50),
		MaxLength: ptr(19.5),
		MinHeight: ptr(4.5),
	})
	f := Evaluate(p, testVehicle(t))
	assert.False(t, f.IsBottleneck())
	assert.Equal(t, "", f.LimitationType())
}

func TestEvaluateSingleLimit(t *testing.T) {
	p := NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue: ptr(40),
	})
	f := Evaluate(p, testVehicle(t))
	require.True(t, f.IsBottleneck())
	assert.Equal(t, "Vekt", f.LimitationType())
	assert.Equal(t, "Vekt (40t < 50t)", f.Description())
}

func TestEvaluateMultipleLimits(t *testing.T) {
	p := NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue:   ptr(40),
		MinBridge: ptr(35),
		MaxLength: ptr(12.4),
		MinHeight: ptr(4.1),
	})
	f := Evaluate(p, testVehicle(t))
	require.True(t, f.IsBottleneck())
	assert.Equal(t, "Vekt og Bru og Lengde og Høyde", f.LimitationType())
	assert.Equal(t, "Vekt (35t < 50t), Bru (35t < 60t), Lengde (12.4m < 19.5m), Høyde (4.1m < 4.5m)", f.Description())
}

func TestEvaluateUsesPropagatedMinima(t *testing.T) {
	p := NewSegmentProfile(1, linearref.NewInterval(0, 100), "", ProfileValues{
		BKValue: ptr(50),
	})
	p = p.WithPropagation(ptr(40), nil, nil, SourceRoad)
	f := Evaluate(p, testVehicle(t))
	require.True(t, f.IsBottleneck())
	assert.Equal(t, "Vekt", f.LimitationType())
}

func TestClassifyCause(t *testing.T) {
	v := testVehicle(t)
	tests := []struct {
		name   string
		values CauseValues
		want   string
	}{
		{"bridge lower", CauseValues{Road: ptr(50), Bridge: ptr(35)}, "BRU"},
		{"road lower", CauseValues{Road: ptr(40), Bridge: ptr(60)}, "VEG"},
		{"equal reports both", CauseValues{Road: ptr(40), Bridge: ptr(40)}, "BRU, VEG"},
		{"bridge only", CauseValues{Bridge: ptr(35)}, "BRU"},
		{"road only", CauseValues{Road: ptr(40)}, "VEG"},
		{"length only", CauseValues{Length: ptr(12.4)}, "LENGDE"},
		{"height only", CauseValues{Height: ptr(4.1)}, "HØYDE"},
		{"weight and height", CauseValues{Road: ptr(40), Height: ptr(4.1)}, "VEG, HØYDE"},
		{"nothing binding", CauseValues{Road: ptr(50), Bridge: ptr(60), Length: ptr(19.5), Height: ptr(4.5)}, "OK"},
		{"no values at all", CauseValues{}, "OK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCause(tt.values, v))
		})
	}
}

// End-to-end over the interval layer: a 100m segment on link 5 overlapped by
// a 40t weight record, a 35t bridge and a 4.1m underpass. The allowed
// tonnage is the bridge's 35t and the cause at a 50t requirement is BRU.
func TestSegmentAggregationScenario(t *testing.T) {
	weights := linearref.NewIndex[*float64]()
	weights.Add(5, linearref.NewInterval(20, 60), ptr(40))

	bridges := linearref.NewIndex[*float64]()
	bridges.Add(5, linearref.NewInterval(55, 58), ptr(35))

	heights := linearref.NewIndex[*float64]()
	heights.Add(5, linearref.NewInterval(40, 42), ptr(4.1))

	seg := linearref.NewInterval(0, 100)
	values := ProfileValues{
		BKValue:   linearref.MinOver(weights, 5, seg, linearref.Inclusive),
		MinBridge: linearref.MinOver(bridges, 5, seg, linearref.Strict),
		MinHeight: linearref.MinOver(heights, 5, seg, linearref.Inclusive),
	}
	p := NewSegmentProfile(5, seg, "", values)

	require.NotNil(t, p.AllowedTonnage())
	assert.Equal(t, 35.0, *p.AllowedTonnage())
	assert.Equal(t, SourceBridge, p.DimensioningSource())
	require.NotNil(t, p.MinHeight())
	assert.Equal(t, 4.1, *p.MinHeight())

	cause := ClassifyCause(CauseValues{
		Road:   p.BKValue(),
		Bridge: p.MinBridge(),
	}, testVehicle(t))
	assert.Equal(t, "BRU", cause)
}
