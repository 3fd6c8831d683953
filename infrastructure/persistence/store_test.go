package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrfylke/vegprofil/domain/linearref"
	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/infrastructure/persistence"
	"github.com/mrfylke/vegprofil/internal/testdb"
)

func ptr(v float64) *float64 { return &v }

func TestSegmentStoreReplaceAll(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewSegmentStore(db)
	ctx := context.Background()

	first := []roadnet.RoadSegment{
		roadnet.NewRoadSegment(5, linearref.NewInterval(0, 0.5), "F", 63, 1539, "LINESTRING (0 0, 100 0)"),
		roadnet.NewRoadSegment(5, linearref.NewInterval(0.5, 1), "F", 63, 1539, ""),
	}
	require.NoError(t, store.ReplaceAll(ctx, first))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// A second run replaces instead of appending.
	second := []roadnet.RoadSegment{
		roadnet.NewRoadSegment(6, linearref.NewInterval(0, 1), "F", 64, 1554, ""),
	}
	require.NoError(t, store.ReplaceAll(ctx, second))

	segments, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, int64(6), segments[0].LinkID())
	assert.Equal(t, 64, segments[0].RoadNumber())
}

func TestSegmentStoreReplaceAllEmpty(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewSegmentStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []roadnet.RoadSegment{
		roadnet.NewRoadSegment(5, linearref.NewInterval(0, 1), "F", 63, 1539, ""),
	}))
	require.NoError(t, store.ReplaceAll(ctx, nil))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRestrictionStoreRoundTrip(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRestrictionStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceWeights(ctx, []roadnet.WeightRestriction{
		roadnet.NewWeightRestriction(5, linearref.NewInterval(0.2, 0.6), ptr(40), "BkT8/40", nil, false, ""),
		roadnet.NewWeightRestriction(5, linearref.NewInterval(0.6, 1), nil, "", ptr(13.3), true, ""),
	}))
	require.NoError(t, store.ReplaceBridges(ctx, []roadnet.BridgeRestriction{
		roadnet.NewBridgeRestriction(5, linearref.NewInterval(0.55, 0.58), ptr(35), 123456, "Storbrua", "Bk10/35", ""),
	}))
	require.NoError(t, store.ReplaceHeights(ctx, []roadnet.HeightRestriction{
		roadnet.NewHeightRestriction(5, linearref.NewInterval(0.4, 0.42), 4.1, "beregnet", ""),
	}))

	weights, err := store.Weights(ctx)
	require.NoError(t, err)
	require.Len(t, weights, 2)
	require.NotNil(t, weights[0].Tonnage())
	assert.Equal(t, 40.0, *weights[0].Tonnage())
	assert.Nil(t, weights[1].Tonnage(), "absent tonnage survives the round trip as nil")
	assert.True(t, weights[1].Special())

	bridges, err := store.Bridges(ctx)
	require.NoError(t, err)
	require.Len(t, bridges, 1)
	assert.Equal(t, "Storbrua", bridges[0].Name())
	assert.Equal(t, int64(123456), bridges[0].NVDBID())

	heights, err := store.Heights(ctx)
	require.NoError(t, err)
	require.Len(t, heights, 1)
	assert.Equal(t, 4.1, heights[0].Height())
}

func TestProfileStoreRoundTripWithPropagation(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewProfileStore(db)
	ctx := context.Background()

	p := roadnet.NewSegmentProfile(5, linearref.NewInterval(0, 1), "LINESTRING (0 0, 100 0)", roadnet.ProfileValues{
		BKValue:   ptr(50),
		BKText:    "Bk10/50",
		MinBridge: ptr(35),
		MinHeight: ptr(4.1),
	})
	p = p.WithPropagation(ptr(35), nil, ptr(4.1), roadnet.SourceBridge)

	require.NoError(t, store.ReplaceAll(ctx, []roadnet.SegmentProfile{p}))

	profiles, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	got := profiles[0]
	require.NotNil(t, got.AllowedTonnage())
	assert.Equal(t, 35.0, *got.AllowedTonnage())
	assert.True(t, got.Propagated())
	assert.Equal(t, roadnet.SourceBridge, got.DimSource())
	require.NotNil(t, got.EffectiveTonnage())
	assert.Equal(t, 35.0, *got.EffectiveTonnage())
}

func TestBottleneckStoreUpdateCauses(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewBottleneckStore(db)
	ctx := context.Background()

	b := roadnet.NewBottleneck(5, linearref.NewInterval(0, 1), 1539, 63,
		"Vekt", "Vekt (35t < 50t)", "", ptr(35), nil, nil, roadnet.SourceBridge, "")
	require.NoError(t, store.ReplaceAll(ctx, []roadnet.Bottleneck{b}))

	require.NoError(t, store.UpdateCauses(ctx, []roadnet.Bottleneck{b.WithCause("BRU")}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BRU", list[0].Cause())
	assert.Equal(t, "Vekt", list[0].LimitationType())
}

func TestRutStoreRoundTrip(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRutStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []roadnet.RutParcel{
		roadnet.NewRutParcel(63, 0, 1000, 17.4, 98),
		roadnet.NewRutParcel(63, 1000, 2000, 12.1, 102),
	}))

	parcels, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 2)
	assert.Equal(t, 17.4, parcels[0].P90())
	assert.Equal(t, 98, parcels[0].Measurements())
}

func TestCorridorStoreRoundTrip(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewCorridorStore(db)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []roadnet.Corridor{
		roadnet.NewCorridor(5, 63, 1539, ptr(35), ptr(19.5), nil, "BRU", 4,
			"LINESTRING(0 0,100 0)"),
		roadnet.NewCorridor(9, 62, 1554, nil, nil, nil, "VEG", 1, ""),
	}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Ordered by road number.
	assert.Equal(t, int64(9), list[0].LinkID())
	assert.Nil(t, list[0].Tonnage())

	c := list[1]
	assert.Equal(t, int64(5), c.LinkID())
	require.NotNil(t, c.Tonnage())
	assert.Equal(t, 35.0, *c.Tonnage())
	assert.Equal(t, "BRU", c.DimSource())
	assert.Equal(t, 4, c.Segments())
	assert.Equal(t, "LINESTRING(0 0,100 0)", c.WKT())
}
