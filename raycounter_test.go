package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounterRingPublishUpToCapacity(t *testing.T) {
	ring := NewCounterRing(2)
	require.True(t, ring.Publish(&RayCounter{TriangleTests: 1}))
	require.True(t, ring.Publish(&RayCounter{TriangleTests: 2}))
	require.False(t, ring.Publish(&RayCounter{TriangleTests: 3}), "publish past capacity must be silently dropped")
	require.Len(t, ring.Snapshot(), 2)
}

func TestCounterRingDefaultCapacity(t *testing.T) {
	ring := NewCounterRing(0)
	require.Equal(t, counterRingCapacity, ring.capacity)
}

func TestCounterRingResetClears(t *testing.T) {
	ring := NewCounterRing(4)
	ring.Publish(&RayCounter{})
	ring.Publish(&RayCounter{})
	ring.Reset()
	require.Empty(t, ring.Snapshot())
}

func TestCounterRingSnapshotOnlyFilledPrefix(t *testing.T) {
	// regression: aggregation must never see unpublished slots as zeroed
	// counters, which would quietly pull every mean toward zero.
	ring := NewCounterRing(100)
	for i := 0; i < 5; i++ {
		ring.Publish(&RayCounter{TriangleTests: int64(10 + i)})
	}
	snap := ring.Snapshot()
	require.Len(t, snap, 5)
	stats := Aggregate(snap)
	require.Equal(t, 5, stats.Count)
	require.Equal(t, int64(60), stats.TriangleTests.Total) // 10+11+12+13+14
	require.InDelta(t, 12.0, stats.TriangleTests.Mean, 1e-9)
}

func TestAggregateMinMaxTotal(t *testing.T) {
	counters := []*RayCounter{
		{TriangleTests: 5, BoxTests: 1, Traversals: 2, Bounces: 0},
		{TriangleTests: 15, BoxTests: 3, Traversals: 4, Bounces: 1},
	}
	stats := Aggregate(counters)
	require.Equal(t, int64(5), stats.TriangleTests.Min)
	require.Equal(t, int64(15), stats.TriangleTests.Max)
	require.Equal(t, int64(20), stats.TriangleTests.Total)
	require.InDelta(t, 10.0, stats.TriangleTests.Mean, 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	require.Equal(t, 0, stats.Count)
	require.Equal(t, int64(0), stats.TriangleTests.Min)
}
