package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyAABBIsInverted(t *testing.T) {
	b := EmptyAABB()
	require.True(t, math.IsInf(b.Min.X, 1))
	require.True(t, math.IsInf(b.Max.X, -1))
}

func TestAABBGrowEstablishesBounds(t *testing.T) {
	b := EmptyAABB()
	b.Grow(Vec3{1, 2, 3})
	require.Equal(t, Vec3{1, 2, 3}, b.Min)
	require.Equal(t, Vec3{1, 2, 3}, b.Max)

	b.Grow(Vec3{-1, 5, 0})
	require.Equal(t, Vec3{-1, 2, 0}, b.Min)
	require.Equal(t, Vec3{1, 5, 3}, b.Max)
}

func TestAABBGrowBox(t *testing.T) {
	a := EmptyAABB()
	a.Grow(Vec3{0, 0, 0})
	a.Grow(Vec3{1, 1, 1})

	other := AABB{Min: Vec3{-2, -2, -2}, Max: Vec3{0.5, 0.5, 0.5}}
	a.GrowBox(other)
	require.Equal(t, Vec3{-2, -2, -2}, a.Min)
	require.Equal(t, Vec3{1, 1, 1}, a.Max)
}

func TestAABBArea(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 2, 2}}
	// half surface area: 2*2 + 2*2 + 2*2 = 12
	require.InDelta(t, 12.0, b.Area(), 1e-9)
}

func TestAABBCenterExtent(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{2, 4, 6}}
	require.Equal(t, Vec3{2, 4, 6}, b.Extent())
	require.Equal(t, Vec3{1, 2, 3}, b.Center())
}

func TestAABBCorners(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	corners := b.Corners()
	require.Len(t, corners, 8)
	var sum Vec3
	for _, c := range corners {
		sum = sum.Add(c)
	}
	require.Equal(t, Vec3{4, 4, 4}, sum)
}
