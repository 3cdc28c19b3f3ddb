package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func gridOfTris(n int) []Tri {
	tris := make([]Tri, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 3
		tris[i] = NewTri(Vec3{x, -1, -1}, Vec3{x + 1, -1, 1}, Vec3{x, 1, 0})
	}
	return tris
}

func TestNewBLASClampsBins(t *testing.T) {
	require.Equal(t, defaultBins, NewBLAS(nil, 0).Bins)
	require.Equal(t, minBins, NewBLAS(nil, 1).Bins)
	require.Equal(t, maxBins, NewBLAS(nil, 1000).Bins)
	require.Equal(t, 16, NewBLAS(nil, 16).Bins)
}

func TestBLASBuildEmptyMesh(t *testing.T) {
	b := NewBLAS(nil, 8)
	b.Build()
	require.Equal(t, uint32(0), b.NodesUsed)

	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 1})
	b.Intersect(&ray, &RayCounter{}, 0)
	require.Equal(t, noHit, ray.Hit.T)
}

func TestBLASBuildSingleTriHitsAndMisses(t *testing.T) {
	tris := []Tri{NewTri(Vec3{-1, -1, 0}, Vec3{1, -1, 0}, Vec3{0, 1, 0})}
	b := NewBLAS(tris, 8)
	b.Build()

	hit := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 1})
	b.Intersect(&hit, &RayCounter{}, 0)
	require.Less(t, hit.Hit.T, noHit)

	miss := NewRay(Vec3{10, 10, -5}, Vec3{0, 0, 1})
	b.Intersect(&miss, &RayCounter{}, 0)
	require.Equal(t, noHit, miss.Hit.T)
}

func TestBLASIntersectReturnsClosestHit(t *testing.T) {
	near := NewTri(Vec3{-1, -1, -2}, Vec3{1, -1, -2}, Vec3{0, 1, -2})
	far := NewTri(Vec3{-1, -1, 5}, Vec3{1, -1, 5}, Vec3{0, 1, 5})
	b := NewBLAS([]Tri{far, near}, 8)
	b.Build()

	ray := NewRay(Vec3{0, 0, -10}, Vec3{0, 0, 1})
	b.Intersect(&ray, &RayCounter{}, 3)
	require.InDelta(t, 8.0, ray.Hit.T, 1e-6)
	instance, _ := unpackInstPrim(ray.Hit.InstPrim)
	require.Equal(t, uint32(3), instance)
}

func TestBLASBuildManyTrianglesProducesSplitNodes(t *testing.T) {
	tris := gridOfTris(64)
	b := NewBLAS(tris, 8)
	b.Build()
	require.Greater(t, b.NodesUsed, uint32(2), "64 spread-out triangles should produce more than just the root")

	var leafTriCount int
	for i := uint32(0); i < b.NodesUsed; i++ {
		if i == 1 {
			continue
		}
		n := b.Nodes[i]
		if n.IsLeaf() {
			leafTriCount += int(n.TriCount)
		}
	}
	require.Equal(t, len(tris), leafTriCount, "every triangle must end up in exactly one leaf")
}

func TestBLASRefitUpdatesInteriorBounds(t *testing.T) {
	tris := gridOfTris(8)
	b := NewBLAS(tris, 4)
	b.Build()

	// shrink every triangle toward the origin, then refit and confirm the
	// root box shrank accordingly.
	before := b.Nodes[0]
	for i := range b.Tri {
		b.Tri[i].V0 = b.Tri[i].V0.Scale(0.1)
		b.Tri[i].V1 = b.Tri[i].V1.Scale(0.1)
		b.Tri[i].V2 = b.Tri[i].V2.Scale(0.1)
	}
	b.Refit()
	after := b.Nodes[0]
	require.Less(t, after.Max.X-after.Min.X, before.Max.X-before.Min.X)
}

func TestFindBestSplitPlaneDegenerateAxis(t *testing.T) {
	// all centroids share the same X, so the X axis must be skipped without
	// panicking and a valid split still found on Y or Z.
	tris := []Tri{
		NewTri(Vec3{0, -5, -1}, Vec3{0, -5, 1}, Vec3{0, -4, 0}),
		NewTri(Vec3{0, 5, -1}, Vec3{0, 5, 1}, Vec3{0, 6, 0}),
	}
	b := NewBLAS(tris, 8)
	b.Build()
	require.Greater(t, b.NodesUsed, uint32(2))
}
