package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpackInstPrim(t *testing.T) {
	p := packInstPrim(17, 4095)
	instance, tri := unpackInstPrim(p)
	require.Equal(t, uint32(17), instance)
	require.Equal(t, uint32(4095), tri)
}

func TestPackInstPrimTriMasksHighBits(t *testing.T) {
	// a triangle index beyond the 20-bit field must not bleed into the
	// instance field once packed (0xfffff+5 = 0x100004, whose low 20 bits are 4)
	p := packInstPrim(1, 0xfffff+5)
	instance, tri := unpackInstPrim(p)
	require.Equal(t, uint32(1), instance)
	require.Equal(t, uint32(4), tri)
}

func TestNewRaySetsReciprocal(t *testing.T) {
	r := NewRay(Vec3{}, Vec3{2, 0, 0})
	require.Equal(t, 0.5, r.RD.X)
	require.Equal(t, noHit, r.Hit.T)
}

func TestIntersectTriHitsCenter(t *testing.T) {
	tri := NewTri(Vec3{-1, -1, 0}, Vec3{1, -1, 0}, Vec3{0, 1, 0})
	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 1})
	intersectTri(&ray, &tri, 42)
	require.Less(t, ray.Hit.T, noHit)
	require.InDelta(t, 5.0, ray.Hit.T, 1e-9)
	require.Equal(t, uint32(42), ray.Hit.InstPrim)
}

func TestIntersectTriMissesParallelRay(t *testing.T) {
	tri := NewTri(Vec3{-1, -1, 0}, Vec3{1, -1, 0}, Vec3{0, 1, 0})
	ray := NewRay(Vec3{0, 0, -5}, Vec3{1, 0, 0})
	intersectTri(&ray, &tri, 0)
	require.Equal(t, noHit, ray.Hit.T)
}

func TestIntersectTriMissesOutsideEdges(t *testing.T) {
	tri := NewTri(Vec3{-1, -1, 0}, Vec3{1, -1, 0}, Vec3{0, 1, 0})
	ray := NewRay(Vec3{10, 10, -5}, Vec3{0, 0, 1})
	intersectTri(&ray, &tri, 0)
	require.Equal(t, noHit, ray.Hit.T)
}

func TestIntersectAABBHit(t *testing.T) {
	ray := NewRay(Vec3{0, 0, -5}, Vec3{0, 0, 1})
	tmin := intersectAABB(&ray, Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	require.InDelta(t, 4.0, tmin, 1e-9)
}

func TestIntersectAABBMissBehindRay(t *testing.T) {
	ray := NewRay(Vec3{0, 0, 5}, Vec3{0, 0, 1})
	tmin := intersectAABB(&ray, Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	require.True(t, math.IsInf(tmin, 1))
}

func TestIntersectAABBMissParallelOutsideSlab(t *testing.T) {
	ray := NewRay(Vec3{10, 10, -5}, Vec3{0, 0, 1})
	tmin := intersectAABB(&ray, Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	require.True(t, math.IsInf(tmin, 1))
}
