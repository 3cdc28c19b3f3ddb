package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityTransformIsNoop(t *testing.T) {
	p := Vec3{1, 2, 3}
	require.Equal(t, p, Identity().TransformPoint(p))
}

func TestTranslateMovesPoint(t *testing.T) {
	m := Translate(Vec3{5, -2, 1})
	got := m.TransformPoint(Vec3{0, 0, 0})
	require.Equal(t, Vec3{5, -2, 1}, got)
}

func TestTranslateDoesNotAffectVector(t *testing.T) {
	m := Translate(Vec3{5, -2, 1})
	got := m.TransformVector(Vec3{1, 0, 0})
	require.Equal(t, Vec3{1, 0, 0}, got)
}

func TestUniformScale(t *testing.T) {
	m := UniformScale(2)
	got := m.TransformPoint(Vec3{1, 2, 3})
	require.Equal(t, Vec3{2, 4, 6}, got)
}

func TestRotateYQuarterTurn(t *testing.T) {
	m := RotateY(math.Pi / 2)
	got := m.TransformPoint(Vec3{1, 0, 0})
	require.InDelta(t, 0.0, got.X, 1e-9)
	require.InDelta(t, -1.0, got.Z, 1e-9)
}

func TestMatrixMulComposesTransforms(t *testing.T) {
	combined := Translate(Vec3{1, 0, 0}).Mul(UniformScale(2))
	got := combined.TransformPoint(Vec3{1, 1, 1})
	// scale first, then translate: (2,2,2) + (1,0,0)
	require.Equal(t, Vec3{3, 2, 2}, got)
}

func TestInvertRoundTrips(t *testing.T) {
	m := Translate(Vec3{3, -1, 2}).Mul(RotateY(0.7)).Mul(UniformScale(1.5))
	inv := m.Invert()
	p := Vec3{2, 5, -3}
	got := inv.TransformPoint(m.TransformPoint(p))
	require.InDelta(t, p.X, got.X, 1e-6)
	require.InDelta(t, p.Y, got.Y, 1e-6)
	require.InDelta(t, p.Z, got.Z, 1e-6)
}

func TestInvertSingularFallsBackToIdentity(t *testing.T) {
	var singular Mat4 // all zeros, determinant 0
	inv := singular.Invert()
	require.Equal(t, Identity(), inv)
}
