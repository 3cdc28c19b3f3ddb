package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMeshDataBuildsBLAS(t *testing.T) {
	tris := []Tri{NewTri(Vec3{-1, -1, 0}, Vec3{1, -1, 0}, Vec3{0, 1, 0})}
	mesh := NewMeshData(tris, nil, nil, 8)
	require.NotNil(t, mesh.Blas)
	require.Greater(t, mesh.Blas.NodesUsed, uint32(0))
}

func TestAddInstanceGridPlacesAllRequested(t *testing.T) {
	scene := NewScene()
	mesh := singleTriMesh(Vec3{})
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, 7, 2.0)
	require.Len(t, scene.Instances, 7)
	require.Len(t, scene.basePos, 7)
}

func TestAddInstanceGridZeroCountIsNoop(t *testing.T) {
	scene := NewScene()
	mesh := singleTriMesh(Vec3{})
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, 0, 2.0)
	require.Empty(t, scene.Instances)
}

func TestRebuildTLASReflectsCurrentInstances(t *testing.T) {
	scene := NewScene()
	mesh := singleTriMesh(Vec3{})
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, 3, 2.0)
	scene.RebuildTLAS()
	require.Equal(t, 3, len(scene.TLAS.Instances))
}

func TestAnimateDormantByDefault(t *testing.T) {
	scene := NewScene()
	mesh := singleTriMesh(Vec3{})
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, 1, 2.0)
	before := scene.Instances[0].Transform
	scene.Animate(1.0)
	require.Equal(t, before, scene.Instances[0].Transform, "ShouldMove defaults false; Animate must not move instances")
}

func TestAnimateMovesWhenEnabled(t *testing.T) {
	scene := NewScene()
	mesh := singleTriMesh(Vec3{})
	scene.AddMesh(mesh)
	scene.AddInstanceGrid(0, 1, 2.0)
	scene.ShouldMove = true
	before := scene.Instances[0].Transform
	scene.Animate(1.0)
	require.NotEqual(t, before, scene.Instances[0].Transform)
}

func TestInstanceMirroredAlternation(t *testing.T) {
	scene := NewScene()
	scene.HalfMirrored = true
	require.False(t, scene.InstanceMirrored(0))
	require.True(t, scene.InstanceMirrored(1))
}

func TestInstanceMirroredDisabled(t *testing.T) {
	scene := NewScene()
	scene.HalfMirrored = false
	require.False(t, scene.InstanceMirrored(1))
}
