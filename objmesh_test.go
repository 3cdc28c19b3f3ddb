package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeOBJFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTexturedMeshTriangle(t *testing.T) {
	obj := "v -1 -1 0\nv 1 -1 0\nv 0 1 0\nf 1 2 3\n"
	path := writeOBJFixture(t, obj)

	tris, triEx, surf, err := LoadTexturedMesh(path, "")
	require.NoError(t, err)
	require.Len(t, tris, 1)
	require.Len(t, triEx, 1)
	require.Nil(t, surf)
	// no vn given: flat normal computed via cross product, pointing +Z
	require.InDelta(t, 0.0, triEx[0].N0.X, 1e-9)
	require.InDelta(t, 0.0, triEx[0].N0.Y, 1e-9)
	require.Greater(t, triEx[0].N0.Z, 0.0)
}

func TestLoadTexturedMeshQuadFanTriangulates(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	path := writeOBJFixture(t, obj)

	tris, _, _, err := LoadTexturedMesh(path, "")
	require.NoError(t, err)
	require.Len(t, tris, 2, "a quad fan-triangulates into 2 triangles")
}

func TestLoadTexturedMeshWithNormalsAndUVs(t *testing.T) {
	obj := "v -1 -1 0\nv 1 -1 0\nv 0 1 0\n" +
		"vn 0 0 1\nvt 0 0\nvt 1 0\nvt 0.5 1\n" +
		"f 1/1/1 2/2/1 3/3/1\n"
	path := writeOBJFixture(t, obj)

	tris, triEx, _, err := LoadTexturedMesh(path, "")
	require.NoError(t, err)
	require.Len(t, tris, 1)
	require.Equal(t, Vec3{0, 0, 1}, triEx[0].N0)
	require.Equal(t, TextureCoord{0, 0}, triEx[0].UV0)
	require.Equal(t, TextureCoord{1, 0}, triEx[0].UV1)
}

func TestLoadTexturedMeshRejectsOutOfRangeIndex(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"
	path := writeOBJFixture(t, obj)

	_, _, _, err := LoadTexturedMesh(path, "")
	require.Error(t, err)
}

func TestLoadTexturedMeshRejectsEmptyFile(t *testing.T) {
	path := writeOBJFixture(t, "# just a comment\n")
	_, _, _, err := LoadTexturedMesh(path, "")
	require.Error(t, err)
}

func TestLoadTexturedMeshMissingFile(t *testing.T) {
	_, _, _, err := LoadTexturedMesh("/nonexistent/mesh.obj", "")
	require.Error(t, err)
}

func TestParseFaceTokenVariants(t *testing.T) {
	v, err := parseFaceToken("5")
	require.NoError(t, err)
	require.Equal(t, 5, v.v)
	require.Equal(t, 0, v.vt)
	require.Equal(t, 0, v.vn)

	v, err = parseFaceToken("5/6")
	require.NoError(t, err)
	require.Equal(t, 6, v.vt)

	v, err = parseFaceToken("5//7")
	require.NoError(t, err)
	require.Equal(t, 0, v.vt)
	require.Equal(t, 7, v.vn)

	v, err = parseFaceToken("5/6/7")
	require.NoError(t, err)
	require.Equal(t, 5, v.v)
	require.Equal(t, 6, v.vt)
	require.Equal(t, 7, v.vn)
}

func TestParseFaceTokenInvalid(t *testing.T) {
	_, err := parseFaceToken("abc")
	require.Error(t, err)
}
