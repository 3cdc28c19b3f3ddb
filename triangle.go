package main

import (
	"bufio"
	"fmt"
	"os"
)

// Tri is the data the BVH builder and traverser need: three vertices and a
// precomputed centroid. It never changes after load, matching the teacher's
// pattern of immutable geometry handed to a spatial structure
// (spatial_partitioning.go's computeObjectBounds assumes the same).
type Tri struct {
	V0, V1, V2 Vec3
	Centroid   Vec3
}

func NewTri(v0, v1, v2 Vec3) Tri {
	return Tri{
		V0: v0, V1: v1, V2: v2,
		Centroid: v0.Add(v1).Add(v2).Scale(1.0 / 3.0),
	}
}

// TriEx carries the per-vertex shading data the core BVH never reads:
// normals and texture coordinates, kept as a second, parallel slice so the
// hot build/traverse path stays small and cache-friendly.
type TriEx struct {
	N0, N1, N2    Vec3
	UV0, UV1, UV2 TextureCoord
}

// LoadTriangleFile reads a plain triangle soup: one triangle per line, nine
// whitespace-separated floats (v0 v1 v2), no normals or UVs. This is the
// untextured path the original "How to Build a BVH" series loads armadillo
// and bunny scenes from.
func LoadTriangleFile(path string) ([]Tri, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading triangle file %q: %w", path, err)
	}
	defer f.Close()

	var tris []Tri
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var v [9]float64
		n, err := fmt.Sscanf(line, "%f %f %f %f %f %f %f %f %f",
			&v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7], &v[8])
		if err != nil || n != 9 {
			return nil, fmt.Errorf("loading triangle file %q: line %d: expected 9 floats: %w", path, lineNo, err)
		}
		tris = append(tris, NewTri(
			Vec3{v[0], v[1], v[2]},
			Vec3{v[3], v[4], v[5]},
			Vec3{v[6], v[7], v[8]},
		))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loading triangle file %q: %w", path, err)
	}
	return tris, nil
}
