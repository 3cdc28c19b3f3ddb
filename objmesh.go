package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadTexturedMesh reads a Wavefront OBJ file into parallel Tri/TriEx
// slices plus an optional diffuse Surface, adapted from the teacher's
// LoadOBJ. Unlike the teacher's indexed Mesh, the BLAS builder wants
// flat, already-triangulated, already-expanded triangles (every triangle
// owns its own three vertices), so faces are fan-triangulated directly
// into Tri/TriEx entries instead of an index buffer.
func LoadTexturedMesh(objPath, texturePath string) ([]Tri, []TriEx, *Surface, error) {
	f, err := os.Open(objPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading mesh %q: %w", objPath, err)
	}
	defer f.Close()

	var positions []Vec3
	var normals []Vec3
	var uvs []TextureCoord

	type faceVert struct{ v, vt, vn int } // 0 means absent, else 1-based OBJ index
	var faces [][]faceVert

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid vertex", objPath, lineNo)
			}
			x, e1 := strconv.ParseFloat(parts[1], 64)
			y, e2 := strconv.ParseFloat(parts[2], 64)
			z, e3 := strconv.ParseFloat(parts[3], 64)
			if e1 != nil || e2 != nil || e3 != nil {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid vertex coordinates", objPath, lineNo)
			}
			positions = append(positions, Vec3{x, y, z})

		case "vn":
			if len(parts) < 4 {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid normal", objPath, lineNo)
			}
			x, e1 := strconv.ParseFloat(parts[1], 64)
			y, e2 := strconv.ParseFloat(parts[2], 64)
			z, e3 := strconv.ParseFloat(parts[3], 64)
			if e1 != nil || e2 != nil || e3 != nil {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid normal", objPath, lineNo)
			}
			normals = append(normals, Vec3{x, y, z})

		case "vt":
			if len(parts) < 3 {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid uv", objPath, lineNo)
			}
			u, e1 := strconv.ParseFloat(parts[1], 64)
			v, e2 := strconv.ParseFloat(parts[2], 64)
			if e1 != nil || e2 != nil {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: invalid uv", objPath, lineNo)
			}
			uvs = append(uvs, TextureCoord{U: u, V: v})

		case "f":
			if len(parts) < 4 {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: face needs >= 3 vertices", objPath, lineNo)
			}
			face := make([]faceVert, 0, len(parts)-1)
			for i := 1; i < len(parts); i++ {
				fv, err := parseFaceToken(parts[i])
				if err != nil {
					return nil, nil, nil, fmt.Errorf("loading mesh %q: line %d: %w", objPath, lineNo, err)
				}
				face = append(face, fv)
			}
			faces = append(faces, face)

		default:
			continue // mtllib/usemtl/o/g/s and anything else: not needed for intersection
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("loading mesh %q: %w", objPath, err)
	}
	if len(positions) == 0 {
		return nil, nil, nil, fmt.Errorf("loading mesh %q: no vertices found", objPath)
	}

	var tris []Tri
	var tex []TriEx
	for _, face := range faces {
		for i := 1; i < len(face)-1; i++ {
			a, b, c := face[0], face[i], face[i+1]
			v0, err0 := resolveVertex(a.v, positions)
			v1, err1 := resolveVertex(b.v, positions)
			v2, err2 := resolveVertex(c.v, positions)
			if err0 != nil || err1 != nil || err2 != nil {
				return nil, nil, nil, fmt.Errorf("loading mesh %q: vertex index out of range", objPath)
			}
			tris = append(tris, NewTri(v0, v1, v2))

			ex := TriEx{}
			if a.vn != 0 && b.vn != 0 && c.vn != 0 {
				ex.N0, _ = resolveVertex(a.vn, normals)
				ex.N1, _ = resolveVertex(b.vn, normals)
				ex.N2, _ = resolveVertex(c.vn, normals)
			} else {
				n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
				ex.N0, ex.N1, ex.N2 = n, n, n
			}
			if a.vt != 0 && b.vt != 0 && c.vt != 0 && a.vt <= len(uvs) && b.vt <= len(uvs) && c.vt <= len(uvs) {
				ex.UV0 = uvs[a.vt-1]
				ex.UV1 = uvs[b.vt-1]
				ex.UV2 = uvs[c.vt-1]
			}
			tex = append(tex, ex)
		}
	}

	var surf *Surface
	if texturePath != "" {
		surf, err = LoadSurfaceFromFile(texturePath)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return tris, tex, surf, nil
}

func resolveVertex(idx int, pool []Vec3) (Vec3, error) {
	i := idx - 1
	if i < 0 || i >= len(pool) {
		return Vec3{}, fmt.Errorf("index %d out of range", idx)
	}
	return pool[i], nil
}

// parseFaceToken parses one OBJ face vertex token: v, v/vt, v/vt/vn, or
// v//vn. Absent fields are reported as 0.
func parseFaceToken(tok string) (struct{ v, vt, vn int }, error) {
	var out struct{ v, vt, vn int }
	fields := strings.Split(tok, "/")
	v, err := strconv.Atoi(fields[0])
	if err != nil {
		return out, fmt.Errorf("invalid face index %q", tok)
	}
	out.v = v
	if len(fields) >= 2 && fields[1] != "" {
		vt, err := strconv.Atoi(fields[1])
		if err != nil {
			return out, fmt.Errorf("invalid face index %q", tok)
		}
		out.vt = vt
	}
	if len(fields) >= 3 && fields[2] != "" {
		vn, err := strconv.Atoi(fields[2])
		if err != nil {
			return out, fmt.Errorf("invalid face index %q", tok)
		}
		out.vn = vn
	}
	return out, nil
}
