package main

import "math"

// MeshData bundles one BLAS with the parallel shading data (TriEx/Surface)
// that the core traversal never reads but WhittedShader needs once it has
// a hit. Multiple BLASInstances may share the same MeshData, the standard
// instancing win: build the BLAS once, place it many times.
type MeshData struct {
	Blas    *BLAS
	TriEx   []TriEx // parallel to Blas.Tri; nil if the mesh carries no normals/UVs
	Surface *Surface
}

func NewMeshData(tris []Tri, triEx []TriEx, surf *Surface, bins int) *MeshData {
	blas := NewBLAS(tris, bins)
	blas.Build()
	return &MeshData{Blas: blas, TriEx: triEx, Surface: surf}
}

// Scene owns every mesh, every instance of those meshes, the TLAS over the
// instances, and the optional environment map / animation state the
// default Shader reads.
type Scene struct {
	Meshes       []*MeshData
	Instances    []*BLASInstance
	basePos      []Vec3 // grid position each instance was created at, for Animate
	TLAS         *TLAS
	Sky          *EnvMap
	HalfMirrored bool
	ShouldMove   bool
	animTime     float64
}

func NewScene() *Scene {
	return &Scene{TLAS: NewTLAS(nil)}
}

func (s *Scene) AddMesh(m *MeshData) int {
	s.Meshes = append(s.Meshes, m)
	return len(s.Meshes) - 1
}

// AddInstanceGrid places count instances of mesh meshIdx on a roughly
// square grid in the XZ plane spacing apart, following the teacher's
// CreateInstanceGrid layout and the original tutorial's AnimateScene grid
// arrangement.
func (s *Scene) AddInstanceGrid(meshIdx int, count int, spacing float64) {
	if count <= 0 {
		return
	}
	side := int(math.Ceil(math.Sqrt(float64(count))))
	half := float64(side-1) / 2.0
	placed := 0
	for row := 0; row < side && placed < count; row++ {
		for col := 0; col < side && placed < count; col++ {
			pos := Vec3{
				X: (float64(col) - half) * spacing,
				Y: 0,
				Z: (float64(row) - half) * spacing,
			}
			inst := NewBLASInstance(s.Meshes[meshIdx])
			inst.SetTransform(Translate(pos))
			s.Instances = append(s.Instances, inst)
			s.basePos = append(s.basePos, pos)
			placed++
		}
	}
}

// RebuildTLAS must run once per frame after any transform changes — the
// tiled driver's per-frame sequence is update transforms, RebuildTLAS,
// dispatch tiles, join, quantize.
func (s *Scene) RebuildTLAS() {
	s.TLAS = NewTLAS(s.Instances)
	s.TLAS.BuildQuick()
}

// Animate advances the scene clock and, when ShouldMove is set, bobs and
// spins every instance in place around its grid position — the
// supplemented feature from the original tutorial's AnimateScene, kept
// dormant (SHOULD_MOVE defaults false there too) unless explicitly enabled.
func (s *Scene) Animate(dt float64) {
	s.animTime += dt
	if !s.ShouldMove {
		return
	}
	for i, inst := range s.Instances {
		phase := float64(i) * 0.37
		bob := math.Sin(s.animTime*2.0+phase) * 0.5
		spin := s.animTime*1.3 + phase
		pos := s.basePos[i]
		pos.Y += bob
		inst.SetTransform(Translate(pos).Mul(RotateY(spin)))
	}
}

// InstanceMirrored reports whether instance i should render as a mirror
// instead of diffuse, the original tutorial's HALF_MIRRORED alternation:
// every instance whose (index*17) is odd.
func (s *Scene) InstanceMirrored(i int) bool {
	return s.HalfMirrored && (uint32(i)*17)&1 == 1
}
