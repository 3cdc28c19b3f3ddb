package main

// BLASInstance places one BLAS in world space via a rigid+uniform-scale
// transform, computing its own world-space AABB and handling the
// local-space ray transform around each Intersect call — the standard
// two-level BVH instancing pattern.
type BLASInstance struct {
	Mesh         *MeshData
	Transform    Mat4
	InvTransform Mat4
	Bounds       AABB
}

func NewBLASInstance(mesh *MeshData) *BLASInstance {
	inst := &BLASInstance{Mesh: mesh}
	inst.SetTransform(Identity())
	return inst
}

// SetTransform stores the new world transform and its inverse, then
// recomputes the world-space bounds by transforming the BLAS root's 8
// local-space corners — cheaper than re-growing over every triangle, and
// exactly what the original tutorial's SetTransform does.
func (bi *BLASInstance) SetTransform(m Mat4) {
	bi.Transform = m
	bi.InvTransform = m.Invert()

	box := EmptyAABB()
	blas := bi.Mesh.Blas
	if blas.NodesUsed > 0 {
		local := AABB{Min: blas.Nodes[0].Min, Max: blas.Nodes[0].Max}
		for _, corner := range local.Corners() {
			box.Grow(m.TransformPoint(corner))
		}
	}
	bi.Bounds = box
}

// Intersect transforms ray into the instance's local space on a copy,
// traverses the BLAS, and on return restores the caller's ray with the
// (possibly updated) hit and original origin/direction — the caller's ray
// stays in world space throughout.
func (bi *BLASInstance) Intersect(ray *Ray, counter *RayCounter, instanceIndex uint32) {
	backupO, backupD, backupRD := ray.O, ray.D, ray.RD

	local := *ray
	local.O = bi.InvTransform.TransformPoint(ray.O)
	local.SetDirection(bi.InvTransform.TransformVector(ray.D))

	bi.Mesh.Blas.Intersect(&local, counter, instanceIndex)

	ray.Hit = local.Hit
	ray.O, ray.D, ray.RD = backupO, backupD, backupRD
}
