package main

import "math"

// Camera holds the three screen-plane corners (top-left, top-right,
// bottom-left) plus the eye position, built by the caller and handed to the
// tiled driver once per frame before it dispatches tiles — the same precompute-then-interpolate
// approach the original tutorial's Tick() uses ahead of its parallel loop,
// adapted here from this file's teacher FOV/Transform-based Camera into a
// screen-plane camera a headless ray tracer can fire primary rays from
// directly, without a separate projection matrix per ray.
type Camera struct {
	Pos        Vec3
	P0, P1, P2 Vec3
}

// NewCamera builds the screen plane for a perspective camera at pos looking
// at target, with the given vertical field of view (radians) and aspect
// ratio (width/height). up need not be unit length or orthogonal to
// forward; it's re-orthogonalized via cross products.
func NewCamera(pos, target, up Vec3, fovY, aspect float64) Camera {
	forward := target.Sub(pos).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward).Normalize()

	halfHeight := math.Tan(fovY / 2)
	halfWidth := halfHeight * aspect

	center := pos.Add(forward)
	topLeft := center.Add(camUp.Scale(halfHeight)).Sub(right.Scale(halfWidth))
	return Camera{
		Pos: pos,
		P0:  topLeft,
		P1:  topLeft.Add(right.Scale(2 * halfWidth)),
		P2:  topLeft.Sub(camUp.Scale(2 * halfHeight)),
	}
}

// PrimaryRay fires a ray through normalized screen coordinates (u,v) in
// [0,1]x[0,1], u left-to-right and v top-to-bottom, bilinearly
// interpolating across the three screen-plane corners.
func (c Camera) PrimaryRay(u, v float64) Ray {
	point := c.P0.
		Add(c.P1.Sub(c.P0).Scale(u)).
		Add(c.P2.Sub(c.P0).Scale(v))
	dir := point.Sub(c.Pos).Normalize()
	return NewRay(c.Pos, dir)
}
