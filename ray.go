package main

import "math"

// Hit records the closest intersection found so far along a ray.
// InstPrim packs the owning instance index in the high bits and the
// triangle index within that instance's BLAS in the low 20 bits, following
// the original tutorial's single-uint encoding so a miss is a cheap T==1e30
// check rather than a separate bool.
type Hit struct {
	T        float64
	U, V     float64
	InstPrim uint32
}

const noHit = 1e30

func packInstPrim(instance, tri uint32) uint32 { return (instance << 20) | (tri & 0xfffff) }

func unpackInstPrim(p uint32) (instance, tri uint32) { return p >> 20, p & 0xfffff }

// Ray is a ray with its reciprocal direction cached for the slab test, and
// the closest Hit found during traversal.
type Ray struct {
	O, D, RD Vec3
	Hit      Hit
}

func NewRay(o, d Vec3) Ray {
	r := Ray{O: o, Hit: Hit{T: noHit}}
	r.SetDirection(d)
	return r
}

// SetDirection stores D and recomputes RD. A zero component in D yields
// +/-Inf in RD per IEEE 754 float64 division; intersectAABB relies on that
// rather than guarding against it explicitly.
func (r *Ray) SetDirection(d Vec3) {
	r.D = d
	r.RD = d.Reciprocal()
}

const (
	moellerTrumboreParallelEps = 1e-5
	moellerTrumboreTNearZero   = 1e-4
)

// intersectTri runs Möller-Trumbore against a single triangle and updates
// ray.Hit in place if this is the closest hit so far. instPrim identifies
// the triangle for the caller (already packed with the owning instance).
func intersectTri(ray *Ray, tri *Tri, instPrim uint32) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := ray.D.Cross(edge2)
	a := edge1.Dot(h)
	if a > -moellerTrumboreParallelEps && a < moellerTrumboreParallelEps {
		return // ray parallel to triangle plane
	}
	f := 1 / a
	s := ray.O.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return
	}
	q := s.Cross(edge1)
	v := f * ray.D.Dot(q)
	if v < 0 || u+v > 1 {
		return
	}
	t := f * edge2.Dot(q)
	if t > moellerTrumboreTNearZero && t < ray.Hit.T {
		ray.Hit.T = t
		ray.Hit.U = u
		ray.Hit.V = v
		ray.Hit.InstPrim = instPrim
	}
}

// intersectAABB is the scalar slab test. It returns the near-t distance on a
// hit that is closer than ray.Hit.T, or +Inf on a miss — the same sentinel
// convention the original tutorial uses so callers can compare distances
// directly instead of branching on a separate bool.
func intersectAABB(ray *Ray, bmin, bmax Vec3) float64 {
	tx1 := (bmin.X - ray.O.X) * ray.RD.X
	tx2 := (bmax.X - ray.O.X) * ray.RD.X
	tmin := math.Min(tx1, tx2)
	tmax := math.Max(tx1, tx2)

	ty1 := (bmin.Y - ray.O.Y) * ray.RD.Y
	ty2 := (bmax.Y - ray.O.Y) * ray.RD.Y
	tmin = math.Max(tmin, math.Min(ty1, ty2))
	tmax = math.Min(tmax, math.Max(ty1, ty2))

	tz1 := (bmin.Z - ray.O.Z) * ray.RD.Z
	tz2 := (bmax.Z - ray.O.Z) * ray.RD.Z
	tmin = math.Max(tmin, math.Min(tz1, tz2))
	tmax = math.Min(tmax, math.Max(tz1, tz2))

	if tmax >= tmin && tmin < ray.Hit.T && tmax > 0 {
		return tmin
	}
	return math.Inf(1)
}
