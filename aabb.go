package main

import "math"

// AABB is an axis-aligned bounding box, grown incrementally from points or
// merged with other boxes. An empty box has Min at +Inf and Max at -Inf so
// that the very first Grow/GrowBox call establishes real bounds.
type AABB struct {
	Min, Max Vec3
}

func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func (b *AABB) Grow(p Vec3) {
	b.Min = Min3(b.Min, p)
	b.Max = Max3(b.Max, p)
}

func (b *AABB) GrowBox(o AABB) {
	b.Min = Min3(b.Min, o.Min)
	b.Max = Max3(b.Max, o.Max)
}

// Area returns half the surface area of the box, used as the SAH cost
// weight (the factor of 2 cancels out when comparing split costs).
func (b AABB) Area() float64 {
	e := b.Max.Sub(b.Min)
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return e.X*e.Y + e.Y*e.Z + e.Z*e.X
}

func (b AABB) Extent() Vec3 { return b.Max.Sub(b.Min) }

func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Corners returns the 8 corners of the box, used by BLASInstance to derive a
// world-space AABB from a local-space one under an affine transform.
func (b AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}
