package main

import "math"

// Vec3 is a 3-component vector used throughout the tracer for points,
// directions, and colors.
type Vec3 struct {
	X, Y, Z float64
}

func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Length() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector; a zero-length input falls back to +Y,
// matching the teacher's normalizeVector guard against division by zero.
func (a Vec3) Normalize() Vec3 {
	length := a.Length()
	if length < 1e-10 {
		return Vec3{0, 1, 0}
	}
	return a.Scale(1 / length)
}

// Reciprocal returns the elementwise reciprocal. A zero component yields
// +/-Inf per IEEE 754 float64 division, which is exactly what the slab
// test in intersectAABB relies on.
func (a Vec3) Reciprocal() Vec3 { return Vec3{1 / a.X, 1 / a.Y, 1 / a.Z} }

func (a Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// Min3 and Max3 are componentwise, used to grow AABBs.
func Min3(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func Max3(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

func (a Vec3) Negate() Vec3 { return Vec3{-a.X, -a.Y, -a.Z} }
