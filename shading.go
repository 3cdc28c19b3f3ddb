package main

import "math"

const (
	defaultMirrorDepth = 10
	skyDimming         = 0.65
	ambientTerm        = 0.1
)

var (
	lightPos   = Vec3{3, 10, 2}
	lightColor = Vec3{1, 1, 0.9}
)

// Tracer lets a Shader re-enter the core to fire a secondary ray (mirror
// bounces) through the same scene and shader without calling Trace itself.
type Tracer func(ray *Ray, counter *RayCounter, depth int) Vec3

// Shader is the external collaborator the tiled driver calls once per
// primary ray after TLAS traversal. It owns all lighting decisions; the
// core BVH/TLAS code never looks at color.
type Shader interface {
	Shade(ray *Ray, scene *Scene, trace Tracer, counter *RayCounter, depth int) Vec3
}

// Trace runs one TLAS intersection and hands the result to shader.Shade,
// threading a closure back into itself so Shade can issue secondary rays
// (mirror bounces). The shader bounds that recursion through depth.
func Trace(scene *Scene, shader Shader, ray *Ray, counter *RayCounter, depth int) Vec3 {
	scene.TLAS.Intersect(ray, counter)
	tracer := func(r *Ray, c *RayCounter, d int) Vec3 {
		return Trace(scene, shader, r, c, d)
	}
	return shader.Shade(ray, scene, tracer, counter, depth)
}

// WhittedShader implements Lambertian diffuse + a single point light, sky
// sampling on miss, and mirror bounces on instances Scene.InstanceMirrored
// flags — the original tutorial's whitted.cpp Trace, generalized to
// arbitrary instance counts instead of the tutorial's fixed 9 meshes /
// 256 instances.
type WhittedShader struct {
	MirrorDepth int
}

func NewWhittedShader() *WhittedShader {
	return &WhittedShader{MirrorDepth: defaultMirrorDepth}
}

func (w *WhittedShader) Shade(ray *Ray, scene *Scene, trace Tracer, counter *RayCounter, depth int) Vec3 {
	if ray.Hit.T >= noHit {
		if scene.Sky != nil {
			return scene.Sky.Lookup(ray.D).Scale(skyDimming)
		}
		return Vec3{}
	}

	instIdx, triIdx := unpackInstPrim(ray.Hit.InstPrim)
	inst := scene.Instances[instIdx]
	mesh := inst.Mesh

	hitPoint := ray.O.Add(ray.D.Scale(ray.Hit.T)) // ray O/D are world-space at the TLAS level

	normal := Vec3{0, 1, 0}
	var uv TextureCoord
	if mesh.TriEx != nil {
		ex := mesh.TriEx[triIdx]
		u, v := ray.Hit.U, ray.Hit.V
		w := 1 - u - v
		n := ex.N0.Scale(w).Add(ex.N1.Scale(u)).Add(ex.N2.Scale(v))
		normal = inst.Transform.TransformVector(n).Normalize()
		uv = TextureCoord{
			U: ex.UV0.U*w + ex.UV1.U*u + ex.UV2.U*v,
			V: ex.UV0.V*w + ex.UV1.V*u + ex.UV2.V*v,
		}
	}

	if scene.InstanceMirrored(int(instIdx)) && depth < w.MirrorDepth {
		counter.Bounces++
		reflected := ray.D.Sub(normal.Scale(2 * ray.D.Dot(normal)))
		secondary := NewRay(hitPoint.Add(reflected.Scale(1e-4)), reflected)
		return trace(&secondary, counter, depth+1)
	}

	albedo := Vec3{0.8, 0.8, 0.8}
	if mesh.Surface != nil {
		albedo = texelToVec3(mesh.Surface.Sample(uv))
	}

	toLight := lightPos.Sub(hitPoint)
	dist := toLight.Length()
	toLight = toLight.Scale(1 / dist)
	diffuse := math.Max(0, normal.Dot(toLight))
	attenuation := 1.0 / (1.0 + 0.05*dist*dist)

	color := albedo.Scale(ambientTerm)
	color = color.Add(albedo.Mul(lightColor).Scale(diffuse * attenuation))
	return color
}

// BaryShader colors every hit by its barycentric coordinates and returns
// black on a miss — no lighting at all. Supplemented from the original
// tutorial's pretty.cpp Trace, useful as a fast BVH/TLAS visual smoke test.
type BaryShader struct{}

func (BaryShader) Shade(ray *Ray, scene *Scene, trace Tracer, counter *RayCounter, depth int) Vec3 {
	if ray.Hit.T >= noHit {
		return Vec3{}
	}
	u, v := ray.Hit.U, ray.Hit.V
	return Vec3{X: u, Y: v, Z: 1 - (u + v)}
}
