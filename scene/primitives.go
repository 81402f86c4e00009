package scene

import (
	"math"

	reMath "crystals/math"
)

// PrimitiveType tags the variant held by a Primitive.
type PrimitiveType int

const (
	PrimitiveSphere PrimitiveType = iota
	PrimitiveTriangle
)

// DefaultMaterialID marks a primitive that has no explicit material
// assigned; the integrator substitutes the process-wide Default material.
const DefaultMaterialID = -1

// Primitive is a tagged union of the two supported geometric shapes.
// For Sphere, V1 is the centre and V2.X is the radius. For Triangle,
// V1/V2/V3 are the vertices in winding order.
type Primitive struct {
	Type       PrimitiveType
	V1, V2, V3 reMath.Vec3
	MaterialID int
}

func NewSphere(centre reMath.Vec3, radius float32, materialID int) Primitive {
	return Primitive{
		Type:       PrimitiveSphere,
		V1:         centre,
		V2:         reMath.NewVec3(radius, 0, 0),
		MaterialID: materialID,
	}
}

func NewTriangle(v1, v2, v3 reMath.Vec3, materialID int) Primitive {
	return Primitive{Type: PrimitiveTriangle, V1: v1, V2: v2, V3: v3, MaterialID: materialID}
}

// AABB returns the primitive's bounding box.
func (p Primitive) AABB() AABB {
	switch p.Type {
	case PrimitiveSphere:
		r := p.V2.X
		rad := reMath.NewVec3(r, r, r)
		return NewAABB(p.V1.Sub(rad), p.V1.Add(rad))
	default:
		min := reMath.NewVec3(
			minf(minf(p.V1.X, p.V2.X), p.V3.X),
			minf(minf(p.V1.Y, p.V2.Y), p.V3.Y),
			minf(minf(p.V1.Z, p.V2.Z), p.V3.Z),
		)
		max := reMath.NewVec3(
			maxf(maxf(p.V1.X, p.V2.X), p.V3.X),
			maxf(maxf(p.V1.Y, p.V2.Y), p.V3.Y),
			maxf(maxf(p.V1.Z, p.V2.Z), p.V3.Z),
		)
		return NewAABB(min, max)
	}
}

// Hit is the outcome of a ray-primitive intersection.
type Hit struct {
	T          float32
	P, N       reMath.Vec3
	D2C, D2R   reMath.Vec3
	MaterialID int
}

// NoHit is the sentinel returned when a ray misses.
var NoHit = Hit{T: -1}

// Intersect tests the ray (origin, dir) against the primitive and fills
// in a full Hit record (geometric normal flipped towards the ray origin,
// and its reflection) when t >= 0.
func (p Primitive) Intersect(origin, dir reMath.Vec3) Hit {
	var t float32 = -1
	var n reMath.Vec3

	switch p.Type {
	case PrimitiveSphere:
		t, n = sphereIntersect(p, origin, dir)
	case PrimitiveTriangle:
		t, n = triangleIntersect(p, origin, dir)
	}

	if t < 0 {
		return NoHit
	}

	point := origin.Add(dir.Mul(t))
	d2c := origin.Sub(point).Normalize()
	if n.Dot(d2c) < 0 {
		n = n.Negate()
	}
	d2r := d2c.Reflect(n)

	return Hit{T: t, P: point, N: n, D2C: d2c, D2R: d2r, MaterialID: p.MaterialID}
}

func sphereIntersect(p Primitive, origin, dir reMath.Vec3) (float32, reMath.Vec3) {
	centre := p.V1
	radius := p.V2.X

	oc := origin.Sub(centre)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return -1, reMath.Vec3{}
	}
	sq := float32(math.Sqrt(float64(disc)))
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	t := t0
	if t < 1e-4 {
		t = t1
	}
	if t < 1e-4 {
		return -1, reMath.Vec3{}
	}
	point := origin.Add(dir.Mul(t))
	normal := point.Sub(centre).Normalize()
	return t, normal
}

// triangleIntersect implements the Moller-Trumbore algorithm.
func triangleIntersect(p Primitive, origin, dir reMath.Vec3) (float32, reMath.Vec3) {
	e1 := p.V2.Sub(p.V1)
	e2 := p.V3.Sub(p.V1)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -1e-7 && a < 1e-7 {
		return -1, reMath.Vec3{}
	}
	f := 1.0 / a
	s := origin.Sub(p.V1)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return -1, reMath.Vec3{}
	}
	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return -1, reMath.Vec3{}
	}
	t := f * e2.Dot(q)
	if t < 1e-4 {
		return -1, reMath.Vec3{}
	}
	normal := e1.Cross(e2).Normalize()
	return t, normal
}
