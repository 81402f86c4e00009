package scene

import reMath "crystals/math"

// AABB is an axis-aligned bounding box with a cached centroid.
type AABB struct {
	Min, Max, Centroid reMath.Vec3
}

func NewAABB(min, max reMath.Vec3) AABB {
	return AABB{Min: min, Max: max, Centroid: min.Add(max).Mul(0.5)}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	min := reMath.NewVec3(
		minf(a.Min.X, b.Min.X),
		minf(a.Min.Y, b.Min.Y),
		minf(a.Min.Z, b.Min.Z),
	)
	max := reMath.NewVec3(
		maxf(a.Max.X, b.Max.X),
		maxf(a.Max.Y, b.Max.Y),
		maxf(a.Max.Z, b.Max.Z),
	)
	return NewAABB(min, max)
}

// Extent returns the per-axis size of the box.
func (a AABB) Extent() reMath.Vec3 {
	return a.Max.Sub(a.Min)
}

// WidestAxis returns the axis index (0=x,1=y,2=z) with the largest extent
// and that extent's length.
func (a AABB) WidestAxis() (axis int, extent float32) {
	e := a.Extent()
	axis, extent = 0, e.X
	if e.Y > extent {
		axis, extent = 1, e.Y
	}
	if e.Z > extent {
		axis, extent = 2, e.Z
	}
	return
}

func (a AABB) AxisValue(axis int, v reMath.Vec3) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Intersect performs the standard slab test, returning whether the ray
// [origin, origin+t*dir) for t in [tMin, tMax) crosses the box.
func (a AABB) Intersect(origin, dir reMath.Vec3, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		o := axisOf(origin, axis)
		d := axisOf(dir, axis)
		lo := axisOf(a.Min, axis)
		hi := axisOf(a.Max, axis)

		invD := 1.0 / d
		t0 := (lo - o) * invD
		t1 := (hi - o) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < maxf(tMin, 0) {
			return false
		}
	}
	return true
}

func axisOf(v reMath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
