package scene

import (
	"math"

	reMath "crystals/math"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin, Dir reMath.Vec3
}

// Camera is a pinhole camera described by position, forward direction,
// up vector, and a vertical field of view (HAngle); the horizontal angle
// WAngle and IView are derived by Update and must not be read before
// the first call.
type Camera struct {
	Position reMath.Vec3
	Look     reMath.Vec3
	Up       reMath.Vec3
	HAngle   float32

	WAngle float32
	Width  int
	Height int
	IView  reMath.Mat4
}

func NewCamera(position, look, up reMath.Vec3, hangle float32) *Camera {
	return &Camera{Position: position, Look: look.Normalize(), Up: up, HAngle: hangle}
}

// Update recomputes the horizontal angle for the given aspect ratio and
// rebuilds the inverse-view matrix used by GenerateRay.
func (c *Camera) Update(w, h int) {
	c.Width, c.Height = w, h
	aspect := float32(w) / float32(h)
	c.WAngle = 2 * float32(math.Atan(float64(aspect*float32(math.Tan(float64(c.HAngle/2))))))

	target := c.Position.Add(c.Look)
	view := reMath.Mat4LookAt(c.Position, target, c.Up)
	c.IView = view.Inverse()
}

// GenerateRay builds the primary ray for pixel (x, y) with sub-pixel
// offset (ox, oy) in [0,1).
func (c *Camera) GenerateRay(x, y int, ox, oy float32) Ray {
	ndcX := 2 * float32(math.Tan(float64(c.WAngle/2))) * ((float32(x)+ox+0.5)/float32(c.Width) - 0.5)
	ndcY := 2 * float32(math.Tan(float64(c.HAngle/2))) * (0.5 - (float32(y)+oy+0.5)/float32(c.Height))

	clip := reMath.NewVec4(ndcX, ndcY, -1, 1)
	world := c.IView.MulVec(clip).ToVec3()
	dir := world.Sub(c.Position).Normalize()

	return Ray{Origin: c.Position, Dir: dir}
}
