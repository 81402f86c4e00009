package scene

import (
	"testing"

	reMath "crystals/math"
)

func TestCameraCentrePixelLooksForward(t *testing.T) {
	cam := NewCamera(reMath.NewVec3(0, 0, 0), reMath.NewVec3(0, 0, -1), reMath.NewVec3(0, 1, 0), 1.0)
	cam.Update(100, 100)

	ray := cam.GenerateRay(49, 49, 0.5, 0.5)
	tolerance := float32(0.05)
	if abs32(ray.Dir.X) > tolerance || abs32(ray.Dir.Y) > tolerance || abs32(ray.Dir.Z+1) > tolerance {
		t.Errorf("expected centre ray direction ~(0,0,-1), got %v", ray.Dir)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
