package scene

import (
	"testing"

	reMath "crystals/math"
)

func TestSphereIntersectHeadOn(t *testing.T) {
	sphere := NewSphere(reMath.NewVec3(0, 0, 0), 1, 0)
	hit := sphere.Intersect(reMath.NewVec3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	if hit.T < 0 {
		t.Fatal("expected a hit on the sphere")
	}
	if diff := hit.T - 4; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("expected t=4, got %v", hit.T)
	}
	if hit.N.Dot(hit.D2C) < 0 {
		t.Error("normal should face the ray origin")
	}
}

func TestSphereIntersectMiss(t *testing.T) {
	sphere := NewSphere(reMath.NewVec3(10, 10, 10), 1, 0)
	hit := sphere.Intersect(reMath.NewVec3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	if hit.T >= 0 {
		t.Errorf("expected a miss, got t=%v", hit.T)
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := NewTriangle(
		reMath.NewVec3(-1, -1, 0),
		reMath.NewVec3(1, -1, 0),
		reMath.NewVec3(0, 1, 0),
		0,
	)
	hit := tri.Intersect(reMath.NewVec3(0, 0, 5), reMath.NewVec3(0, 0, -1))
	if hit.T < 0 {
		t.Fatal("expected the ray to hit the triangle")
	}
}

func TestAABBSphereBounds(t *testing.T) {
	sphere := NewSphere(reMath.NewVec3(1, 2, 3), 2, 0)
	box := sphere.AABB()
	if box.Min.X != -1 || box.Max.X != 3 {
		t.Errorf("unexpected x bounds: %v %v", box.Min.X, box.Max.X)
	}
}
