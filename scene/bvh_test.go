package scene

import (
	"math/rand"
	"testing"

	reMath "crystals/math"

	"github.com/stretchr/testify/assert"
)

func bruteForceIntersect(prims []Primitive, origin, dir reMath.Vec3) Hit {
	best := NoHit
	for _, p := range prims {
		h := p.Intersect(origin, dir)
		if h.T >= 0 && (best.T < 0 || h.T < best.T) {
			best = h
		}
	}
	return best
}

func TestBVHMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	prims := make([]Primitive, 0, 200)
	for i := 0; i < 200; i++ {
		centre := reMath.NewVec3(
			float32(rng.Float64()*20-10),
			float32(rng.Float64()*20-10),
			float32(rng.Float64()*20-10),
		)
		prims = append(prims, NewTriangle(
			centre,
			centre.Add(reMath.NewVec3(1, 0, 0)),
			centre.Add(reMath.NewVec3(0, 1, 0)),
			0,
		))
	}

	bvh := BuildBVH(prims)

	for i := 0; i < 1000; i++ {
		origin := reMath.NewVec3(
			float32(rng.Float64()*40-20),
			float32(rng.Float64()*40-20),
			float32(rng.Float64()*40-20),
		)
		dir := reMath.NewVec3(
			float32(rng.Float64()*2-1),
			float32(rng.Float64()*2-1),
			float32(rng.Float64()*2-1),
		).Normalize()

		want := bruteForceIntersect(prims, origin, dir)
		got := bvh.Intersect(origin, dir)

		if want.T < 0 {
			assert.Less(t, got.T, float32(0), "brute force missed but BVH hit")
			continue
		}
		if !assert.GreaterOrEqual(t, got.T, float32(0), "BVH missed but brute force hit") {
			continue
		}
		assert.InDelta(t, want.T, got.T, 1e-3)
	}
}

func TestBVHEmptyScene(t *testing.T) {
	bvh := BuildBVH(nil)
	hit := bvh.Intersect(reMath.NewVec3(0, 0, 0), reMath.NewVec3(0, 0, -1))
	if hit.T >= 0 {
		t.Error("empty BVH should never report a hit")
	}
}

func TestBVHNodeContainment(t *testing.T) {
	prims := []Primitive{
		NewSphere(reMath.NewVec3(0, 0, 0), 1, 0),
		NewSphere(reMath.NewVec3(5, 0, 0), 1, 0),
		NewSphere(reMath.NewVec3(-5, 3, 1), 1, 0),
	}
	bvh := BuildBVH(prims)

	var check func(idx int) AABB
	check = func(idx int) AABB {
		node := bvh.Nodes[idx]
		box := node.Box
		if node.Config == BVHLeft || node.Config == BVHBoth {
			childBox := check(node.Left)
			assertContains(t, box, childBox)
		}
		if node.Config == BVHRight || node.Config == BVHBoth {
			childBox := check(node.Right)
			assertContains(t, box, childBox)
		}
		return box
	}
	check(0)
}

func assertContains(t *testing.T, outer, inner AABB) {
	t.Helper()
	if inner.Min.X < outer.Min.X-1e-4 || inner.Min.Y < outer.Min.Y-1e-4 || inner.Min.Z < outer.Min.Z-1e-4 {
		t.Errorf("child box min %v not contained in parent min %v", inner.Min, outer.Min)
	}
	if inner.Max.X > outer.Max.X+1e-4 || inner.Max.Y > outer.Max.Y+1e-4 || inner.Max.Z > outer.Max.Z+1e-4 {
		t.Errorf("child box max %v not contained in parent max %v", inner.Max, outer.Max)
	}
}
