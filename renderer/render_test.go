package renderer

import (
	"testing"

	reMath "crystals/math"
	"crystals/scene"
)

func buildTestScene() *scene.Scene {
	s := scene.NewScene()
	s.Primitives = []scene.Primitive{
		scene.NewSphere(reMath.NewVec3(0, 0, -5), 1, scene.DefaultMaterialID),
	}
	s.Camera = scene.NewCamera(reMath.NewVec3(0, 0, 0), reMath.NewVec3(0, 0, -1), reMath.NewVec3(0, 1, 0), 1.0)
	s.Camera.Update(8, 8)
	return s
}

func TestRenderProducesFullImage(t *testing.T) {
	s := buildTestScene()
	img, _ := Render(s, 8, 8, nil)

	if len(img.Colours) != 64 {
		t.Fatalf("expected 64 pixels, got %d", len(img.Colours))
	}
	if img.Total <= 0 {
		t.Error("expected a nonzero total render duration")
	}
}

func TestRenderReportsFullProgress(t *testing.T) {
	s := buildTestScene()
	var lastDone, lastTotal int
	Render(s, 4, 4, func(done, total int) {
		lastDone, lastTotal = done, total
	})
	if lastDone != lastTotal {
		t.Errorf("expected progress to finish at total, got %d/%d", lastDone, lastTotal)
	}
}
