package scene

import "testing"

func TestHaltonDeterministic(t *testing.T) {
	a := NewHalton(3, 7).Generate(5)
	b := NewHalton(3, 7).Generate(5)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("sample %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestHaltonInUnitSquare(t *testing.T) {
	samples := NewHalton(11, 23).Generate(64)
	for _, s := range samples {
		if s[0] < 0 || s[0] >= 1 || s[1] < 0 || s[1] >= 1 {
			t.Errorf("sample out of [0,1)^2: %v", s)
		}
	}
}

func TestHaltonDiffersByPixel(t *testing.T) {
	a := NewHalton(1, 1).Generate(1)
	b := NewHalton(2, 9).Generate(1)
	if a[0] == b[0] {
		t.Error("expected different pixels to draw different sub-sequences")
	}
}
