package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectrumArithmeticElementwise(t *testing.T) {
	a := New(2)
	b := New(3)

	sum := a.Add(b)
	for i := 0; i < NSamples; i++ {
		assert.Equal(t, a[i]+b[i], sum[i], "bucket %d", i)
	}

	prod := New(4).Mul(New(5))
	assert.Equal(t, New(20), prod)
}

func TestSpectrumBlack(t *testing.T) {
	assert.True(t, Zero().Black())
	assert.False(t, New(0.001).Black())
}

func TestSpectrumIsolate(t *testing.T) {
	s := New(7)
	iso := Isolate(s, 3)
	for i := 0; i < NSamples; i++ {
		if i == 3 {
			assert.Equal(t, 7.0, iso[i])
		} else {
			assert.Equal(t, 0.0, iso[i])
		}
	}
}

func TestSpectrumMaxAverage(t *testing.T) {
	s := FromSamples([]float64{150, 450}, []float64{1, 9})
	if s.Max() != 9 {
		t.Errorf("Max: expected 9, got %v", s.Max())
	}
	if s.Average() != 1 {
		t.Errorf("Average: expected 1, got %v", s.Average())
	}
}

func TestCIEEqualEnergyIsGray(t *testing.T) {
	s := New(1)
	r, g, b := s.RGB()
	tolerance := 1e-3
	if abs(r-g) > tolerance*r || abs(g-b) > tolerance*g {
		t.Errorf("equal-energy spectrum not gray: got (%v,%v,%v)", r, g, b)
	}
}

func TestSpectrumRGBClampsNegative(t *testing.T) {
	// An isolated lowest-wavelength bucket pushed far negative must clamp
	// in linear RGB rather than propagate negative channels.
	s := Isolate(New(-1000), 0)
	r, g, b := s.RGB()
	assert.GreaterOrEqual(t, r, 0.0)
	assert.GreaterOrEqual(t, g, 0.0)
	assert.GreaterOrEqual(t, b, 0.0)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
