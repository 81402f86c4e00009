package spectrum

import "testing"

func TestFourierEmptyIsIdentity(t *testing.T) {
	var f Fourier
	if !f.Empty() {
		t.Fatal("zero-value Fourier should be empty")
	}
	if f.Evaluate(314) != 314 {
		t.Errorf("empty Fourier should act as identity, got %v", f.Evaluate(314))
	}
}

func TestFourierOutOfRangeIsZero(t *testing.T) {
	f := FitSamples([]float64{1, 1, 1, 1}, 400, 500)
	if f.Evaluate(399) != 0 {
		t.Errorf("expected 0 below range, got %v", f.Evaluate(399))
	}
	if f.Evaluate(501) != 0 {
		t.Errorf("expected 0 above range, got %v", f.Evaluate(501))
	}
}

func TestFourierConstantRoundTrip(t *testing.T) {
	s := New(0.5)
	f := FromSpectrum(s)
	round := f.Spectrum()
	for i := 0; i < NSamples; i++ {
		if diff := round[i] - 0.5; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("bucket %d: expected 0.5, got %v", i, round[i])
		}
	}
}

func TestSpectrumTranslateClampsOutOfRange(t *testing.T) {
	// A Fourier that always evaluates past LambdaEnd should bin everything
	// into the last bucket rather than dropping it.
	shift := Fourier{Start: LambdaStart, End: LambdaEnd, A0: LambdaEnd + 1000}
	s := New(1)
	r := s.Translate(shift)
	if r[NSamples-1] != NSamples {
		t.Errorf("expected all mass in last bucket, got %v", r[NSamples-1])
	}
}
