package spectrum

import "math"

// MaxHarmonics bounds the number of (a_k, b_k) pairs kept by a fitted
// Fourier series.
const MaxHarmonics = NSamples / 2

// Fourier is a truncated real Fourier series over a closed interval
// [Start, End]: f(t) = A0 + sum_k A[k]*cos(k*omega*x) + B[k]*sin(k*omega*x),
// omega = 2*pi/(End-Start), x = t-Start. An empty Fourier has Start==End
// and acts as "unset": Evaluate becomes the identity function.
type Fourier struct {
	Start, End float64
	A0         float64
	A, B       []float64
}

// Empty reports whether f carries no data.
func (f Fourier) Empty() bool {
	return f.Start == f.End
}

// FitSamples builds a Fourier series from equally-spaced samples over
// [s, e]. a0 is the sample mean; ak/bk are the discrete-cosine/sine
// projections truncated to MaxHarmonics terms.
func FitSamples(samples []float64, s, e float64) Fourier {
	n := len(samples)
	if n == 0 {
		return Fourier{Start: s, End: e}
	}
	var a0 float64
	for _, v := range samples {
		a0 += v
	}
	a0 /= float64(n)

	k := n / 2
	if k > MaxHarmonics {
		k = MaxHarmonics
	}
	a := make([]float64, k)
	b := make([]float64, k)
	for j := 1; j <= k; j++ {
		var ak, bk float64
		for i, v := range samples {
			theta := 2 * math.Pi * float64(j) * float64(i) / float64(n)
			ak += v * math.Cos(theta)
			bk += v * math.Sin(theta)
		}
		a[j-1] = (2.0 / float64(n)) * ak
		b[j-1] = (2.0 / float64(n)) * bk
	}
	return Fourier{Start: s, End: e, A0: a0, A: a, B: b}
}

// FromSpectrum fits a Fourier series using the spectrum's bucket centres
// as equally-spaced samples over [LambdaStart, LambdaEnd].
func FromSpectrum(s Spectrum) Fourier {
	samples := make([]float64, NSamples)
	copy(samples, s[:])
	return FitSamples(samples, LambdaStart, LambdaEnd)
}

// Evaluate samples f at t. An empty Fourier returns t unchanged (the
// "unset" identity); a t outside [Start, End] returns 0.
func (f Fourier) Evaluate(t float64) float64 {
	if f.Empty() {
		return t
	}
	if t < f.Start || t > f.End {
		return 0
	}
	omega := 2 * math.Pi / (f.End - f.Start)
	x := t - f.Start
	v := f.A0
	for k := range f.A {
		kw := float64(k+1) * omega
		v += f.A[k]*math.Cos(kw*x) + f.B[k]*math.Sin(kw*x)
	}
	return v
}

// Spectrum samples f at every bucket centre wavelength.
func (f Fourier) Spectrum() Spectrum {
	var s Spectrum
	for i := range s {
		s[i] = f.Evaluate(Wavelength(i))
	}
	return s
}

// AddFourier, SubFourier, MulFourier and DivFourier apply elementwise
// arithmetic between s and f evaluated at each bucket's wavelength.
func (s Spectrum) AddFourier(f Fourier) Spectrum { return s.Add(f.Spectrum()) }
func (s Spectrum) SubFourier(f Fourier) Spectrum { return s.Sub(f.Spectrum()) }
func (s Spectrum) MulFourier(f Fourier) Spectrum { return s.Mul(f.Spectrum()) }
func (s Spectrum) DivFourier(f Fourier) Spectrum { return s.Div(f.Spectrum()) }

// Translate remaps each sample of s into the bucket whose index matches
// f evaluated at that sample's own wavelength, i.e. a cheap wavelength
// shift via histogram remap. Out-of-range targets clamp to the nearest
// valid bucket.
func (s Spectrum) Translate(f Fourier) Spectrum {
	var r Spectrum
	for i, v := range s {
		target := f.Evaluate(Wavelength(i))
		j := bin(target)
		r[j] += v
	}
	return r
}
