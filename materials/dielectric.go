package materials

import (
	"math"
	"math/rand"

	reMath "crystals/math"
	"crystals/spectrum"
)

const (
	densityScale  = 1.25
	noiseThreshold = 0.22
	volumeSteps   = 32
)

// sampleDielectric implements both the non-diffractive (hero-wavelength,
// single sample) and diffractive (one sample per bin) dielectric models.
func (m *Material) sampleDielectric(p, n, d2c, d2r reMath.Vec3, medium Medium, currentMaterialID int, rng *rand.Rand) []Sample {
	insideThis := medium.MaterialID == currentMaterialID

	if !m.Diffract {
		bin := medium.Wavelength
		pdfScale := float32(1)
		if bin >= spectrum.NSamples {
			bin = rng.Intn(spectrum.NSamples)
			pdfScale = 1.0 / spectrum.NSamples
		}
		s, reflected := m.sampleDielectricBin(p, n, d2c, d2r, medium, insideThis, bin, rng)
		s.Colour = spectrum.New(float64(s.PDF)).Scale(colourScalar(m, insideThis, reflected, medium, p, bin))
		if pdfScale < 1 {
			// The path collapses to the one bin picked uniformly: keep only
			// that bin and divide by its selection probability 1/N.
			s.Colour = spectrum.Isolate(s.Colour, bin).Scale(1 / float64(pdfScale))
		}
		s.PDF *= pdfScale
		return []Sample{s}
	}

	// Diffractive: emit one sample per bin, or exactly the already
	// collapsed bin if the incoming medium selected one. Implemented as
	// a branch over the bin range rather than mutating a loop variable.
	lo, hi := 0, spectrum.NSamples
	if medium.Wavelength < spectrum.NSamples {
		lo, hi = medium.Wavelength, medium.Wavelength+1
	}

	samples := make([]Sample, 0, hi-lo)
	for bin := lo; bin < hi; bin++ {
		s, reflected := m.sampleDielectricBin(p, n, d2c, d2r, medium, insideThis, bin, rng)
		scalar := colourScalar(m, insideThis, reflected, medium, p, bin) * float64(s.PDF)
		s.Colour = spectrum.Isolate(spectrum.New(scalar), bin)
		samples = append(samples, s)
	}
	return samples
}

// sampleDielectricBin decides reflect vs refract for a single wavelength
// bin and returns everything but the final colour spectrum, plus whether
// the chosen direction is a reflection (as opposed to a refraction) so
// the caller can pick the right colourScalar factor.
func (m *Material) sampleDielectricBin(p, n, d2c, d2r reMath.Vec3, medium Medium, insideThis bool, bin int, rng *rand.Rand) (Sample, bool) {
	wavelength := spectrum.Wavelength(bin)
	ior2 := float32(m.IOR.Evaluate(wavelength))

	var etaI, etaT float32
	if insideThis {
		etaI, etaT = ior2, 1.0
	} else {
		etaI, etaT = 1.0, ior2
	}

	cosI := n.Dot(d2c)
	r := Fresnel(cosI, etaI, etaT)

	// Dielectric interactions are specular: the outgoing direction is a
	// fixed function of the incoming one, not a continuous pdf over the
	// hemisphere, so every sample here is a delta sample.
	u := float32(rng.Float64())
	if u > r {
		incident := d2c.Negate()
		refracted, ok := incident.Refract(n, etaI/etaT)
		if !ok {
			// Total internal reflection despite the Fresnel estimate
			// disagreeing at grazing angles; fall back to reflection.
			return Sample{Incoming: d2r.Negate(), PDF: r, Delta: true, Wavelength: bin, IOR: ior2}, true
		}
		return Sample{Incoming: refracted, PDF: 1 - r, Delta: true, Wavelength: bin, IOR: ior2}, false
	}
	return Sample{Incoming: d2r.Negate(), PDF: r, Delta: true, Wavelength: bin, IOR: ior2}, true
}

// colourScalar computes the material-tint * transmittance factor shared
// by both dielectric branches. The source applies absorb on refraction
// and on an outside reflection, and leaves the tint at 1 only for a
// reflection while travelling inside the material; Beer-Lambert
// transmission only applies while travelling inside this material.
func colourScalar(m *Material, insideThis, reflected bool, medium Medium, p reMath.Vec3, bin int) float64 {
	base := 1.0
	if !(reflected && insideThis) {
		base = m.Absorb.Evaluate(spectrum.Wavelength(bin))
	}
	transmission := 1.0
	if insideThis {
		dist := float64(p.Sub(medium.Previous).Length())
		tau := m.Transmission.Evaluate(spectrum.Wavelength(bin))
		transmission = math.Exp(-dist * tau)
	}
	return base * transmission
}

// sampleVolumetric raymarches from medium.Previous to p through a
// tileable Perlin-noise fog, returning a single delta sample that
// continues straight through the medium.
func (m *Material) sampleVolumetric(p, n, d2c reMath.Vec3, medium Medium) []Sample {
	segment := p.Sub(medium.Previous)
	length := segment.Length()
	step := segment.Mul(1.0 / volumeSteps)
	stepLen := length / volumeSteps

	var tau float32
	pos := medium.Previous
	for i := 0; i < volumeSteps; i++ {
		pos = pos.Add(step)
		density := PerlinNoise(pos)
		if density < noiseThreshold {
			density = 0
		} else {
			density = (density - 0.5) * 2
		}
		tau += density * densityScale * stepLen
	}
	transmittance := float32(math.Exp(float64(-tau)))

	fog := m.Absorb.Spectrum()
	colour := fog.Scale(float64(1 - transmittance)).Add(spectrum.New(float64(transmittance)))

	return []Sample{{
		Incoming:     d2c.Negate(),
		PDF:          1,
		Colour:       colour,
		Delta:        true,
		Wavelength:   medium.Wavelength,
		IOR:          medium.IOR,
		Transmission: transmittance,
	}}
}
