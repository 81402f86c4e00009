// Package materials implements the tagged-variant Material model: the
// Fourier-curve surface description, the Medium a ray currently travels
// through, and the sampling routines that turn a hit into one or more
// outgoing light-transport samples.
package materials

import (
	"math"
	"math/rand"

	reMath "crystals/math"
	"crystals/spectrum"
)

// MaterialType tags which BSDF/volume model a Material evaluates.
type MaterialType int

const (
	Lambertian MaterialType = iota
	Dielectric
	Volumetric
)

// Material is a record of Fourier curves plus the scalar and boolean
// knobs that select how Sample behaves.
type Material struct {
	Name string
	Type MaterialType

	Ambient      spectrum.Fourier
	Diffuse      spectrum.Fourier
	Specular     spectrum.Fourier
	Absorb       spectrum.Fourier
	Emission     spectrum.Fourier
	Transmission spectrum.Fourier
	IOR          spectrum.Fourier
	Convert      spectrum.Fourier

	Shiny    float32
	Diffract bool
}

// NewMaterial returns a Lambertian material with every curve empty.
func NewMaterial(name string) *Material {
	return &Material{Name: name, Type: Lambertian, Shiny: 1}
}

// Emissive reports whether the material radiates light on its own.
func (m *Material) Emissive() bool {
	return !m.Emission.Empty()
}

func constantFourier(v float64) spectrum.Fourier {
	return spectrum.Fourier{Start: spectrum.LambdaStart, End: spectrum.LambdaEnd, A0: v}
}

// Default, Air and Fog are the three process-wide material singletons.
// They are built once at package init and must never be mutated.
var (
	Default *Material
	Air     *Material
	Fog     *Material
)

func init() {
	Default = &Material{
		Name:     "default",
		Type:     Lambertian,
		Absorb:   constantFourier(0.8),
		Diffuse:  constantFourier(0.8),
		Specular: constantFourier(0.2),
		Shiny:    32,
	}

	Air = &Material{
		Name: "air",
		Type: Lambertian,
		IOR:  constantFourier(1.0),
	}

	Fog = &Material{
		Name:     "fog",
		Type:     Volumetric,
		Absorb:   constantFourier(0.9),
		IOR:      constantFourier(1.0),
		Diffract: false,
	}
}

// Medium is propagated along every recursive ray. MaterialID is an index
// into Scene.Materials, or one of the sentinel IDs resolved by the
// owning Scene (Default/Air/Fog), kept as an index rather than a
// pointer so it stays valid across worker threads.
type Medium struct {
	IOR        float32
	Bounces    int
	MaterialID int
	Throughput spectrum.Spectrum
	Wavelength int
	Previous   reMath.Vec3
}

// Sample is one outgoing light-transport sample produced by
// Material.Sample.
type Sample struct {
	Incoming     reMath.Vec3
	PDF          float32
	Colour       spectrum.Spectrum
	Delta        bool
	Wavelength   int
	IOR          float32
	Transmission float32
}

// onb builds an orthonormal basis (u, v, n) around normal n.
func onb(n reMath.Vec3) (u, v reMath.Vec3) {
	a := reMath.NewVec3(1, 0, 0)
	if absf(n.X) > 0.9 {
		a = reMath.NewVec3(0, 1, 0)
	}
	v = n.Cross(a).Normalize()
	u = n.Cross(v).Normalize()
	return
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func localToWorld(local reMath.Vec3, u, v, n reMath.Vec3) reMath.Vec3 {
	return u.Mul(local.X).Add(v.Mul(local.Y)).Add(n.Mul(local.Z))
}

func cosineHemisphere(n reMath.Vec3, rng *rand.Rand) (dir reMath.Vec3, pdf float32) {
	u, v := onb(n)
	r1 := rng.Float64()
	r2 := rng.Float64()
	phi := 2 * math.Pi * r1
	r := math.Sqrt(r2)
	x := float32(r * math.Cos(phi))
	y := float32(r * math.Sin(phi))
	z := float32(math.Sqrt(math.Max(0, 1-r2)))
	dir = localToWorld(reMath.NewVec3(x, y, z), u, v, n)
	pdf = z / math.Pi
	return
}

// Sample evaluates the material's BSDF/volume model at a surface point
// p with geometric normal n, incoming-to-camera direction d2c and its
// mirror reflection d2r, given the medium the ray currently travels
// through and the material index of the hit surface (so a dielectric
// can tell whether the path is already travelling inside itself). It
// returns one sample for Lambertian/Volumetric materials, one sample for
// a non-diffractive Dielectric, or up to NSamples samples (one per
// wavelength bin) for a diffractive Dielectric. rng supplies this
// worker's private random source.
func (m *Material) Sample(p, n, d2c, d2r reMath.Vec3, medium Medium, currentMaterialID int, rng *rand.Rand) []Sample {
	switch m.Type {
	case Lambertian:
		dir, pdf := cosineHemisphere(n, rng)
		return []Sample{{
			Incoming:   dir,
			PDF:        pdf,
			Colour:     m.Absorb.Spectrum().Scale(1.0 / math.Pi),
			Delta:      false,
			Wavelength: medium.Wavelength,
			IOR:        medium.IOR,
		}}
	case Dielectric:
		return m.sampleDielectric(p, n, d2c, d2r, medium, currentMaterialID, rng)
	case Volumetric:
		return m.sampleVolumetric(p, n, d2c, medium)
	default:
		return nil
	}
}
