package scene

import (
	"math"
	"math/rand"

	"crystals/config"
	reMath "crystals/math"
	"crystals/materials"
	"crystals/spectrum"
)

// Sentinel Medium.MaterialID values resolved by Scene.ResolveMaterial
// instead of Scene.Materials. DefaultMaterialID (-1) is shared with
// Primitive's "no material assigned" meaning.
const (
	MatSentinelAir = -2
	MatSentinelFog = -3
)

// Scene owns every piece of parsed geometry, the material table, the
// light list, the camera and the BVH built over the primitives. After
// BuildBVH runs, a Scene is read-only shared state across workers.
type Scene struct {
	FilePath   string
	Validated  bool
	Vertices   []reMath.Vec3
	NonGeos    []reMath.Vec3
	Lights     []Light
	Primitives []Primitive
	Materials  []materials.Material
	NameToID   map[string]int
	Camera     *Camera
	BVH        *BVH
}

func NewScene() *Scene {
	return &Scene{NameToID: make(map[string]int)}
}

// BuildBVH constructs the acceleration structure over s.Primitives. It
// is the one place the renderer mutates the Scene after parsing.
func (s *Scene) BuildBVH() {
	s.BVH = BuildBVH(s.Primitives)
}

// ResolveMaterial maps a Hit/Medium material index to the Material it
// names, substituting the process-wide singletons for the sentinel IDs.
func (s *Scene) ResolveMaterial(id int) *materials.Material {
	switch {
	case id == DefaultMaterialID:
		return materials.Default
	case id == MatSentinelAir:
		return materials.Air
	case id == MatSentinelFog:
		return materials.Fog
	case id >= 0 && id < len(s.Materials):
		return &s.Materials[id]
	default:
		return materials.Default
	}
}

// Integrator is a per-worker light-transport estimator: it owns no
// mutable scene state, only a private random source, so many can run
// concurrently over the same read-only Scene.
type Integrator struct {
	Scene *Scene
	RNG   *rand.Rand
}

// NewIntegrator builds an Integrator seeded independently from seed,
// satisfying the requirement that each worker thread seed its own
// generator.
func NewIntegrator(s *Scene, seed int64) *Integrator {
	return &Integrator{Scene: s, RNG: rand.New(rand.NewSource(seed))}
}

// Shade estimates the radiance arriving at pixel (x, y) by averaging
// path_samples Halton-jittered primary rays.
func (ig *Integrator) Shade(x, y int) spectrum.Spectrum {
	cfg := config.Get()
	halton := NewHalton(x, y)
	offsets := halton.Generate(cfg.PathSamples)

	accum := spectrum.Zero()
	for _, o := range offsets {
		ray := ig.Scene.Camera.GenerateRay(x, y, float32(o[0]), float32(o[1]))
		medium := materials.Medium{
			IOR:        1,
			Bounces:    0,
			MaterialID: MatSentinelAir,
			Throughput: spectrum.New(1),
			Wavelength: spectrum.NSamples,
			Previous:   ray.Origin,
		}
		accum = accum.Add(ig.shadeRay(ray, medium))
	}
	return accum.DivScalar(float64(len(offsets)))
}

// shadeRay intersects ray against the scene and dispatches to the
// path-traced or classic estimator per the global config, or resolves a
// direct-lighting-on-miss contribution when the ray leaves a
// non-ambient medium without hitting anything.
func (ig *Integrator) shadeRay(ray Ray, medium materials.Medium) spectrum.Spectrum {
	hit := ig.Scene.BVH.Intersect(ray.Origin, ray.Dir)
	cfg := config.Get()

	if hit.T < 0 {
		if cfg.PathTrace && medium.MaterialID != MatSentinelAir {
			mat := ig.Scene.ResolveMaterial(medium.MaterialID)
			if mat.Type != materials.Volumetric {
				synthetic := Hit{T: 0, P: ray.Origin, N: ray.Dir, D2C: ray.Dir.Negate(), D2R: ray.Dir, MaterialID: medium.MaterialID}
				direct := ig.directLighting(synthetic, mat)
				return direct.Mul(medium.Throughput)
			}
		}
		return spectrum.Zero()
	}

	if cfg.PathTrace {
		return ig.pathColor(hit, medium)
	}
	return ig.rayColor(hit, medium)
}

// pathColor implements the path-traced estimator: emission short-circuit,
// then a weighted, Russian-roulette-terminated recursive sum over the
// material's outgoing samples.
func (ig *Integrator) pathColor(hit Hit, medium materials.Medium) spectrum.Spectrum {
	cfg := config.Get()
	mat := ig.Scene.ResolveMaterial(hit.MaterialID)

	if mat.Emissive() {
		return medium.Throughput.Mul(mat.Emission.Spectrum())
	}

	samples := mat.Sample(hit.P, hit.N, hit.D2C, hit.D2R, medium, hit.MaterialID, ig.RNG)
	result := spectrum.Zero()

	for _, s := range samples {
		if s.PDF <= 0 || medium.Bounces >= cfg.MaxDepth {
			continue
		}

		cos := maxf(0, s.Incoming.Dot(hit.N))

		var nextT spectrum.Spectrum
		var nextMatID int
		if mat.Type == materials.Volumetric && s.Delta {
			nextT = medium.Throughput.Scale(float64(s.Transmission))
			nextMatID = medium.MaterialID
		} else {
			weight := cos / s.PDF
			if s.Delta {
				weight = 1
			}
			nextT = medium.Throughput.Mul(s.Colour).Scale(float64(weight))
			nextMatID = hit.MaterialID
		}

		if medium.Bounces > cfg.MinDepth {
			p := clampf(nextT.Max(), 0.05, 1.0)
			if ig.RNG.Float64() > p {
				continue
			}
			nextT = nextT.DivScalar(p)
		}

		nextOrigin := hit.P.Add(s.Incoming.Mul(1e-4))
		nextMedium := materials.Medium{
			IOR:        s.IOR,
			Bounces:    medium.Bounces + 1,
			MaterialID: nextMatID,
			Throughput: nextT,
			Wavelength: s.Wavelength,
			Previous:   hit.P,
		}
		result = result.Add(ig.shadeRay(Ray{Origin: nextOrigin, Dir: s.Incoming}, nextMedium))
	}

	return result.Translate(mat.Convert)
}

// rayColor implements the classic (non-path-traced) estimator: ambient
// plus direct lighting plus a dielectric reflection/refraction split.
// Throughput is applied exactly once, at the very end.
func (ig *Integrator) rayColor(hit Hit, medium materials.Medium) spectrum.Spectrum {
	cfg := config.Get()
	mat := ig.Scene.ResolveMaterial(hit.MaterialID)

	if mat.Emissive() {
		return mat.Emission.Spectrum().Mul(medium.Throughput).Translate(mat.Convert)
	}

	result := ig.directLighting(hit, mat)

	if mat.Type == materials.Dielectric && medium.Bounces < cfg.MaxDepth {
		insideThis := medium.MaterialID == hit.MaterialID
		eps := float32(1e-4)

		reflBin := medium.Wavelength
		if reflBin >= spectrum.NSamples {
			reflBin = spectrum.NSamples / 2
		}
		reflIOR := float32(mat.IOR.Evaluate(spectrum.Wavelength(reflBin)))
		etaI, etaT := dielectricEtas(insideThis, reflIOR)
		reflR := materials.Fresnel(hit.N.Dot(hit.D2C), etaI, etaT)

		// hit.D2R is d2c reflected about n, which points back into the
		// surface; negate it to get the outgoing reflection direction.
		reflectDir := hit.D2R.Negate()
		reflectOrigin := hit.P.Add(reflectDir.Mul(eps))
		reflectMedium := materials.Medium{
			IOR:        medium.IOR,
			Bounces:    medium.Bounces + 1,
			MaterialID: medium.MaterialID,
			Throughput: spectrum.New(1),
			Wavelength: medium.Wavelength,
			Previous:   hit.P,
		}
		reflRadiance := ig.shadeRay(Ray{Origin: reflectOrigin, Dir: reflectDir}, reflectMedium)
		result = result.Add(reflRadiance.Scale(float64(reflR)))

		lo, hi := 0, spectrum.NSamples
		if medium.Wavelength < spectrum.NSamples {
			lo, hi = medium.Wavelength, medium.Wavelength+1
		}
		for bin := lo; bin < hi; bin++ {
			ior2 := float32(mat.IOR.Evaluate(spectrum.Wavelength(bin)))
			eI, eT := dielectricEtas(insideThis, ior2)
			r := materials.Fresnel(hit.N.Dot(hit.D2C), eI, eT)

			incident := hit.D2C.Negate()
			refracted, ok := incident.Refract(hit.N, eI/eT)
			if !ok {
				continue
			}

			nextMatID := hit.MaterialID
			if insideThis {
				nextMatID = MatSentinelAir
			}
			refractOrigin := hit.P.Add(refracted.Mul(eps))
			refractMedium := materials.Medium{
				IOR:        eT,
				Bounces:    medium.Bounces + 1,
				MaterialID: nextMatID,
				Throughput: spectrum.New(1),
				Wavelength: bin,
				Previous:   hit.P,
			}
			refractRadiance := ig.shadeRay(Ray{Origin: refractOrigin, Dir: refracted}, refractMedium)
			result = result.Add(spectrum.Isolate(refractRadiance.Scale(float64(1-r)), bin))
		}
	}

	return result.Mul(medium.Throughput).Translate(mat.Convert)
}

func dielectricEtas(insideThis bool, ior float32) (etaI, etaT float32) {
	if insideThis {
		return ior, 1
	}
	return 1, ior
}

// directLighting sums ambient plus each light's Lambertian and Phong-
// specular contribution, shadow-ray tested, optionally grid-sampled over
// an area light's quad.
func (ig *Integrator) directLighting(hit Hit, mat *materials.Material) spectrum.Spectrum {
	result := mat.Ambient.Spectrum()

	for _, light := range ig.Scene.Lights {
		kind := light.Kind()
		if kind == LightSpot {
			// Spot lights are not implemented, matching the source's stub.
			continue
		}

		points := light.SamplePoints()
		contrib := spectrum.Zero()

		for _, lp := range points {
			var d2l reMath.Vec3
			var atten float32 = 1

			switch kind {
			case LightPoint:
				delta := lp.Sub(hit.P)
				dist := delta.Length()
				d2l = delta.Normalize()
				atten = 1.0 / (1.0 + light.Attenuation*dist*dist)
			case LightDirectional:
				d2l = light.Direction
			}

			shadowOrigin := hit.P.Add(hit.N.Mul(1e-4))
			shadowHit := ig.Scene.BVH.Intersect(shadowOrigin, d2l)
			if kind == LightPoint {
				lightDist := lp.Sub(shadowOrigin).Length()
				if shadowHit.T >= 0 && shadowHit.T < lightDist {
					continue
				}
			} else if shadowHit.T >= 0 {
				continue
			}

			ndotl := maxf(0, hit.N.Dot(d2l))
			diffuse := mat.Diffuse.Spectrum().Scale(float64(ndotl * atten))

			var spec float32
			if rv := hit.D2R.Negate().Dot(d2l); rv > 0 {
				spec = float32(math.Pow(float64(rv), float64(mat.Shiny)))
			}
			specular := mat.Specular.Spectrum().Scale(float64(spec * atten))

			contrib = contrib.Add(diffuse.Add(specular).Mul(light.Colour.Spectrum()))
		}

		if len(points) > 0 {
			contrib = contrib.DivScalar(float64(len(points)))
		}
		result = result.Add(contrib)
	}

	return result
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
