package scene

import (
	reMath "crystals/math"
	"crystals/spectrum"
)

// LightKind classifies a Light by the shape of its Direction/Penumbra/
// Angle fields rather than an explicit tag, mirroring the scene-file
// format: a zero Direction is a point light, a non-zero Direction with
// no penumbra/angle is directional, anything else is a spot.
type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
)

// Light is a single emitter in the scene. Wvec/Hvec are non-zero only
// for area lights (the "la" scene directive), describing the quad's
// half-width and half-height vectors for grid sampling.
type Light struct {
	Position    reMath.Vec3
	Colour      spectrum.Fourier
	Attenuation float32
	Direction   reMath.Vec3
	Penumbra    float32
	Angle       float32

	Wvec, Hvec reMath.Vec3
}

// Kind classifies the light per the Direction/Penumbra/Angle convention.
func (l Light) Kind() LightKind {
	if l.Direction == (reMath.Vec3{}) {
		return LightPoint
	}
	if l.Penumbra == 0 && l.Angle == 0 {
		return LightDirectional
	}
	return LightSpot
}

// IsArea reports whether the light carries a sampling quad.
func (l Light) IsArea() bool {
	return l.Wvec != (reMath.Vec3{}) || l.Hvec != (reMath.Vec3{})
}

// areaGridSize is the per-axis sample count used when integrating an
// area light's quad.
const areaGridSize = 3

// SamplePoints returns a fixed grid of world-space points across the
// light's quad for area-light integration. For a non-area light it
// returns just the light's position.
func (l Light) SamplePoints() []reMath.Vec3 {
	if !l.IsArea() {
		return []reMath.Vec3{l.Position}
	}
	points := make([]reMath.Vec3, 0, areaGridSize*areaGridSize)
	for i := 0; i < areaGridSize; i++ {
		for j := 0; j < areaGridSize; j++ {
			u := (float32(i)+0.5)/areaGridSize*2 - 1
			v := (float32(j)+0.5)/areaGridSize*2 - 1
			points = append(points, l.Position.Add(l.Wvec.Mul(u)).Add(l.Hvec.Mul(v)))
		}
	}
	return points
}
