package materials

import (
	"math"

	reMath "crystals/math"
)

// noisePeriod is the lattice period used by PerlinNoise, matching the
// tileable fog volume used by the volumetric integrator.
const noisePeriod = 7

var noisePerm [512]int

func init() {
	base := [256]int{}
	for i := range base {
		base[i] = i
	}
	// Fixed deterministic shuffle so every process sees the same lattice;
	// the table only needs to be decorrelated, not cryptographically random.
	seed := uint32(2166136261)
	for i := 255; i > 0; i-- {
		seed = seed*16777619 + 2654435761
		j := int(seed) % (i + 1)
		if j < 0 {
			j += i + 1
		}
		base[i], base[j] = base[j], base[i]
	}
	for i := 0; i < 512; i++ {
		noisePerm[i] = base[i%256]
	}
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}

func gradient(hash int, x, y, z float32) float32 {
	h := hash & 15
	var u float32
	if h < 8 {
		u = x
	} else {
		u = y
	}
	var v float32
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	var ru, rv float32
	if h&1 == 0 {
		ru = u
	} else {
		ru = -u
	}
	if h&2 == 0 {
		rv = v
	} else {
		rv = -v
	}
	return ru + rv
}

// PerlinNoise samples tileable 3-D gradient noise at p, periodic with
// period noisePeriod on each axis, remapped to [0,1].
func PerlinNoise(p reMath.Vec3) float32 {
	px := float32(math.Mod(float64(p.X), float64(noisePeriod)))
	py := float32(math.Mod(float64(p.Y), float64(noisePeriod)))
	pz := float32(math.Mod(float64(p.Z), float64(noisePeriod)))
	if px < 0 {
		px += noisePeriod
	}
	if py < 0 {
		py += noisePeriod
	}
	if pz < 0 {
		pz += noisePeriod
	}

	xi := int(px) & 255
	yi := int(py) & 255
	zi := int(pz) & 255
	xf := px - float32(int(px))
	yf := py - float32(int(py))
	zf := pz - float32(int(pz))

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	a := noisePerm[xi] + yi
	aa := noisePerm[a&511] + zi
	ab := noisePerm[(a+1)&511] + zi
	b := noisePerm[(xi+1)&511] + yi
	ba := noisePerm[b&511] + zi
	bb := noisePerm[(b+1)&511] + zi

	x1 := lerp(u, gradient(noisePerm[aa&511], xf, yf, zf), gradient(noisePerm[ba&511], xf-1, yf, zf))
	x2 := lerp(u, gradient(noisePerm[ab&511], xf, yf-1, zf), gradient(noisePerm[bb&511], xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x3 := lerp(u, gradient(noisePerm[(aa+1)&511], xf, yf, zf-1), gradient(noisePerm[(ba+1)&511], xf-1, yf, zf-1))
	x4 := lerp(u, gradient(noisePerm[(ab+1)&511], xf, yf-1, zf-1), gradient(noisePerm[(bb+1)&511], xf-1, yf-1, zf-1))
	y2 := lerp(v, x3, x4)

	n := lerp(w, y1, y2)
	return (n + 1) / 2
}
