package materials

import "math"

// Fresnel computes the unpolarized dielectric reflectance for a ray
// travelling through a medium of refractive index etaI hitting a
// boundary with a medium of refractive index etaT, with cosI the cosine
// of the angle of incidence (non-negative, measured from the normal).
// Returns 1 on total internal reflection.
func Fresnel(cosI, etaI, etaT float32) float32 {
	if cosI < 0 {
		cosI = -cosI
	}
	sinT := (etaI / etaT) * float32(math.Sqrt(float64(maxf32(0, 1-cosI*cosI))))
	if sinT >= 1 {
		return 1
	}
	cosT := float32(math.Sqrt(float64(maxf32(0, 1-sinT*sinT))))

	rs := (etaT*cosI - etaI*cosT) / (etaT*cosI + etaI*cosT)
	rp := (etaI*cosI - etaT*cosT) / (etaI*cosI + etaT*cosT)
	return (rs*rs + rp*rp) / 2
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
