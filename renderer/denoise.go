package renderer

import (
	"encoding/binary"
	"math"
	"os"

	reMath "crystals/math"
	"crystals/scene"
)

// Denoise filter bandwidths, carried over from the original implementation's
// cross-bilateral pass.
const (
	sigmaColor  = 0.2
	sigmaNormal = 256.0
	sigmaDepth  = 0.1
)

// DenoiseBuffer collects the auxiliary geometry buffers (world-space
// normal, world-space position and surface albedo) a bilateral denoiser
// needs alongside the noisy radiance image.
type DenoiseBuffer struct {
	Normals   []reMath.Vec3
	Positions []reMath.Vec3
	Albedo    []RGB
	W, H      int
}

func NewDenoiseBuffer(w, h int) *DenoiseBuffer {
	return &DenoiseBuffer{
		Normals:   make([]reMath.Vec3, w*h),
		Positions: make([]reMath.Vec3, w*h),
		Albedo:    make([]RGB, w*h),
		W:         w,
		H:         h,
	}
}

// EvaluateAt fills index idx of the buffer from the scene's primary-ray
// hit at pixel (x, y), matching the camera's un-jittered centre sample.
func (db *DenoiseBuffer) EvaluateAt(s *scene.Scene, x, y int, idx int) {
	ray := s.Camera.GenerateRay(x, y, 0.5, 0.5)
	hit := s.BVH.Intersect(ray.Origin, ray.Dir)
	if hit.T < 0 {
		return
	}

	mat := s.ResolveMaterial(hit.MaterialID)
	db.Normals[idx] = hit.N
	db.Positions[idx] = hit.P
	r, g, b := mat.Diffuse.Spectrum().RGB()
	db.Albedo[idx] = RGB{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// Save writes the three buffers as sibling binary float32 files next to
// the primary output image: <path>.normals, <path>.positions and
// <path>.albedo.
func (db *DenoiseBuffer) Save(path string) error {
	if err := writeVec3File(path+".normals", db.Normals); err != nil {
		return err
	}
	if err := writeVec3File(path+".positions", db.Positions); err != nil {
		return err
	}
	return writeRGBFile(path+".albedo", db.Albedo)
}

func writeVec3File(path string, vs []reMath.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 12)
	for _, v := range vs {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Z))
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writeRGBFile(path string, cs []RGB) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 12)
	for _, c := range cs {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(c.R)))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(c.G)))
		binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(c.B)))
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Bilateral applies sigmaColor/sigmaNormal/sigmaDepth-weighted cross-
// bilateral filtering over img using db as the guide buffers, running
// passes rounds of the filter.
func Bilateral(img *Image, db *DenoiseBuffer, passes int) *Image {
	out := NewImage(img.W, img.H)
	copy(out.Colours, img.Colours)

	const radius = 2

	for pass := 0; pass < passes; pass++ {
		next := make([]RGB, len(out.Colours))
		for y := 0; y < img.H; y++ {
			for x := 0; x < img.W; x++ {
				i := y*img.W + x
				centre := out.Colours[i]
				n0 := db.Normals[i]
				p0 := db.Positions[i]

				var sum RGB
				var wsum float64

				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || nx >= img.W || ny < 0 || ny >= img.H {
							continue
						}
						j := ny*img.W + nx
						c := out.Colours[j]

						colorDist := sq(c.R-centre.R) + sq(c.G-centre.G) + sq(c.B-centre.B)
						normalDist := float64(1 - n0.Dot(db.Normals[j]))
						depthDist := float64(p0.Sub(db.Positions[j]).Length())

						w := math.Exp(-colorDist/(2*sigmaColor*sigmaColor)) *
							math.Exp(-normalDist*sigmaNormal) *
							math.Exp(-depthDist*depthDist/(2*sigmaDepth*sigmaDepth))

						sum.R += c.R * w
						sum.G += c.G * w
						sum.B += c.B * w
						wsum += w
					}
				}

				if wsum > 0 {
					next[i] = RGB{R: sum.R / wsum, G: sum.G / wsum, B: sum.B / wsum}
				} else {
					next[i] = centre
				}
			}
		}
		out.Colours = next
	}

	return out
}

func sq(v float64) float64 { return v * v }
