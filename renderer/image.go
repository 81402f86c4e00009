// Package renderer implements the parallel render driver, the pixel
// and auxiliary-buffer image containers, and PNG/binary output.
package renderer

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"time"
)

// RGB is a single linear-light colour triple.
type RGB struct {
	R, G, B float64
}

// Image is the render target: a flat W*H buffer of linear RGB plus the
// timing fields the render driver records.
type Image struct {
	Colours []RGB
	W, H    int

	Start   time.Time
	Prepare time.Duration
	Post    time.Duration
	Total   time.Duration
}

func NewImage(w, h int) *Image {
	return &Image{Colours: make([]RGB, w*h), W: w, H: h}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Floor(clamp01(v) * 255))
}

// Save writes the image as an 8-bit sRGB PNG to path.
func (img *Image) Save(path string) error {
	out := image.NewRGBA(image.Rect(0, 0, img.W, img.H))
	for i, c := range img.Colours {
		x := i % img.W
		y := i / img.W
		out.SetRGBA(x, y, color.RGBA{
			R: toByte(c.R),
			G: toByte(c.G),
			B: toByte(c.B),
			A: 255,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}
