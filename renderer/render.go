package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"crystals/config"
	"crystals/scene"
)

// groupSize is the number of pixels a worker claims from the shared
// counter per turn, trading contention against load-balance granularity.
const groupSize = 100

// Render drives a full-frame parallel render of s at width w and height
// h. It returns the image (bilateral-filtered when config.Denoise is
// set) and the auxiliary DenoiseBuffer, which is nil when config.Denoise
// is unset. Progress is reported to progress, which may be nil; each
// worker calls it after finishing a pixel group.
func Render(s *scene.Scene, w, h int, progress func(done, total int)) (*Image, *DenoiseBuffer) {
	img := NewImage(w, h)
	img.Start = time.Now()

	prepStart := time.Now()
	s.BuildBVH()
	img.Prepare = time.Since(prepStart)

	cfg := config.Get()

	var db *DenoiseBuffer
	if cfg.Denoise {
		db = NewDenoiseBuffer(w, h)
	}

	total := w * h
	remaining := total

	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	nextGroup := func() (start, count int, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		if remaining <= 0 {
			return 0, 0, false
		}
		n := groupSize
		if n > remaining {
			n = remaining
		}
		remaining -= n
		return remaining, n, true
	}

	reportDone := 0
	reportProgress := func(n int) {
		mu.Lock()
		reportDone += n
		done := reportDone
		mu.Unlock()
		if progress != nil {
			progress(done, total)
		}
	}

	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		seed := int64(uint64(wkr)*0x9E3779B97F4A7C15 + 1)
		go func(seed int64) {
			defer wg.Done()
			integrator := scene.NewIntegrator(s, seed)

			for {
				start, count, ok := nextGroup()
				if !ok {
					return
				}
				for i := start; i < start+count; i++ {
					x := i % w
					y := i / w
					spectral := integrator.Shade(x, y)
					r, g, b := spectral.RGB()
					img.Colours[i] = RGB{R: r, G: g, B: b}
					if db != nil {
						db.EvaluateAt(s, x, y, i)
					}
				}
				reportProgress(count)
			}
		}(seed)
	}

	wg.Wait()

	postStart := time.Now()
	var out *Image = img
	if db != nil && cfg.Denoise {
		out = Bilateral(img, db, cfg.DenoisePasses)
	}
	img.Post = time.Since(postStart)
	img.Total = time.Since(img.Start)
	out.Start, out.Prepare, out.Post, out.Total = img.Start, img.Prepare, img.Post, img.Total

	return out, db
}

// PrintProgress is a simple terminal progress callback suitable for
// passing to Render from a CLI.
func PrintProgress(done, total int) {
	pct := float64(done) / float64(total) * 100
	fmt.Printf("\rrendering... %6.2f%% (%d/%d)", pct, done, total)
	if done >= total {
		fmt.Println()
	}
}
