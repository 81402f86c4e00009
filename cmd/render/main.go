// Command render is the CLI entry point: it parses a scene file,
// builds the BVH, runs the parallel render driver, and writes the
// result (and, when configured, the denoiser's auxiliary buffers) to
// disk.
package main

import (
	"os"
	"strconv"

	"crystals/config"
	"crystals/logx"
	"crystals/parser"
	"crystals/renderer"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run implements the program input_path output_path samples width
// height contract: all five positional arguments are required, and a
// missing or malformed one is fatal (exit 1).
func run(args []string) int {
	if len(args) != 5 {
		logx.Warn("usage: render input_path output_path samples width height")
		return 1
	}

	inputPath, outputPath := args[0], args[1]

	samples, err := strconv.Atoi(args[2])
	if err != nil || samples <= 0 {
		logx.Warn("invalid samples argument %q", args[2])
		return 1
	}
	width, err := strconv.Atoi(args[3])
	if err != nil || width <= 0 {
		logx.Warn("invalid width argument %q", args[3])
		return 1
	}
	height, err := strconv.Atoi(args[4])
	if err != nil || height <= 0 {
		logx.Warn("invalid height argument %q", args[4])
		return 1
	}

	config.SetPathSamples(samples)

	s, err := parser.ParseScene(inputPath)
	if err != nil {
		logx.Warn("failed to parse scene %q: %v", inputPath, err)
		return 1
	}
	if !s.Validated || s.Camera == nil {
		logx.Warn("scene %q has no usable geometry or camera", inputPath)
		return 1
	}

	s.Camera.Update(width, height)

	img, db := renderer.Render(s, width, height, renderer.PrintProgress)

	if err := img.Save(outputPath); err != nil {
		logx.Warn("failed to save image to %q: %v", outputPath, err)
		return 1
	}

	if db != nil {
		if err := db.Save(outputPath); err != nil {
			logx.Warn("failed to save auxiliary buffers next to %q: %v", outputPath, err)
			return 1
		}
	}

	logx.Info("wrote %s (%dx%d, %d samples/pixel) in %s", outputPath, width, height, samples, img.Total)
	return 0
}
