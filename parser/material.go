package parser

import (
	"bufio"
	"math"
	"os"

	"crystals/logx"
	"crystals/materials"
	"crystals/scene"
	"crystals/spectrum"
)

// ParseMaterials reads the material file at path, appending newly
// defined materials to s.Materials and registering their names in
// s.NameToID. false is returned only when the file itself cannot be
// opened; malformed directives are warned and skipped.
func ParseMaterials(path string, s *scene.Scene) bool {
	file, err := os.Open(path)
	if err != nil {
		logx.Warn("unable to open file %q", path)
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	var curr *materials.Material

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		args := lineArgs(line)
		if len(args) == 0 || args[0] == "#" {
			continue
		}

		ok := true
		switch args[0] {
		case "newmtl":
			curr, ok = parseNewmtl(args, s)
		case "convert":
			ok = curr != nil && parseCurve(args, &curr.Convert)
		case "diffuse":
			ok = curr != nil && parseCurve(args, &curr.Diffuse)
		case "specular":
			ok = curr != nil && parseCurve(args, &curr.Specular)
		case "ambient":
			ok = curr != nil && parseCurve(args, &curr.Ambient)
		case "absorb":
			ok = curr != nil && parseCurve(args, &curr.Absorb)
		case "ior":
			ok = curr != nil && parseCurve(args, &curr.IOR)
		case "emission":
			ok = curr != nil && parseCurve(args, &curr.Emission)
		case "transmission":
			ok = curr != nil && parseTransmission(args, curr)
		case "shiny":
			ok = curr != nil && parseShiny(args, curr)
		case "type":
			ok = curr != nil && parseMaterialType(args, curr)
		case "diffract":
			ok = curr != nil && parseDiffract(args, curr)
		default:
			logx.Warn("skipping property %q, no specification implemented", args[0])
			continue
		}

		if !ok {
			logx.Warn("unable to parse line %d of %q", lineNo, path)
		}
	}

	return true
}

func parseNewmtl(args []string, s *scene.Scene) (*materials.Material, bool) {
	if len(args) != 2 {
		return nil, false
	}
	name := args[1]
	if _, exists := s.NameToID[name]; exists {
		logx.Warn("material name %q already exists", name)
		return nil, false
	}
	s.NameToID[name] = len(s.Materials)
	s.Materials = append(s.Materials, *materials.NewMaterial(name))
	return &s.Materials[len(s.Materials)-1], true
}

// parseCurve fits a Fourier curve from "<directive> r1 r2 samples..."
// into dst.
func parseCurve(args []string, dst *spectrum.Fourier) bool {
	if len(args) < 3 {
		return false
	}
	r1, ok1 := parseFloat(args[1])
	r2, ok2 := parseFloat(args[2])
	if !ok1 || !ok2 {
		return false
	}
	var f spectrum.Fourier
	if r1 != r2 && len(args) > 3 {
		f = parseFourier(args[3:], float64(r1), float64(r2))
	}
	*dst = f
	return true
}

// parseTransmission stores tau[i] = -ln(max(f(lambda_i), 1e-5)) so the
// dielectric sampler can use the stored curve directly with Beer-Lambert.
func parseTransmission(args []string, m *materials.Material) bool {
	var f spectrum.Fourier
	if !parseCurve(args, &f) {
		return false
	}
	var samples [spectrum.NSamples]float64
	for i := range samples {
		v := f.Evaluate(spectrum.Wavelength(i))
		if v < 1e-5 {
			v = 1e-5
		}
		samples[i] = -math.Log(v)
	}
	m.Transmission = spectrum.FromSpectrum(spectrum.FromSamples(wavelengthsOf(), samples[:]))
	return true
}

func wavelengthsOf() []float64 {
	ws := make([]float64, spectrum.NSamples)
	for i := range ws {
		ws[i] = spectrum.Wavelength(i)
	}
	return ws
}

func parseShiny(args []string, m *materials.Material) bool {
	if len(args) != 2 {
		return false
	}
	f, ok := parseFloat(args[1])
	if !ok {
		return false
	}
	m.Shiny = f
	return true
}

func parseMaterialType(args []string, m *materials.Material) bool {
	if len(args) != 2 {
		return false
	}
	switch args[1] {
	case "lambertian":
		m.Type = materials.Lambertian
	case "dielectric":
		m.Type = materials.Dielectric
	case "volumetric":
		m.Type = materials.Volumetric
	default:
		return false
	}
	return true
}

func parseDiffract(args []string, m *materials.Material) bool {
	if len(args) != 2 {
		return false
	}
	switch args[1] {
	case "true":
		m.Diffract = true
	case "false":
		m.Diffract = false
	default:
		return false
	}
	return true
}
