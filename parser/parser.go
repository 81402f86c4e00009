// Package parser reads the line-oriented, whitespace-tokenised scene
// and material text formats described by the spec into a *scene.Scene,
// following the warn-and-skip recovery policy: a malformed line is
// logged and ignored, parsing continues, and the scene stays usable as
// long as some geometry loaded.
package parser

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crystals/logx"
	reMath "crystals/math"
	"crystals/scene"
	"crystals/spectrum"
)

// lineArgs splits a line into whitespace-separated tokens, the same
// tokenisation rule the scene and material formats both use.
func lineArgs(line string) []string {
	return strings.Fields(line)
}

func parseFloat(s string) (float32, bool) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFourier builds a Fourier curve fitted to args over [s, e].
// A single sample is duplicated so FitSamples always has at least two
// points to work with, matching the source format's convention.
func parseFourier(args []string, s, e float64) spectrum.Fourier {
	if len(args) == 0 {
		return spectrum.Fourier{}
	}
	values := make([]float64, 0, len(args))
	for _, a := range args {
		f, ok := parseFloat(a)
		if !ok {
			logx.Warn("invalid float detected: %q", a)
			continue
		}
		values = append(values, float64(f))
	}
	if len(values) == 0 {
		return spectrum.Fourier{}
	}
	if len(values) == 1 {
		values = append(values, values[0])
	}
	return spectrum.FitSamples(values, s, e)
}

// ParseScene reads the scene file at path, returning a Scene that is
// Validated if at least one primitive was parsed. I/O and directive
// errors are warnings; only an unreadable top-level file prevents a
// Scene from being returned.
func ParseScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		logx.Warn("unable to open file %q", path)
		return nil, err
	}
	defer file.Close()

	s := scene.NewScene()
	s.FilePath = path
	currentMaterial := scene.DefaultMaterialID

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		args := lineArgs(line)
		if len(args) == 0 || args[0] == "#" {
			continue
		}

		ok := true
		switch args[0] {
		case "v":
			ok = parseVertex(args, s)
		case "ng":
			ok = parseNonGeo(args, s)
		case "ld":
			ok = parseDirectionalLight(args, s)
		case "la":
			ok = parseAreaLight(args, s)
		case "camera":
			ok = parseCamera(args, s)
		case "sphere":
			ok = parseSphere(args, s, currentMaterial)
		case "f":
			ok = parseFace(args, s, currentMaterial)
		case "mtllib":
			ok = parseMtllib(args, s)
		case "usemtl":
			var id int
			id, ok = parseUsemtl(args, s)
			if ok {
				currentMaterial = id
			}
		default:
			logx.Warn("skipping property %q, no specification implemented", args[0])
			continue
		}

		if !ok {
			logx.Warn("unable to parse line %d of %q: %q", lineNo, path, line)
		}
	}

	s.Validated = len(s.Primitives) > 0
	return s, nil
}

func parseVertex(args []string, s *scene.Scene) bool {
	if len(args) != 4 {
		return false
	}
	x, ok1 := parseFloat(args[1])
	y, ok2 := parseFloat(args[2])
	z, ok3 := parseFloat(args[3])
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	s.Vertices = append(s.Vertices, reMath.NewVec3(x, y, z))
	return true
}

func parseNonGeo(args []string, s *scene.Scene) bool {
	if len(args) != 4 {
		return false
	}
	x, ok1 := parseFloat(args[1])
	y, ok2 := parseFloat(args[2])
	z, ok3 := parseFloat(args[3])
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	s.NonGeos = append(s.NonGeos, reMath.NewVec3(x, y, z))
	return true
}

func vertexAt(vs []reMath.Vec3, idx1Based int) (reMath.Vec3, bool) {
	if idx1Based <= 0 || idx1Based > len(vs) {
		return reMath.Vec3{}, false
	}
	return vs[idx1Based-1], true
}

func parseDirectionalLight(args []string, s *scene.Scene) bool {
	if len(args) < 4 {
		return false
	}
	idx, ok := parseInt(args[1])
	l0, ok2 := parseFloat(args[2])
	l1, ok3 := parseFloat(args[3])
	if !ok || !ok2 || !ok3 {
		return false
	}
	ng, found := vertexAt(s.NonGeos, idx)
	if !found {
		logx.Warn("detected reference does not exist")
		return false
	}

	var f spectrum.Fourier
	if l0 != l1 && len(args) > 4 {
		f = parseFourier(args[4:], float64(l0), float64(l1))
	}

	s.Lights = append(s.Lights, scene.Light{
		Colour:    f,
		Direction: ng.Negate().Normalize(),
	})
	return true
}

func parseAreaLight(args []string, s *scene.Scene) bool {
	if len(args) < 10 {
		return false
	}
	idx, ok := parseInt(args[1])
	l0, ok2 := parseFloat(args[2])
	l1, ok3 := parseFloat(args[3])
	if !ok || !ok2 || !ok3 {
		return false
	}
	v, found := vertexAt(s.Vertices, idx)
	if !found {
		logx.Warn("detected reference does not exist")
		return false
	}

	wx, ok4 := parseFloat(args[4])
	wy, ok5 := parseFloat(args[5])
	wz, ok6 := parseFloat(args[6])
	hx, ok7 := parseFloat(args[7])
	hy, ok8 := parseFloat(args[8])
	hz, ok9 := parseFloat(args[9])
	if !ok4 || !ok5 || !ok6 || !ok7 || !ok8 || !ok9 {
		return false
	}

	var f spectrum.Fourier
	if l0 != l1 && len(args) > 10 {
		f = parseFourier(args[10:], float64(l0), float64(l1))
	}

	s.Lights = append(s.Lights, scene.Light{
		Position: v,
		Colour:   f,
		Wvec:     reMath.NewVec3(wx, wy, wz),
		Hvec:     reMath.NewVec3(hx, hy, hz),
	})
	return true
}

func parseCamera(args []string, s *scene.Scene) bool {
	if len(args) != 5 {
		return false
	}
	i1, ok1 := parseInt(args[1])
	i2, ok2 := parseInt(args[2])
	i3, ok3 := parseInt(args[3])
	hangle, ok4 := parseFloat(args[4])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	pos, found1 := vertexAt(s.Vertices, i1)
	lookTarget, found2 := vertexAt(s.NonGeos, i2)
	up, found3 := vertexAt(s.NonGeos, i3)
	if !found1 || !found2 || !found3 {
		logx.Warn("detected reference does not exist")
		return false
	}

	s.Camera = scene.NewCamera(pos, lookTarget.Sub(pos), up, hangle)
	return true
}

func parseSphere(args []string, s *scene.Scene, currentMaterial int) bool {
	if len(args) != 3 {
		return false
	}
	idx, ok1 := parseInt(args[1])
	radius, ok2 := parseFloat(args[2])
	if !ok1 || !ok2 {
		return false
	}
	centre, found := vertexAt(s.Vertices, idx)
	if !found {
		logx.Warn("detected reference does not exist")
		return false
	}
	s.Primitives = append(s.Primitives, scene.NewSphere(centre, radius, currentMaterial))
	return true
}

func parseFace(args []string, s *scene.Scene, currentMaterial int) bool {
	if len(args) != 4 && len(args) != 5 {
		return false
	}
	indices := make([]int, len(args)-1)
	for i := 1; i < len(args); i++ {
		v, ok := parseInt(args[i])
		if !ok {
			return false
		}
		indices[i-1] = v
	}

	verts := make([]reMath.Vec3, len(indices))
	for i, idx := range indices {
		v, found := vertexAt(s.Vertices, idx)
		if !found {
			logx.Warn("detected reference does not exist")
			return false
		}
		verts[i] = v
	}

	s.Primitives = append(s.Primitives, scene.NewTriangle(verts[0], verts[1], verts[2], currentMaterial))
	if len(verts) == 4 {
		s.Primitives = append(s.Primitives, scene.NewTriangle(verts[0], verts[2], verts[3], currentMaterial))
	}
	return true
}

func parseMtllib(args []string, s *scene.Scene) bool {
	if len(args) != 2 {
		return false
	}
	mtlPath := filepath.Join(filepath.Dir(s.FilePath), args[1])
	return ParseMaterials(mtlPath, s)
}

func parseUsemtl(args []string, s *scene.Scene) (int, bool) {
	if len(args) != 2 {
		return scene.DefaultMaterialID, false
	}
	id, found := s.NameToID[args[1]]
	if !found {
		return scene.DefaultMaterialID, false
	}
	return id, true
}
