package spectrum

import "math"

// cieX, cieY, cieZ hold the CIE 1931 2-degree standard observer colour
// matching functions sampled at each bucket centre wavelength. They are
// computed once at init time from the Wyman/Sloan/Shirley multi-lobe
// Gaussian fit to the standard tables, which is accurate to within
// plotting tolerance over the visible range and avoids shipping a
// hand-transcribed 400+ row table for a spectrum this coarse.
var cieX, cieY, cieZ [NSamples]float64

func init() {
	for i := 0; i < NSamples; i++ {
		lambda := Wavelength(i)
		cieX[i] = cieFitX(lambda)
		cieY[i] = cieFitY(lambda)
		cieZ[i] = cieFitZ(lambda)
	}
}

func gaussLobe(x, mu, sigma1, sigma2 float64) float64 {
	var t, sigma float64
	if x < mu {
		sigma = sigma1
	} else {
		sigma = sigma2
	}
	// The fit's inverse widths are per nanometre; x and mu are in micrometres.
	t = (x - mu) * 1000 * sigma
	return math.Exp(-0.5 * t * t)
}

func cieFitX(lambdaNM float64) float64 {
	x := lambdaNM / 1000.0
	return 0.362*gaussLobe(x, 0.442, 0.0624, 0.0374) +
		1.056*gaussLobe(x, 0.5998, 0.0264, 0.0323) -
		0.065*gaussLobe(x, 0.5011, 0.0490, 0.0382)
}

func cieFitY(lambdaNM float64) float64 {
	x := lambdaNM / 1000.0
	return 0.821*gaussLobe(x, 0.5688, 0.0213, 0.0247) +
		0.286*gaussLobe(x, 0.5309, 0.0613, 0.0322)
}

func cieFitZ(lambdaNM float64) float64 {
	x := lambdaNM / 1000.0
	return 1.217*gaussLobe(x, 0.437, 0.0845, 0.0278) +
		0.681*gaussLobe(x, 0.459, 0.0385, 0.0725)
}
