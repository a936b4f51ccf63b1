package pqhdr

import "math"

// SRGBToLinear applies the sRGB inverse EOTF to a normalized sample.
// Input is clamped to [0, 1].
func SRGBToLinear(v float64) float64 {
	v = clamp01(v)
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB OETF to a linear value in [0, 1].
func LinearToSRGB(v float64) float64 {
	v = clamp01(v)
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// LinearToPQ maps a linear-light value (1.0 = SDR white) to a PQ code value in [0, 1].
//
// SDR white is placed at targetNits cd/m², the absolute luminance is normalized
// by the 10000 cd/m² PQ peak and clamped to [0, 1] before the ST 2084 OETF.
func LinearToPQ(l, targetNits float64) float64 {
	y := clamp01(l * targetNits / pqMaxNits)
	if y == 0 {
		return 0
	}
	p := math.Pow(y, pqM1)
	return math.Pow((pqC1+pqC2*p)/(1+pqC3*p), pqM2)
}

// PQToLinear applies the ST 2084 EOTF and returns luminance normalized by 10000 cd/m².
func PQToLinear(code float64) float64 {
	code = clamp01(code)
	p := math.Pow(code, 1/pqM2)
	num := math.Max(p-pqC1, 0)
	den := pqC2 - pqC3*p
	if den <= 0 {
		return 1
	}
	return clamp01(math.Pow(num/den, 1/pqM1))
}

// PQToNits returns the absolute luminance in cd/m² of a PQ code value.
func PQToNits(code float64) float64 {
	return PQToLinear(code) * pqMaxNits
}

// Quantize16 maps [0, 1] to [0, 65535] with round-to-nearest.
// Out of range and NaN inputs are clamped.
func Quantize16(v float64) uint16 {
	return uint16(clamp01(v)*65535.0 + 0.5)
}

