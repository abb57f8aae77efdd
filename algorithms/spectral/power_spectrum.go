package spectral

import (
	"math"
)

// TinyFloat64 is the smallest positive normal float64, used as the floor
// before taking logarithms of power values.
const TinyFloat64 = 0x1p-1022 // 2.2250738585072014e-308

// PowerSpectrum provides power and decibel conversions
type PowerSpectrum struct {
	// No state needed - stateless calculation
}

// NewPowerSpectrum creates a new power spectrum calculator
func NewPowerSpectrum() *PowerSpectrum {
	return &PowerSpectrum{}
}

// Accumulate adds |X[k]|^2 into dst, which must be at least as long as spectrum.
func (ps *PowerSpectrum) Accumulate(dst []float64, spectrum []complex128) {
	for i, c := range spectrum {
		dst[i] += real(c)*real(c) + imag(c)*imag(c)
	}
}

// ToDecibels converts power values to 10*log10(p). Values below floor
// (including zeros and negatives) are clamped to floor first, so the result
// never contains -Inf.
func (ps *PowerSpectrum) ToDecibels(power []float64, floor float64) []float64 {
	if len(power) == 0 {
		return []float64{}
	}

	db := make([]float64, len(power))
	for i, p := range power {
		if p < floor {
			p = floor
		}
		db[i] = 10 * math.Log10(p)
	}

	return db
}
