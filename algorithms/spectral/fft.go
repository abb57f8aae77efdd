package spectral

import (
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT bundles the transforms the frequency-domain operators need.
// Complex transforms go through mjibson/go-dsp, real-input transforms
// through gonum's fourier package.
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the complex forward transform
func (f *FFT) Compute(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFT(x)
}

// ComputeInverse computes the complex inverse transform, normalised by 1/n.
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeReal returns the one-sided spectrum (n/2+1 bins) of a real sequence.
func (f *FFT) ComputeReal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fourier.NewFFT(len(x)).Coefficients(nil, x)
}

// ComputeInverseReal inverts a one-sided spectrum back to a real sequence of
// length 2*(len(x)-1), normalised by 1/n. Imaginary parts of the DC and
// Nyquist bins are ignored. Fewer than two bins give an empty result.
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) < 2 {
		return []float64{}
	}

	n := 2 * (len(x) - 1)
	seq := fourier.NewFFT(n).Sequence(nil, x)

	scale := 1.0 / float64(n)
	for i := range seq {
		seq[i] *= scale
	}

	return seq
}
