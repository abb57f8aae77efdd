package windowing

import (
	"fmt"
	"math"
)

// CosineTaperWindow is flat in the middle with half-cosine ramps at both
// ends. fraction is the total share of samples in the two ramps, so 0.2
// tapers 10% at each end.
type CosineTaperWindow struct {
	size         int
	fraction     float64
	coefficients []float64
}

// NewCosineTaper creates a new cosine taper window. fraction is clamped to [0, 1].
func NewCosineTaper(size int, fraction float64) *CosineTaperWindow {
	w := &CosineTaperWindow{
		size:     size,
		fraction: math.Max(0, math.Min(1, fraction)),
	}
	w.generate()
	return w
}

// generate creates the taper coefficients.
func (w *CosineTaperWindow) generate() {
	w.coefficients = make([]float64, w.size)
	if w.size == 0 {
		return
	}

	frac := int(float64(w.size)*w.fraction/2.0 + 0.5)
	idx1 := 0
	idx2 := frac - 1
	idx3 := w.size - frac
	idx4 := w.size - 1

	// Very short windows or tiny fractions collapse a ramp onto one sample
	if idx1 == idx2 {
		idx2++
	}
	if idx3 == idx4 {
		idx3--
	}

	for i := range w.size {
		switch {
		case i >= idx3:
			// Falling half-cosine; wins where the ramps overlap
			w.coefficients[i] = 0.5 * (1.0 + math.Cos(math.Pi*float64(idx3-i)/float64(idx4-idx3)))
		case i <= idx2:
			// Rising half-cosine
			w.coefficients[i] = 0.5 * (1.0 - math.Cos(math.Pi*float64(i-idx1)/float64(idx2-idx1)))
		default:
			w.coefficients[i] = 1.0
		}
	}
}

// Apply applies the window to a signal (creates new array)
func (w *CosineTaperWindow) Apply(signal []float64) []float64 {
	if len(signal) != w.size {
		return nil
	}

	windowed := make([]float64, w.size)
	for i := range w.size {
		windowed[i] = signal[i] * w.coefficients[i]
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (w *CosineTaperWindow) ApplyInPlace(signal []float64) error {
	if len(signal) != w.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	for i := range w.size {
		signal[i] *= w.coefficients[i]
	}
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (w *CosineTaperWindow) GetCoefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// GetSize returns the window size
func (w *CosineTaperWindow) GetSize() int {
	return w.size
}

// GetType returns the window type
func (w *CosineTaperWindow) GetType() string {
	return CosineTaper
}
