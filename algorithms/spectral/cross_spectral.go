package spectral

import (
	"math/cmplx"

	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/render"
)

// CheckComparable verifies that two traces start at the same instant, hold
// the same number of coefficients and share an identical frequency axis. The returned error is a
// *ComparabilityError naming the failed condition.
func CheckComparable(a, b *FrequencyTrace) error {
	if !a.Stats.StartTime.Equal(b.Stats.StartTime) {
		return &ComparabilityError{
			Reason: StartTimeMismatch,
			StartA: a.Stats.StartTime,
			StartB: b.Stats.StartTime,
			Bin:    -1,
		}
	}

	if len(a.Data) != len(b.Data) {
		return &ComparabilityError{Reason: FrequencyMismatch, Bin: -1}
	}

	fa, fb := a.Frequencies(), b.Frequencies()
	if len(fa) != len(fb) {
		return &ComparabilityError{Reason: FrequencyMismatch, Bin: -1}
	}
	for i := range fa {
		if fa[i] != fb[i] {
			return &ComparabilityError{Reason: FrequencyMismatch, Bin: i}
		}
	}

	return nil
}

// CrossSpectrum returns conj(b)*a element-wise. Unlike CrossCorrelation it
// does not check that the traces are comparable. Inputs of different length
// are truncated to the shorter one.
func CrossSpectrum(a, b *FrequencyTrace) []complex128 {
	n := min(len(a.Data), len(b.Data))
	out := make([]complex128, n)
	for i := range n {
		out[i] = cmplx.Conj(b.Data[i]) * a.Data[i]
	}
	return out
}

// Coherence returns CrossSpectrum(a, b)^2 / (|a|*|b|) element-wise. Bins where
// either amplitude is zero come out as Inf or NaN. No comparability check is
// made.
func Coherence(a, b *FrequencyTrace) []complex128 {
	cs := CrossSpectrum(a, b)
	out := make([]complex128, len(cs))
	for i, c := range cs {
		denom := cmplx.Abs(a.Data[i]) * cmplx.Abs(b.Data[i])
		out[i] = c * c / complex(denom, 0)
	}
	return out
}

// CrossCorrelation checks comparability, then returns the inverse complex
// transform of conj(b)*a. Index 0 is zero lag; negative lags wrap around to
// the end of the slice.
func CrossCorrelation(a, b *FrequencyTrace) ([]complex128, error) {
	if err := CheckComparable(a, b); err != nil {
		return nil, err
	}

	return NewFFT().ComputeInverse(CrossSpectrum(a, b)), nil
}

// CrossCorrelationTo computes CrossCorrelation and hands the real part to r.
// Rendering failures are logged and do not affect the returned values.
func CrossCorrelationTo(a, b *FrequencyTrace, r render.Renderer) ([]complex128, error) {
	corr, err := CrossCorrelation(a, b)
	if err != nil {
		return nil, err
	}

	if r == nil {
		return corr, nil
	}

	x := make([]float64, len(corr))
	y := make([]float64, len(corr))
	for i, c := range corr {
		x[i] = float64(i)
		y[i] = real(c)
	}

	plot := render.Plot{
		X:      x,
		Y:      y,
		XLabel: "offset between two waves",
		YLabel: "correlation",
		Title:  a.ID() + " x " + b.ID(),
	}
	if err := r.Render(plot); err != nil {
		logging.Error(err, "failed to render cross-correlation", logging.Fields{
			"a": a.ID(),
			"b": b.ID(),
		})
	}

	return corr, nil
}
