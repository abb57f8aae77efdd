package spectral

import (
	"math/cmplx"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
	"github.com/RyanBlaney/sonido-spectra/render"
	"github.com/RyanBlaney/sonido-spectra/trace"
)

// FrequencyTrace is one channel of a signal in the frequency domain: the
// one-sided transform coefficients of a real time series plus the metadata
// of the trace they came from.
//
// Stats.NPTS is expected to match len(Data); operators that change the
// length leave it to the caller to keep the two consistent.
type FrequencyTrace struct {
	Data  []complex128
	Stats trace.Stats

	// Target selects the container IFFT reconstructs.
	Target trace.Kind
}

// NewFrequencyTrace wraps coefficients and metadata. Target defaults to
// trace.KindGeneric.
func NewFrequencyTrace(data []complex128, stats trace.Stats) *FrequencyTrace {
	return &FrequencyTrace{
		Data:  data,
		Stats: stats,
	}
}

// FromTrace transforms a time-domain trace with a real FFT. The metadata is
// copied and NPTS is set to the number of coefficients.
func FromTrace(tr *trace.Trace) *FrequencyTrace {
	data := NewFFT().ComputeReal(tr.Data)
	stats := tr.Stats.Copy()
	stats.NPTS = len(data)
	return &FrequencyTrace{
		Data:   data,
		Stats:  stats,
		Target: tr.Kind,
	}
}

// Copy returns a deep copy.
func (ft *FrequencyTrace) Copy() *FrequencyTrace {
	data := make([]complex128, len(ft.Data))
	copy(data, ft.Data)
	return &FrequencyTrace{
		Data:   data,
		Stats:  ft.Stats.Copy(),
		Target: ft.Target,
	}
}

// Equal reports whether both traces carry identical samples and metadata.
func (ft *FrequencyTrace) Equal(o *FrequencyTrace) bool {
	if ft == nil || o == nil {
		return ft == o
	}
	if ft.Target != o.Target || len(ft.Data) != len(o.Data) || !ft.Stats.Equal(o.Stats) {
		return false
	}
	for i := range ft.Data {
		if ft.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

// ID returns the NET.STA.LOC.CHA identifier.
func (ft *FrequencyTrace) ID() string {
	return ft.Stats.ID()
}

// IFFT applies the real-input inverse transform and builds a new time-domain
// trace. Identification, start time, calibration and orientation are copied;
// SamplingRate and NPTS are passed through from this trace, not derived from
// the length of the reconstructed data.
//
// The input is not validated: coefficients that are not a one-sided
// spectrum still produce a (meaningless) result.
func (ft *FrequencyTrace) IFFT() *trace.Trace {
	src := ft.Stats.Copy()

	stats := trace.NewStats()
	stats.Network = src.Network
	stats.Station = src.Station
	stats.Location = src.Location
	stats.Channel = src.Channel
	stats.StartTime = src.StartTime
	stats.Calib = src.Calib
	stats.BackAzimuth = src.BackAzimuth
	stats.Inclination = src.Inclination

	stats.SamplingRate = src.SamplingRate
	stats.NPTS = src.NPTS

	return &trace.Trace{
		Data:  NewFFT().ComputeInverseReal(ft.Data),
		Stats: stats,
		Kind:  ft.Target,
	}
}

// Phase returns the complex argument of each coefficient, in (-pi, pi].
func (ft *FrequencyTrace) Phase() []float64 {
	phase := make([]float64, len(ft.Data))
	for i, c := range ft.Data {
		phase[i] = cmplx.Phase(c)
	}
	return phase
}

// Amplitude returns the magnitude of each coefficient.
func (ft *FrequencyTrace) Amplitude() []float64 {
	amp := make([]float64, len(ft.Data))
	for i, c := range ft.Data {
		amp[i] = cmplx.Abs(c)
	}
	return amp
}

// Frequencies returns the one-sided FFT bin frequencies in Hz for len(Data)
// samples spaced Stats.Delta() seconds apart: k/(n*d) for k = 0..n/2.
func (ft *FrequencyTrace) Frequencies() []float64 {
	return RFFTFreq(len(ft.Data), ft.Stats.Delta())
}

// RFFTFreq returns the n/2+1 non-negative bin frequencies of a real FFT of
// length n with sample spacing d.
func RFFTFreq(n int, d float64) []float64 {
	if n <= 0 {
		return []float64{}
	}

	freqs := make([]float64, n/2+1)
	scale := 1.0 / (float64(n) * d)
	for k := range freqs {
		freqs[k] = float64(k) * scale
	}
	return freqs
}

// SpectrumPlot prepares the single-sided magnitude spectrum for display:
// x spans 0 to the Nyquist frequency over NPTS/2 points, y is 2/N*|Data|.
func (ft *FrequencyTrace) SpectrumPlot() (x, y []float64) {
	n := ft.Stats.NPTS
	half := min(n/2, len(ft.Data))

	x = common.Linspace(0, 1.0/(2.0*ft.Stats.Delta()), half)
	y = make([]float64, half)
	for i := range half {
		y[i] = 2.0 / float64(n) * cmplx.Abs(ft.Data[i])
	}
	return x, y
}

// MagnitudePlot wraps SpectrumPlot in a labelled figure.
func (ft *FrequencyTrace) MagnitudePlot() render.Plot {
	x, y := ft.SpectrumPlot()
	return render.Plot{
		X:      x,
		Y:      y,
		XLabel: "Freq (Hz)",
		YLabel: "|Y(freq)|",
		Title:  ft.ID(),
	}
}
