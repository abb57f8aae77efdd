package psd

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	dspspectral "github.com/mjibson/go-dsp/spectral"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
)

var (
	ErrInvalidSegmentLength = errors.New("segment length must be at least 1")
	ErrInvalidOverlap       = errors.New("overlap must be less than the segment length")
)

// Welch averages modified periodograms of overlapping, detrended and
// windowed segments of x sampled at fs Hz. It returns the one-sided power
// spectral density and its frequencies (k*fs/nperseg for k = 0..nperseg/2).
//
// Input shorter than nperseg is zero padded to one segment. Segments are
// transformed concurrently but averaged in order, so results do not depend
// on scheduling.
func Welch(x []float64, fs float64, nperseg, noverlap int, detrend filters.Detrender, window windowing.Window) (power, freqs []float64, err error) {
	if nperseg < 1 {
		return nil, nil, fmt.Errorf("%w: nperseg=%d", ErrInvalidSegmentLength, nperseg)
	}
	if noverlap >= nperseg {
		return nil, nil, fmt.Errorf("%w: noverlap=%d nperseg=%d", ErrInvalidOverlap, noverlap, nperseg)
	}
	if window.GetSize() != nperseg {
		return nil, nil, fmt.Errorf("window size (%d) doesn't match segment length (%d)", window.GetSize(), nperseg)
	}

	if len(x) < nperseg {
		padded := make([]float64, nperseg)
		copy(padded, x)
		x = padded
	}

	// Segment returns views into x; workers copy before modifying.
	segments := dspspectral.Segment(x, nperseg, noverlap)
	numBins := nperseg/2 + 1

	spectra := make([][]complex128, len(segments))
	jobs := make(chan int, len(segments))
	for i := range segments {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range workerCount(len(segments)) {
		wg.Add(1)
		go func() {
			defer wg.Done()

			fft := fourier.NewFFT(nperseg)
			buf := make([]float64, nperseg)

			for i := range jobs {
				copy(buf, segments[i])
				detrend.DetrendInPlace(buf)
				// Length was checked against the window above
				_ = window.ApplyInPlace(buf)

				spectra[i] = fft.Coefficients(make([]complex128, numBins), buf)
			}
		}()
	}
	wg.Wait()

	// Summed in segment order
	ps := spectral.NewPowerSpectrum()
	power = make([]float64, numBins)
	for _, coeffs := range spectra {
		ps.Accumulate(power, coeffs)
	}

	var windowEnergy float64
	for _, w := range window.GetCoefficients() {
		windowEnergy += w * w
	}
	scale := 1.0 / (fs * windowEnergy * float64(len(segments)))

	// One-sided: fold negative frequencies onto everything but DC, and the
	// Nyquist bin when nperseg is even.
	last := numBins
	if nperseg%2 == 0 {
		last = numBins - 1
	}
	for k := range power {
		power[k] *= scale
		if k >= 1 && k < last {
			power[k] *= 2
		}
	}

	freqs = make([]float64, numBins)
	df := fs / float64(nperseg)
	for k := range freqs {
		freqs[k] = float64(k) * df
	}

	return power, freqs, nil
}

// workerCount picks how many goroutines to use for n segments.
func workerCount(n int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if n < 8 {
		return max(1, min(n, numCPU/2))
	}
	return min(n, numCPU)
}
