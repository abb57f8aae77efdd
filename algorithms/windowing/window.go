// Package windowing selects taper windows by name for spectral estimation.
package windowing

import (
	"fmt"
	"sort"
	"strings"

	dspwindow "github.com/mjibson/go-dsp/window"
)

// Window is a fixed-size taper.
type Window interface {
	Apply(signal []float64) []float64
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

// Window names accepted by New
const (
	Hann        = "hann"
	Hamming     = "hamming"
	Blackman    = "blackman"
	Bartlett    = "bartlett"
	FlatTop     = "flattop"
	Rectangular = "rectangular"
	CosineTaper = "cosine_taper"
)

// DefaultTaperFraction is the share of samples tapered by the cosine_taper
// window (split evenly between both ends).
const DefaultTaperFraction = 0.2

var aliases = map[string]string{
	"hanning": Hann,
	"none":    Rectangular,
	"boxcar":  Rectangular,
	"taper":   CosineTaper,
}

// go-dsp supplies the classic symmetric windows
var generators = map[string]func(int) []float64{
	Hann:        dspwindow.Hann,
	Hamming:     dspwindow.Hamming,
	Blackman:    dspwindow.Blackman,
	Bartlett:    dspwindow.Bartlett,
	FlatTop:     dspwindow.FlatTop,
	Rectangular: dspwindow.Rectangular,
}

// Canonical resolves aliases and case. ok is false for unknown names.
func Canonical(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, found := aliases[n]; found {
		n = a
	}
	if _, found := generators[n]; found || n == CosineTaper {
		return n, true
	}
	return "", false
}

// Names returns the canonical window names, sorted.
func Names() []string {
	names := make([]string, 0, len(generators)+1)
	for n := range generators {
		names = append(names, n)
	}
	names = append(names, CosineTaper)
	sort.Strings(names)
	return names
}

// New builds the named window with size coefficients.
func New(name string, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	canonical, ok := Canonical(name)
	if !ok {
		return nil, fmt.Errorf("unknown window %q (known: %s)", name, strings.Join(Names(), ", "))
	}

	if canonical == CosineTaper {
		return NewCosineTaper(size, DefaultTaperFraction), nil
	}

	return &table{
		name:         canonical,
		coefficients: generators[canonical](size),
	}, nil
}

// table is a window whose coefficients come from a generator function.
type table struct {
	name         string
	coefficients []float64
}

// Apply applies the window to a signal (creates new array)
func (w *table) Apply(signal []float64) []float64 {
	if len(signal) != len(w.coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i := range signal {
		windowed[i] = signal[i] * w.coefficients[i]
	}
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (w *table) ApplyInPlace(signal []float64) error {
	if len(signal) != len(w.coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(w.coefficients))
	}

	for i := range signal {
		signal[i] *= w.coefficients[i]
	}
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (w *table) GetCoefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

func (w *table) GetSize() int {
	return len(w.coefficients)
}

func (w *table) GetType() string {
	return w.name
}
