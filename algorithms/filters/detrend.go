package filters

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
)

// Detrend names accepted by NewDetrender
const (
	DetrendNone   = "none"
	DetrendMean   = "mean"
	DetrendLinear = "linear"
)

// Detrender removes a trend from a segment in place.
type Detrender interface {
	DetrendInPlace(segment []float64)
	GetType() string
}

// NewDetrender returns the named detrend function.
func NewDetrender(name string) (Detrender, error) {
	canonical, ok := CanonicalDetrend(name)
	if !ok {
		return nil, fmt.Errorf("unknown detrend %q (known: %s)", name, strings.Join(DetrendNames(), ", "))
	}

	switch canonical {
	case DetrendMean:
		return MeanDetrend{}, nil
	case DetrendLinear:
		return LinearDetrend{}, nil
	default:
		return NoDetrend{}, nil
	}
}

// CanonicalDetrend normalises a detrend name. ok is false for unknown names.
func CanonicalDetrend(name string) (string, bool) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case DetrendNone, DetrendMean, DetrendLinear:
		return n, true
	case "":
		return DetrendNone, true
	case "constant":
		return DetrendMean, true
	default:
		return "", false
	}
}

// DetrendNames lists the canonical detrend names, sorted.
func DetrendNames() []string {
	names := []string{DetrendNone, DetrendMean, DetrendLinear}
	sort.Strings(names)
	return names
}

// NoDetrend leaves segments untouched.
type NoDetrend struct{}

func (NoDetrend) DetrendInPlace([]float64) {}
func (NoDetrend) GetType() string          { return DetrendNone }

// MeanDetrend subtracts the segment mean.
type MeanDetrend struct{}

func (MeanDetrend) DetrendInPlace(segment []float64) {
	if len(segment) == 0 {
		return
	}

	mean := common.Mean(segment)
	for i := range segment {
		segment[i] -= mean
	}
}

func (MeanDetrend) GetType() string { return DetrendMean }

// LinearDetrend subtracts the least-squares line through the segment,
// using the sample index as abscissa.
type LinearDetrend struct{}

func (LinearDetrend) DetrendInPlace(segment []float64) {
	n := len(segment)
	if n == 0 {
		return
	}
	if n == 1 {
		segment[0] = 0
		return
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}

	// Use gonum's linear regression: y = alpha + beta*x
	alpha, beta := stat.LinearRegression(x, segment, nil, false)
	for i := range segment {
		segment[i] -= alpha + beta*x[i]
	}
}

func (LinearDetrend) GetType() string { return DetrendLinear }
