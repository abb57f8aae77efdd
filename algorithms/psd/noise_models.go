package psd

import (
	"math"
	"sort"
)

// NoiseModel is a reference curve of power (dB) against period (s).
type NoiseModel struct {
	Name    string
	Periods []float64
	Power   []float64
}

// NoiseModelSource supplies the high- and low-noise reference curves.
type NoiseModelSource interface {
	NoiseModels() (high, low NoiseModel, err error)
}

// Peterson (1993) new high/low noise models. Each row starts a segment
// where power = A + B*log10(period), valid up to the next row's period.
type petersonSegment struct {
	period, a, b float64
}

const petersonMaxPeriod = 100000.0

var nlnm = []petersonSegment{
	{0.10, -162.36, 5.64},
	{0.17, -166.70, 0.00},
	{0.40, -170.00, -8.30},
	{0.80, -166.40, 28.90},
	{1.24, -168.60, 52.48},
	{2.40, -159.98, 29.81},
	{4.30, -141.10, 0.00},
	{5.00, -71.36, -99.77},
	{6.00, -97.26, -66.49},
	{10.00, -132.18, -31.57},
	{12.00, -205.27, 36.16},
	{15.60, -37.65, -104.33},
	{21.90, -114.37, -47.10},
	{31.60, -160.58, -16.28},
	{45.00, -187.50, 0.00},
	{70.00, -216.47, 15.70},
	{101.00, -185.00, 0.00},
	{154.00, -168.34, -7.61},
	{328.00, -217.43, 11.90},
	{600.00, -258.28, 26.60},
	{10000.00, -346.88, 48.75},
}

var nhnm = []petersonSegment{
	{0.10, -108.73, -17.23},
	{0.22, -150.34, -80.50},
	{0.32, -122.31, -23.87},
	{0.80, -116.85, 32.51},
	{3.80, -108.48, 18.08},
	{4.60, -74.66, -32.95},
	{6.30, 0.66, -127.18},
	{7.90, -93.37, -22.42},
	{15.40, 73.54, -162.98},
	{20.00, -151.52, 10.01},
	{354.80, -206.66, 31.63},
}

// PetersonModels evaluates the NHNM and NLNM on a log-spaced period grid.
type PetersonModels struct {
	// PointsPerDecade controls the grid density. Zero means 20.
	PointsPerDecade int
}

// NoiseModels returns the high (NHNM) and low (NLNM) curves.
func (p PetersonModels) NoiseModels() (high, low NoiseModel, err error) {
	ppd := p.PointsPerDecade
	if ppd <= 0 {
		ppd = 20
	}

	high = evaluatePeterson("NHNM", nhnm, ppd)
	low = evaluatePeterson("NLNM", nlnm, ppd)
	return high, low, nil
}

// petersonPower returns the model power in dB at the given period, or NaN
// outside the model's range.
func petersonPower(model []petersonSegment, period float64) float64 {
	if period < model[0].period || period > petersonMaxPeriod {
		return math.NaN()
	}

	// Last segment starting at or below period
	i := sort.Search(len(model), func(i int) bool { return model[i].period > period }) - 1
	seg := model[i]
	return seg.a + seg.b*math.Log10(period)
}

// LowNoisePower evaluates the NLNM at period seconds.
func LowNoisePower(period float64) float64 {
	return petersonPower(nlnm, period)
}

// HighNoisePower evaluates the NHNM at period seconds.
func HighNoisePower(period float64) float64 {
	return petersonPower(nhnm, period)
}

func evaluatePeterson(name string, model []petersonSegment, pointsPerDecade int) NoiseModel {
	lo := math.Log10(model[0].period)
	hi := math.Log10(petersonMaxPeriod)
	n := int(math.Round((hi-lo)*float64(pointsPerDecade))) + 1

	periods := make([]float64, 0, n+len(model))
	for i := range n {
		periods = append(periods, math.Pow(10, lo+float64(i)/float64(pointsPerDecade)))
	}
	// Include the breakpoints so the curve keeps its corners
	for _, seg := range model {
		periods = append(periods, seg.period)
	}
	sort.Float64s(periods)

	out := NoiseModel{Name: name}
	for i, period := range periods {
		if i > 0 && period-periods[i-1] <= 1e-9*period {
			continue
		}
		period = math.Max(model[0].period, math.Min(petersonMaxPeriod, period))
		out.Periods = append(out.Periods, period)
		out.Power = append(out.Power, petersonPower(model, period))
	}
	return out
}
