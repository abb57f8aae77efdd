package psd

import (
	"math"
	"testing"
)

func TestPetersonReferenceValues(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(float64) float64
		period float64
		want   float64
	}{
		{"NLNM at 1s", LowNoisePower, 1, -166.40},
		{"NLNM at 0.1s", LowNoisePower, 0.1, -162.36 - 5.64},
		{"NLNM at 100000s", LowNoisePower, 1e5, -346.88 + 48.75*5},
		{"NHNM at 1s", HighNoisePower, 1, -116.85},
		{"NHNM at 10s", HighNoisePower, 10, -93.37 - 22.42},
		{"NHNM at 1000s", HighNoisePower, 1000, -206.66 + 31.63*3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.period); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestPetersonOutOfRange(t *testing.T) {
	for _, p := range []float64{0.05, 1e5 * 1.01} {
		if v := LowNoisePower(p); !math.IsNaN(v) {
			t.Fatalf("LowNoisePower(%v)=%v want NaN", p, v)
		}
		if v := HighNoisePower(p); !math.IsNaN(v) {
			t.Fatalf("HighNoisePower(%v)=%v want NaN", p, v)
		}
	}
}

func TestPetersonCurves(t *testing.T) {
	high, low, err := PetersonModels{}.NoiseModels()
	if err != nil {
		t.Fatalf("NoiseModels error: %v", err)
	}

	if high.Name != "NHNM" || low.Name != "NLNM" {
		t.Fatalf("names: %q %q", high.Name, low.Name)
	}

	for _, m := range []NoiseModel{high, low} {
		if len(m.Periods) != len(m.Power) || len(m.Periods) < 100 {
			t.Fatalf("%s: %d periods, %d powers", m.Name, len(m.Periods), len(m.Power))
		}
		if m.Periods[0] != 0.1 || m.Periods[len(m.Periods)-1] != 1e5 {
			t.Fatalf("%s spans [%v, %v]", m.Name, m.Periods[0], m.Periods[len(m.Periods)-1])
		}
		for i := range m.Periods {
			if i > 0 && m.Periods[i] <= m.Periods[i-1] {
				t.Fatalf("%s: periods not increasing at %d", m.Name, i)
			}
			if math.IsNaN(m.Power[i]) {
				t.Fatalf("%s: NaN power at period %v", m.Name, m.Periods[i])
			}
		}
	}

	for i, p := range high.Periods {
		if high.Power[i] <= LowNoisePower(p) {
			t.Fatalf("NHNM below NLNM at %v s: %v <= %v", p, high.Power[i], LowNoisePower(p))
		}
	}
}

func TestPetersonGridDensity(t *testing.T) {
	coarse, _, _ := PetersonModels{PointsPerDecade: 2}.NoiseModels()
	fine, _, _ := PetersonModels{PointsPerDecade: 50}.NoiseModels()
	if len(fine.Periods) <= len(coarse.Periods) {
		t.Fatalf("fine grid (%d) should be denser than coarse (%d)", len(fine.Periods), len(coarse.Periods))
	}
}
