package psd

import (
	"slices"
	"testing"

	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := DefaultOptions().Resolve(100000)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if cfg.NPerSeg != 4096 || cfg.NOverlap != 2048 {
		t.Fatalf("nperseg=%d noverlap=%d want=4096/2048", cfg.NPerSeg, cfg.NOverlap)
	}
	if cfg.Detrend != filters.DetrendLinear || cfg.Window != windowing.Hann {
		t.Fatalf("detrend=%q window=%q", cfg.Detrend, cfg.Window)
	}
	if cfg.ConvertToDB || cfg.ConvertToPeriods || cfg.LogX || cfg.NoiseModels {
		t.Fatalf("display flags should be off by default: %+v", cfg)
	}
	if len(cfg.Overridden) != 0 {
		t.Fatalf("nothing should be overridden: %v", cfg.Overridden)
	}
}

func TestResolveDefaultOverlapIsHalfSegment(t *testing.T) {
	cfg, err := ApplyOptions(WithSegmentLength(1001)).Resolve(5000)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.NOverlap != 500 {
		t.Fatalf("noverlap=%d want=500", cfg.NOverlap)
	}

	cfg, err = ApplyOptions(WithSegmentLength(1024), WithOverlap(0)).Resolve(5000)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.NOverlap != 0 {
		t.Fatalf("explicit zero overlap must be kept: got=%d", cfg.NOverlap)
	}
}

func TestResolvePPSDPreset(t *testing.T) {
	tests := []struct {
		npts     int
		nperseg  int
		noverlap int
	}{
		{360000, 65536, 49152},
		{10000, 2048, 1536},
		{4096, 1024, 768},
		{4095, 512, 384},
		{7, 1, 0},
		{3, 0, 0},
	}

	for _, tc := range tests {
		cfg, err := ApplyOptions(WithPreset(PresetPPSD)).Resolve(tc.npts)
		if err != nil {
			t.Fatalf("npts=%d: Resolve error: %v", tc.npts, err)
		}
		if cfg.NPerSeg != tc.nperseg || cfg.NOverlap != tc.noverlap {
			t.Fatalf("npts=%d: nperseg=%d noverlap=%d want=%d/%d",
				tc.npts, cfg.NPerSeg, cfg.NOverlap, tc.nperseg, tc.noverlap)
		}
		if !cfg.ConvertToDB || !cfg.ConvertToPeriods || !cfg.LogX || !cfg.NoiseModels {
			t.Fatalf("preset must enable display flags: %+v", cfg)
		}
		if cfg.Window != windowing.CosineTaper || cfg.Detrend != filters.DetrendLinear {
			t.Fatalf("window=%q detrend=%q", cfg.Window, cfg.Detrend)
		}
	}
}

func TestResolvePPSDReportsOverrides(t *testing.T) {
	opts := ApplyOptions(
		WithPreset(PresetPPSD),
		WithSegmentLength(512),
		WithOverlap(10),
		WithWindow(windowing.Hamming),
		WithDecibels(),
		WithAmplitudeUnits("m/s**2"),
	)

	cfg, err := opts.Resolve(40000)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	for _, name := range []string{"nperseg", "noverlap", "window", "convert_to_periods", "logx", "plot_noise_models"} {
		if !slices.Contains(cfg.Overridden, name) {
			t.Fatalf("expected %q in overridden list %v", name, cfg.Overridden)
		}
	}
	for _, name := range []string{"convert_to_db", "detrend"} {
		if slices.Contains(cfg.Overridden, name) {
			t.Fatalf("%q matched the preset and should not be listed: %v", name, cfg.Overridden)
		}
	}
	if cfg.AmplitudeUnits != "m/s**2" {
		t.Fatalf("amplitude units are not part of the preset: got=%q", cfg.AmplitudeUnits)
	}
}

func TestResolveRejectsUnknownNames(t *testing.T) {
	cases := []Options{
		ApplyOptions(WithPreset("spectrogram")),
		ApplyOptions(WithWindow("triangle-ish")),
		ApplyOptions(WithDetrend("cubic")),
	}
	for i, o := range cases {
		if _, err := o.Resolve(1000); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestResolveCanonicalisesNames(t *testing.T) {
	cfg, err := ApplyOptions(WithWindow("Hanning"), WithDetrend("constant")).Resolve(1000)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Window != windowing.Hann || cfg.Detrend != filters.DetrendMean {
		t.Fatalf("window=%q detrend=%q", cfg.Window, cfg.Detrend)
	}
}
