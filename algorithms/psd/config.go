package psd

import (
	"fmt"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
)

// Preset names a canned estimator configuration.
type Preset string

const (
	// PresetNone keeps the caller's options.
	PresetNone Preset = ""
	// PresetPPSD mimics probabilistic-PSD plots: segments of a quarter of the
	// trace (rounded down to a power of two) overlapping by 75%, linear
	// detrend, cosine taper, periods on a log axis in dB with noise models.
	PresetPPSD Preset = "ppsd"
)

// Defaults used when the caller does not say otherwise.
const (
	DefaultSegmentLength = 4096
	DefaultOverlapRatio  = 0.5
	PPSDOverlapRatio     = 0.75
)

// Options is what the caller asks for. Resolve turns it into a Config.
type Options struct {
	Preset Preset `json:"preset"`

	NPerSeg  int  `json:"nperseg"`
	NOverlap *int `json:"noverlap,omitempty"` // nil: half the segment length

	Detrend string `json:"detrend"`
	Window  string `json:"window"`

	ConvertToPeriods bool `json:"convert_to_periods"`
	ConvertToDB      bool `json:"convert_to_db"`
	LogX             bool `json:"logx"`
	NoiseModels      bool `json:"plot_noise_models"`

	AmplitudeUnits string `json:"amplitude_label_units,omitempty"`

	// CalcOnly returns raw power and frequency right after estimation.
	CalcOnly bool `json:"calc_only"`
}

// DefaultOptions returns the estimator defaults: 4096-sample segments with
// 50% overlap, linear detrend and a Hann window.
func DefaultOptions() Options {
	return Options{
		NPerSeg: DefaultSegmentLength,
		Detrend: filters.DetrendLinear,
		Window:  windowing.Hann,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithPreset selects a preset. Presets override most other options.
func WithPreset(p Preset) Option {
	return func(o *Options) {
		o.Preset = p
	}
}

// WithSegmentLength sets the samples per Welch segment.
func WithSegmentLength(n int) Option {
	return func(o *Options) {
		o.NPerSeg = n
	}
}

// WithOverlap sets the samples shared by consecutive segments.
func WithOverlap(n int) Option {
	return func(o *Options) {
		o.NOverlap = &n
	}
}

// WithDetrend selects a detrend function by name.
func WithDetrend(name string) Option {
	return func(o *Options) {
		o.Detrend = name
	}
}

// WithWindow selects a window by name.
func WithWindow(name string) Option {
	return func(o *Options) {
		o.Window = name
	}
}

// WithPeriods converts the frequency axis to periods.
func WithPeriods() Option {
	return func(o *Options) {
		o.ConvertToPeriods = true
	}
}

// WithDecibels converts power to dB.
func WithDecibels() Option {
	return func(o *Options) {
		o.ConvertToDB = true
	}
}

// WithLogX asks the renderer for a logarithmic x axis.
func WithLogX() Option {
	return func(o *Options) {
		o.LogX = true
	}
}

// WithNoiseModels attaches the high/low noise model curves.
func WithNoiseModels() Option {
	return func(o *Options) {
		o.NoiseModels = true
	}
}

// WithAmplitudeUnits names the units shown on a linear power axis.
func WithAmplitudeUnits(units string) Option {
	return func(o *Options) {
		o.AmplitudeUnits = units
	}
}

// WithCalcOnly stops after estimation and returns raw values.
func WithCalcOnly() Option {
	return func(o *Options) {
		o.CalcOnly = true
	}
}

// ApplyOptions applies zero or more options to the defaults.
func ApplyOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Config is a fully resolved estimator configuration.
type Config struct {
	Preset Preset `json:"preset"`

	NPerSeg  int `json:"nperseg"`
	NOverlap int `json:"noverlap"`

	Detrend string `json:"detrend"`
	Window  string `json:"window"`

	ConvertToPeriods bool `json:"convert_to_periods"`
	ConvertToDB      bool `json:"convert_to_db"`
	LogX             bool `json:"logx"`
	NoiseModels      bool `json:"plot_noise_models"`

	AmplitudeUnits string `json:"amplitude_label_units,omitempty"`
	CalcOnly       bool   `json:"calc_only"`

	// Overridden names the options whose values the preset replaced.
	Overridden []string `json:"overridden,omitempty"`
}

// Resolve produces the configuration used for a trace of npts samples.
// Window and detrend names are validated here; segment length and overlap
// are left for the estimator to reject.
func (o Options) Resolve(npts int) (Config, error) {
	cfg := Config{
		Preset:           o.Preset,
		NPerSeg:          o.NPerSeg,
		Detrend:          o.Detrend,
		Window:           o.Window,
		ConvertToPeriods: o.ConvertToPeriods,
		ConvertToDB:      o.ConvertToDB,
		LogX:             o.LogX,
		NoiseModels:      o.NoiseModels,
		AmplitudeUnits:   o.AmplitudeUnits,
		CalcOnly:         o.CalcOnly,
	}

	switch o.Preset {
	case PresetNone:
		if o.NOverlap != nil {
			cfg.NOverlap = *o.NOverlap
		} else {
			cfg.NOverlap = int(DefaultOverlapRatio * float64(cfg.NPerSeg))
		}

	case PresetPPSD:
		cfg.NPerSeg = common.PrevPow2(float64(npts) / 4.0)
		cfg.NOverlap = int(PPSDOverlapRatio * float64(cfg.NPerSeg))
		cfg.Detrend = filters.DetrendLinear
		cfg.Window = windowing.CosineTaper
		cfg.ConvertToPeriods = true
		cfg.ConvertToDB = true
		cfg.LogX = true
		cfg.NoiseModels = true
		cfg.Overridden = overriddenBy(o, cfg)

	default:
		return Config{}, fmt.Errorf("unknown preset %q", o.Preset)
	}

	detrend, ok := filters.CanonicalDetrend(cfg.Detrend)
	if !ok {
		return Config{}, fmt.Errorf("unknown detrend %q", cfg.Detrend)
	}
	cfg.Detrend = detrend

	window, ok := windowing.Canonical(cfg.Window)
	if !ok {
		return Config{}, fmt.Errorf("unknown window %q", cfg.Window)
	}
	cfg.Window = window

	return cfg, nil
}

// overriddenBy lists the options whose value the preset changed.
func overriddenBy(o Options, cfg Config) []string {
	var out []string

	if o.NPerSeg != cfg.NPerSeg {
		out = append(out, "nperseg")
	}
	if o.NOverlap != nil && *o.NOverlap != cfg.NOverlap {
		out = append(out, "noverlap")
	}
	if o.Detrend != cfg.Detrend {
		out = append(out, "detrend")
	}
	if o.Window != cfg.Window {
		out = append(out, "window")
	}
	if o.ConvertToPeriods != cfg.ConvertToPeriods {
		out = append(out, "convert_to_periods")
	}
	if o.ConvertToDB != cfg.ConvertToDB {
		out = append(out, "convert_to_db")
	}
	if o.LogX != cfg.LogX {
		out = append(out, "logx")
	}
	if o.NoiseModels != cfg.NoiseModels {
		out = append(out, "plot_noise_models")
	}

	return out
}
