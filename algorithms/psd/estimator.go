package psd

import (
	"fmt"

	"github.com/RyanBlaney/sonido-spectra/algorithms/common"
	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/spectral"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/render"
	"github.com/RyanBlaney/sonido-spectra/trace"
)

// Visible window used by the ppsd preset
var (
	PPSDPeriodLimits = render.Limits{Min: 0.01, Max: 179}
	PPSDPowerLimits  = render.Limits{Min: -200, Max: -50}
)

// Result holds a PSD estimate ready for display.
type Result struct {
	// Power is linear or dB depending on Config.ConvertToDB.
	Power []float64
	// Axis is frequency in Hz, or period in s with Config.ConvertToPeriods.
	Axis []float64

	Config Config
	Labels Labels

	XLimits *render.Limits
	YLimits *render.Limits

	// NoiseModels holds the high and low reference curves when requested.
	NoiseModels []NoiseModel

	// InView is false when the ppsd preset found nothing inside its
	// visible window. Always true outside the preset.
	InView bool
}

// Plot converts the result into a renderable figure.
func (r *Result) Plot() render.Plot {
	p := render.Plot{
		X:       r.Axis,
		Y:       r.Power,
		XLabel:  r.Labels.X,
		YLabel:  r.Labels.Y,
		Title:   r.Labels.Title,
		LogX:    r.Config.LogX,
		XLimits: r.XLimits,
		YLimits: r.YLimits,
	}
	for _, m := range r.NoiseModels {
		p.References = append(p.References, render.Curve{Name: m.Name, X: m.Periods, Y: m.Power})
	}
	return p
}

// Estimator runs the Welch PSD pipeline.
type Estimator struct {
	logger   logging.Logger
	noise    NoiseModelSource
	renderer render.Renderer
}

// EstimatorOption configures an Estimator.
type EstimatorOption func(*Estimator)

// WithLogger sets the logger. The global logger is used otherwise.
func WithLogger(l logging.Logger) EstimatorOption {
	return func(e *Estimator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNoiseModelSource replaces the built-in Peterson models.
func WithNoiseModelSource(src NoiseModelSource) EstimatorOption {
	return func(e *Estimator) {
		if src != nil {
			e.noise = src
		}
	}
}

// WithRenderer hands every finished (non calc-only) result to r.
func WithRenderer(r render.Renderer) EstimatorOption {
	return func(e *Estimator) {
		e.renderer = r
	}
}

// NewEstimator creates an estimator
func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		logger: logging.GetGlobalLogger(),
		noise:  PetersonModels{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// EstimateTrace resolves opts against the trace's sample count and
// estimates its PSD.
func (e *Estimator) EstimateTrace(tr *trace.Trace, opts ...Option) (*Result, error) {
	cfg, err := ApplyOptions(opts...).Resolve(tr.Stats.NPTS)
	if err != nil {
		return nil, err
	}
	return e.Estimate(tr.Data, tr.Stats.SamplingRate, tr.ID(), cfg)
}

// Estimate computes the PSD of samples taken at samplingRate Hz. id labels
// the plot title. Errors from the Welch routine (bad segment length or
// overlap) are returned unchanged.
func (e *Estimator) Estimate(samples []float64, samplingRate float64, id string, cfg Config) (*Result, error) {
	logger := e.logger.WithFields(logging.Fields{
		"id":       id,
		"nperseg":  cfg.NPerSeg,
		"noverlap": cfg.NOverlap,
	})

	if len(cfg.Overridden) > 0 {
		logger.Debug("preset replaced options", logging.Fields{
			"preset":     string(cfg.Preset),
			"overridden": cfg.Overridden,
		})
	}

	detrend, err := filters.NewDetrender(cfg.Detrend)
	if err != nil {
		return nil, err
	}

	power, freqs, err := e.welch(samples, samplingRate, cfg, detrend)
	if err != nil {
		return nil, err
	}

	// Drop the zero-frequency bin
	power, freqs = power[1:], freqs[1:]

	res := &Result{
		Power:  power,
		Axis:   freqs,
		Config: cfg,
		InView: true,
	}

	if cfg.CalcOnly {
		return res, nil
	}

	if cfg.ConvertToPeriods {
		res.Axis = common.Reciprocal(res.Axis)
	}

	if cfg.ConvertToDB {
		res.Power = spectral.NewPowerSpectrum().ToDecibels(res.Power, spectral.TinyFloat64)
	}

	if cfg.NoiseModels {
		high, low, err := e.noise.NoiseModels()
		if err != nil {
			return nil, fmt.Errorf("failed to load noise models: %w", err)
		}
		res.NoiseModels = []NoiseModel{high, low}
	}

	if cfg.Preset == PresetPPSD {
		xl, yl := PPSDPeriodLimits, PPSDPowerLimits
		res.XLimits, res.YLimits = &xl, &yl

		switch {
		case len(res.Power) == 0:
			res.InView = false
			logger.Warn("No data to display (PSD is empty). Segment length is too short to resolve any frequency.")
		case !common.AnyInOpenRange(res.Power, yl.Min, yl.Max):
			res.InView = false
			lo, hi := common.MinMax(res.Power)
			logger.Warn(fmt.Sprintf("No data to display (PSD data is between %.01f and %.01f dB). "+
				"Maybe instrument response was not removed or data is not ground acceleration?", lo, hi))
		}
	} else if len(res.Power) > 0 {
		// Scale to the central 90% so edge effects don't dominate
		yMax := 1.05 * common.CentralMax(res.Power, 0.05)
		res.YLimits = &render.Limits{Min: 0, Max: yMax}
	}

	res.Labels = makeLabels(cfg, id)

	if e.renderer != nil {
		if err := e.renderer.Render(res.Plot()); err != nil {
			logger.Error(err, "failed to render PSD")
		}
	}

	return res, nil
}

func (e *Estimator) welch(samples []float64, fs float64, cfg Config, detrend filters.Detrender) ([]float64, []float64, error) {
	if cfg.NPerSeg < 1 {
		return Welch(samples, fs, cfg.NPerSeg, cfg.NOverlap, detrend, nil)
	}

	window, err := windowing.New(cfg.Window, cfg.NPerSeg)
	if err != nil {
		return nil, nil, err
	}

	power, freqs, err := Welch(samples, fs, cfg.NPerSeg, cfg.NOverlap, detrend, window)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Debug("welch estimate ready", logging.Fields{
		"bins":    len(power),
		"samples": len(samples),
	})
	return power, freqs, nil
}
