// Command psdtool estimates the power spectral density of a sampled trace.
//
// Usage:
//
//	psdtool [flags] [file]
//
// Samples are read from file, or stdin when no file is given, either as
// whitespace separated text or as raw little-endian float64.
//
// Examples:
//
//	psdtool -rate 100 samples.txt
//	psdtool -rate 20 -preset ppsd -id IU.ANMO.00.BHZ samples.txt
//	psdtool -format f64le -rate 40 -nperseg 1024 -db < samples.bin
//	psdtool -options psd.json -refs samples.txt
//	psdtool -rate 50 -calc-only -color never samples.txt
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RyanBlaney/sonido-spectra/algorithms/filters"
	"github.com/RyanBlaney/sonido-spectra/algorithms/psd"
	"github.com/RyanBlaney/sonido-spectra/algorithms/windowing"
	"github.com/RyanBlaney/sonido-spectra/logging"
	"github.com/RyanBlaney/sonido-spectra/render"
	"github.com/RyanBlaney/sonido-spectra/trace"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	format, id, optionsFile, level, color string
	rate                                  float64
	refs                                  bool

	preset, window, detrend, units string
	nperseg, noverlap              int
	periods, db, logx, noise       bool
	calcOnly                       bool
}

func newFlagSet(name string) (*flag.FlagSet, *cliFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	c := &cliFlags{}

	fs.StringVar(&c.format, "format", "ascii", "input format: ascii or f64le")
	fs.Float64Var(&c.rate, "rate", 1, "sampling rate in Hz")
	fs.StringVar(&c.id, "id", "", "trace id as NET.STA.LOC.CHA")
	fs.StringVar(&c.optionsFile, "options", "", "JSON file with estimator options")
	fs.StringVar(&c.preset, "preset", "", "options preset (ppsd)")
	fs.IntVar(&c.nperseg, "nperseg", psd.DefaultSegmentLength, "samples per segment")
	fs.IntVar(&c.noverlap, "noverlap", 0, "overlapping samples between segments (default half a segment)")
	fs.StringVar(&c.window, "window", windowing.Hann, "window: "+strings.Join(windowing.Names(), ", "))
	fs.StringVar(&c.detrend, "detrend", filters.DetrendLinear, "detrend: "+strings.Join(filters.DetrendNames(), ", "))
	fs.BoolVar(&c.periods, "periods", false, "print periods instead of frequencies")
	fs.BoolVar(&c.db, "db", false, "print power in dB")
	fs.BoolVar(&c.logx, "logx", false, "ask the renderer for a logarithmic x axis")
	fs.BoolVar(&c.noise, "noise-models", false, "attach the Peterson noise models")
	fs.BoolVar(&c.calcOnly, "calc-only", false, "print raw power against frequency, skipping conversions")
	fs.StringVar(&c.units, "units", "", "amplitude units for the power axis label")
	fs.BoolVar(&c.refs, "refs", false, "also print reference curves")
	fs.StringVar(&c.level, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&c.color, "color", "auto", "colored log output: auto, always or never")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: psdtool [flags] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Estimates the power spectral density of a trace with Welch's method.\n")
		fmt.Fprintf(os.Stderr, "Reads stdin when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, c
}

// applyTo copies the flags set on the command line into opts, so they win
// over the options file.
func (c *cliFlags) applyTo(fs *flag.FlagSet, opts *psd.Options) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preset":
			opts.Preset = psd.Preset(c.preset)
		case "nperseg":
			opts.NPerSeg = c.nperseg
		case "noverlap":
			n := c.noverlap
			opts.NOverlap = &n
		case "window":
			opts.Window = c.window
		case "detrend":
			opts.Detrend = c.detrend
		case "periods":
			opts.ConvertToPeriods = c.periods
		case "db":
			opts.ConvertToDB = c.db
		case "logx":
			opts.LogX = c.logx
		case "noise-models":
			opts.NoiseModels = c.noise
		case "calc-only":
			opts.CalcOnly = c.calcOnly
		case "units":
			opts.AmplitudeUnits = c.units
		}
	})
}

func main() {
	fs, c := newFlagSet("psdtool")
	// ExitOnError handles parse failures
	_ = fs.Parse(os.Args[1:])

	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.ParseLevel(c.level))
	logging.SetGlobalLogger(logger)
	if err := applyColorMode(c.color); err != nil {
		logger.Fatal(err, "invalid flag")
	}

	opts := psd.DefaultOptions()
	if c.optionsFile != "" {
		if err := loadOptions(c.optionsFile, &opts); err != nil {
			logger.Fatal(err, "failed to load options", logging.Fields{"path": c.optionsFile})
		}
	}
	c.applyTo(fs, &opts)

	tr, err := readTrace(fs.Arg(0), c.format, c.rate, c.id)
	if err != nil {
		logger.Fatal(err, "failed to read trace")
	}

	cfg, err := opts.Resolve(tr.Stats.NPTS)
	if err != nil {
		logger.Fatal(err, "invalid options")
	}

	out := render.NewTableRenderer(os.Stdout)
	out.WithReferences = c.refs

	estimator := psd.NewEstimator(psd.WithLogger(logger), psd.WithRenderer(out))
	res, err := estimator.Estimate(tr.Data, tr.Stats.SamplingRate, tr.ID(), cfg)
	if err != nil {
		logger.Fatal(err, "PSD estimation failed", logging.Fields{"id": tr.ID()})
	}

	// Calc-only results skip the renderer
	if cfg.CalcOnly {
		if err := out.Render(rawPlot(res, tr.ID())); err != nil {
			logger.Fatal(err, "failed to write PSD")
		}
	}
}

// applyColorMode sets colored logging on the global logger. auto keeps the
// terminal detection done by the default logger.
func applyColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "":
	case "always":
		logging.EnableColors()
	case "never":
		logging.DisableColors()
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

func rawPlot(res *psd.Result, id string) render.Plot {
	p := res.Plot()
	p.XLabel = "Frequency [Hz]"
	p.YLabel = "Power"
	p.Title = id
	return p
}

func loadOptions(path string, opts *psd.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func readTrace(path, format string, rate float64, id string) (*trace.Trace, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var samples []float64
	var err error
	switch strings.ToLower(format) {
	case "ascii", "txt":
		samples, err = trace.ReadASCII(r)
	case "f64le", "raw":
		samples, err = trace.ReadFloat64LE(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return nil, err
	}

	stats := trace.NewStats()
	stats.SamplingRate = rate
	if id != "" {
		parts := strings.SplitN(id, ".", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("trace id %q is not NET.STA.LOC.CHA", id)
		}
		stats.Network, stats.Station, stats.Location, stats.Channel = parts[0], parts[1], parts[2], parts[3]
	}

	return trace.New(samples, stats), nil
}
