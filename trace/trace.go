// Package trace holds the time-domain signal container the spectral
// operators consume and produce.
package trace

import (
	"fmt"
	"time"
)

// Kind tags which time-domain container a trace represents.
type Kind int

const (
	// KindGeneric is a plain trace.
	KindGeneric Kind = iota
	// KindTimeSeries is a trace flavoured as a regularly sampled time series.
	KindTimeSeries
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindTimeSeries:
		return "timeseries"
	default:
		return "unknown"
	}
}

// Stats is the metadata record attached to every trace
type Stats struct {
	Network   string    `json:"network"`
	Station   string    `json:"station"`
	Location  string    `json:"location"`
	Channel   string    `json:"channel"`
	StartTime time.Time `json:"starttime"`

	Calib       float64  `json:"calib"`
	BackAzimuth *float64 `json:"back_azimuth,omitempty"` // degrees, nil when undefined
	Inclination *float64 `json:"inclination,omitempty"`  // degrees, nil when undefined

	SamplingRate float64 `json:"sampling_rate"` // Hz
	NPTS         int     `json:"npts"`
}

// NewStats returns a metadata record with the library defaults.
func NewStats() Stats {
	return Stats{
		Calib:        1.0,
		SamplingRate: 1.0,
	}
}

// Delta returns the sample spacing in seconds.
func (s Stats) Delta() float64 {
	if s.SamplingRate == 0 {
		return 0
	}
	return 1.0 / s.SamplingRate
}

// ID returns the NET.STA.LOC.CHA identifier
func (s Stats) ID() string {
	return fmt.Sprintf("%s.%s.%s.%s", s.Network, s.Station, s.Location, s.Channel)
}

// Copy returns a copy that shares no optional fields with s.
func (s Stats) Copy() Stats {
	c := s
	if s.BackAzimuth != nil {
		v := *s.BackAzimuth
		c.BackAzimuth = &v
	}
	if s.Inclination != nil {
		v := *s.Inclination
		c.Inclination = &v
	}
	return c
}

// Equal reports whether two metadata records carry the same values.
func (s Stats) Equal(o Stats) bool {
	return s.Network == o.Network &&
		s.Station == o.Station &&
		s.Location == o.Location &&
		s.Channel == o.Channel &&
		s.StartTime.Equal(o.StartTime) &&
		s.Calib == o.Calib &&
		optionalEqual(s.BackAzimuth, o.BackAzimuth) &&
		optionalEqual(s.Inclination, o.Inclination) &&
		s.SamplingRate == o.SamplingRate &&
		s.NPTS == o.NPTS
}

func optionalEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Trace is a real-valued time-domain signal
type Trace struct {
	Data  []float64 `json:"-"`
	Stats Stats     `json:"stats"`
	Kind  Kind      `json:"kind"`
}

// New wraps data in a trace, setting NPTS from its length.
func New(data []float64, stats Stats) *Trace {
	stats.NPTS = len(data)
	return &Trace{
		Data:  data,
		Stats: stats,
		Kind:  KindGeneric,
	}
}

// ID returns the trace identifier.
func (t *Trace) ID() string {
	return t.Stats.ID()
}

// Duration returns the time spanned by the samples.
func (t *Trace) Duration() time.Duration {
	if t.Stats.NPTS < 2 || t.Stats.SamplingRate == 0 {
		return 0
	}
	seconds := float64(t.Stats.NPTS-1) * t.Stats.Delta()
	return time.Duration(seconds * float64(time.Second))
}
