package psd

import "fmt"

// Labels are the axis labels and title for a PSD plot.
type Labels struct {
	X     string
	Y     string
	Title string
}

func makeLabels(cfg Config, id string) Labels {
	l := Labels{
		X:     "Frequency [Hz]",
		Y:     "Amplitude",
		Title: fmt.Sprintf("%s   PSD Estimation", id),
	}

	if cfg.ConvertToPeriods {
		l.X = "Period [s]"
	}

	switch {
	case cfg.ConvertToDB:
		l.Y = "Amplitude [dB]"
	case cfg.AmplitudeUnits != "":
		l.Y = "Amplitude [" + cfg.AmplitudeUnits + "]"
	}

	return l
}
