// Package psd estimates power spectral densities with Welch's method.
//
// Welch's method averages modified periodograms of overlapping data
// segments. Without windowing and with zero overlap it reduces to
// Bartlett's method.
//
// Configuration happens in two steps. Options records what the caller asked
// for; Options.Resolve turns it into a Config for a given trace length. The
// ppsd preset replaces segment length, overlap, detrend, window and the
// display flags, and Config.Overridden lists what it replaced.
//
// The estimator never draws. It fills a Result with the arrays, labels,
// limits and reference noise models a plot needs, and optionally hands that
// to a render.Renderer.
package psd
