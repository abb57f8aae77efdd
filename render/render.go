// Package render describes plots handed to an external rendering sink.
//
// Nothing here draws anything; a Plot carries the arrays, labels and limits
// an analysis prepared, and a Renderer decides what to do with them.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Curve is an extra x/y series drawn alongside the main data.
type Curve struct {
	Name string
	X    []float64
	Y    []float64
}

// Limits is a closed axis range.
type Limits struct {
	Min, Max float64
}

// Plot is everything a sink needs to draw one figure.
type Plot struct {
	X, Y   []float64
	XLabel string
	YLabel string
	Title  string

	LogX    bool
	XLimits *Limits // nil means auto
	YLimits *Limits // nil means auto

	References []Curve
}

// Renderer consumes prepared plots.
type Renderer interface {
	Render(p Plot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(p Plot) error

// Render calls f(p).
func (f RendererFunc) Render(p Plot) error {
	return f(p)
}

// TableRenderer writes the main series as tab-aligned columns.
type TableRenderer struct {
	W io.Writer

	// WithReferences appends each reference curve as its own table.
	WithReferences bool
}

// NewTableRenderer creates a table renderer writing to w
func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{W: w}
}

// Render writes a header comment, then one row per point.
func (t *TableRenderer) Render(p Plot) error {
	if len(p.X) != len(p.Y) {
		return fmt.Errorf("x and y lengths differ: %d != %d", len(p.X), len(p.Y))
	}

	tw := tabwriter.NewWriter(t.W, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", p.Title)
	fmt.Fprintf(tw, "%s\t%s\n", p.XLabel, p.YLabel)
	for i := range p.X {
		fmt.Fprintf(tw, "%g\t%g\n", p.X[i], p.Y[i])
	}

	if t.WithReferences {
		for _, c := range p.References {
			fmt.Fprintf(tw, "\n# reference: %s\n", c.Name)
			for i := range min(len(c.X), len(c.Y)) {
				fmt.Fprintf(tw, "%g\t%g\n", c.X[i], c.Y[i])
			}
		}
	}

	return tw.Flush()
}
