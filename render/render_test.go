package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	err := r.Render(Plot{
		X:      []float64{1, 2, 4},
		Y:      []float64{0.5, 0.25, 0.125},
		XLabel: "Frequency [Hz]",
		YLabel: "Amplitude",
		Title:  "XX.STA..BHZ   PSD Estimation",
		References: []Curve{
			{Name: "NHNM", X: []float64{1}, Y: []float64{-100}},
		},
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}
	if lines[0] != "# XX.STA..BHZ   PSD Estimation" {
		t.Fatalf("title line=%q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Frequency [Hz]") || !strings.HasSuffix(lines[1], "Amplitude") {
		t.Fatalf("header line=%q", lines[1])
	}
	if fields := strings.Fields(lines[4]); len(fields) != 2 || fields[0] != "4" || fields[1] != "0.125" {
		t.Fatalf("last row=%q", lines[4])
	}
	if strings.Contains(buf.String(), "NHNM") {
		t.Fatalf("references printed without WithReferences")
	}
}

func TestTableRendererReferences(t *testing.T) {
	var buf bytes.Buffer
	r := &TableRenderer{W: &buf, WithReferences: true}

	err := r.Render(Plot{
		X: []float64{1},
		Y: []float64{2},
		References: []Curve{
			{Name: "NHNM", X: []float64{0.1, 1}, Y: []float64{-91.5, -116.85}},
			{Name: "NLNM", X: []float64{0.1, 1, 10}, Y: []float64{-168, -166.4}},
		},
	})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# reference: NHNM", "# reference: NLNM", "-116.85", "-166.4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// Mismatched reference lengths are truncated
	if strings.Contains(out, "\n10 ") {
		t.Fatalf("unpaired reference point printed:\n%s", out)
	}
}

func TestTableRendererLengthMismatch(t *testing.T) {
	r := NewTableRenderer(&bytes.Buffer{})
	if err := r.Render(Plot{X: []float64{1, 2}, Y: []float64{1}}); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
}

func TestRendererFunc(t *testing.T) {
	want := errors.New("closed")
	var title string
	var r Renderer = RendererFunc(func(p Plot) error {
		title = p.Title
		return want
	})

	if err := r.Render(Plot{Title: "psd"}); !errors.Is(err, want) {
		t.Fatalf("got=%v want=%v", err, want)
	}
	if title != "psd" {
		t.Fatalf("title=%q", title)
	}
}
