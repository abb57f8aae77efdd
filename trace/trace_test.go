package trace

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"
	"time"
)

func TestStatsDeltaAndID(t *testing.T) {
	s := NewStats()
	s.Network, s.Station, s.Location, s.Channel = "BW", "RJOB", "", "EHZ"
	s.SamplingRate = 200

	if got := s.Delta(); math.Abs(got-0.005) > 1e-15 {
		t.Fatalf("Delta()=%v want=0.005", got)
	}
	if got := s.ID(); got != "BW.RJOB..EHZ" {
		t.Fatalf("ID()=%q want=%q", got, "BW.RJOB..EHZ")
	}

	s.SamplingRate = 0
	if got := s.Delta(); got != 0 {
		t.Fatalf("Delta() with zero rate=%v want=0", got)
	}
}

func TestStatsCopyIsIndependent(t *testing.T) {
	baz := 42.0
	s := NewStats()
	s.BackAzimuth = &baz

	c := s.Copy()
	*c.BackAzimuth = 7

	if *s.BackAzimuth != 42 {
		t.Fatalf("copy aliased back-azimuth: got=%v", *s.BackAzimuth)
	}
	if s.Equal(c) {
		t.Fatalf("expected stats to differ after modifying copy")
	}
}

func TestStatsEqual(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	inc := 10.0

	a := NewStats()
	a.StartTime = start
	a.Inclination = &inc
	b := a.Copy()

	if !a.Equal(b) {
		t.Fatalf("expected copies to be equal")
	}

	b.Inclination = nil
	if a.Equal(b) {
		t.Fatalf("expected nil inclination to differ from defined one")
	}
}

func TestNewSetsNPTS(t *testing.T) {
	tr := New([]float64{1, 2, 3, 4}, NewStats())
	if tr.Stats.NPTS != 4 {
		t.Fatalf("NPTS=%d want=4", tr.Stats.NPTS)
	}
	if tr.Kind != KindGeneric {
		t.Fatalf("Kind=%v want=%v", tr.Kind, KindGeneric)
	}
	if got := tr.Duration(); got != 3*time.Second {
		t.Fatalf("Duration()=%v want=3s", got)
	}
}

func TestReadASCII(t *testing.T) {
	in := "# header\n1.5 2\n\n-3e-2\n"
	got, err := ReadASCII(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadASCII error: %v", err)
	}

	want := []float64{1.5, 2, -0.03}
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample[%d]=%v want=%v", i, got[i], want[i])
		}
	}

	if _, err := ReadASCII(strings.NewReader("1 x 3")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestReadFloat64LE(t *testing.T) {
	var buf bytes.Buffer
	for _, v := range []float64{0.25, -1, math.Pi} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write: %v", err)
		}
	}
	buf.WriteByte(0xff) // partial trailing sample

	got, err := ReadFloat64LE(&buf)
	if err != nil {
		t.Fatalf("ReadFloat64LE error: %v", err)
	}
	if len(got) != 3 || got[0] != 0.25 || got[1] != -1 || got[2] != math.Pi {
		t.Fatalf("unexpected samples: %v", got)
	}
}
