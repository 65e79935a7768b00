package timescale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	winStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	winEnd   = time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
)

func TestToXEndpoints(t *testing.T) {
	s := New(winStart, winEnd, 40, 920)

	assert.InDelta(t, 40, s.ToX(winStart), 1e-9)
	assert.InDelta(t, 960, s.ToX(winEnd), 1e-9)
}

func TestToXLinear(t *testing.T) {
	s := New(winStart, winEnd, 40, 920)

	// Halfway through the window lands halfway across the usable band.
	mid := winStart.Add(5 * 24 * time.Hour)
	assert.InDelta(t, 40+460, s.ToX(mid), 1e-9)

	// Dates outside the window extrapolate past the margins.
	before := winStart.Add(-24 * time.Hour)
	assert.Less(t, s.ToX(before), 40.0)
}

func TestToTimeRoundTrip(t *testing.T) {
	s := New(winStart, winEnd, 40, 920)

	for _, px := range []float64{40, 270, 500, 731.5, 960} {
		got := s.ToX(s.ToTime(px))
		assert.InDelta(t, px, got, 0.001, "px %v did not round-trip", px)
	}
}

func TestDurationPerPx(t *testing.T) {
	s := New(winStart, winStart.Add(1000*time.Second), 0, 1000)
	assert.Equal(t, time.Second, s.DurationPerPx())

	degenerate := New(winStart, winEnd, 0, 0)
	assert.Equal(t, time.Duration(0), degenerate.DurationPerPx())
}

func TestZeroUsableWidth(t *testing.T) {
	s := New(winStart, winEnd, 40, 0)
	assert.True(t, s.ToTime(500).Equal(winStart))
}
