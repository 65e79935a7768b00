package minimap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

var (
	dataStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dataEnd   = time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
)

func TestWindowRectFullRange(t *testing.T) {
	s := New(dataStart, dataEnd)

	rect := s.WindowRect(model.ViewWindow{Start: dataStart, End: dataEnd})
	assert.Equal(t, 0.0, rect.XRatio)
	assert.Equal(t, 1.0, rect.WidthRatio)
}

func TestWindowRectPartial(t *testing.T) {
	s := New(dataStart, dataEnd)

	w := model.ViewWindow{
		Start: dataStart.Add(2 * 24 * time.Hour),
		End:   dataStart.Add(7 * 24 * time.Hour),
	}
	rect := s.WindowRect(w)
	assert.InDelta(t, 0.2, rect.XRatio, 1e-9)
	assert.InDelta(t, 0.5, rect.WidthRatio, 1e-9)
}

func TestWindowRectClampedWhenOverflowing(t *testing.T) {
	s := New(dataStart, dataEnd)

	// Windows may exceed the data range by the overflow tolerance; the
	// minimap rectangle still stays within [0,1].
	w := model.ViewWindow{
		Start: dataStart.Add(-24 * time.Hour),
		End:   dataEnd.Add(24 * time.Hour),
	}
	rect := s.WindowRect(w)
	assert.GreaterOrEqual(t, rect.XRatio, 0.0)
	assert.LessOrEqual(t, rect.XRatio+rect.WidthRatio, 1.0)
}

func TestDegenerateRange(t *testing.T) {
	s := New(dataStart, dataStart)

	rect := s.WindowRect(model.ViewWindow{Start: dataStart, End: dataStart.Add(time.Hour)})
	assert.Equal(t, 0.0, rect.XRatio)
	assert.Equal(t, 1.0, rect.WidthRatio)
}

func TestRectToWindowRoundTrip(t *testing.T) {
	s := New(dataStart, dataEnd)

	w := model.ViewWindow{
		Start: dataStart.Add(3 * 24 * time.Hour),
		End:   dataStart.Add(5 * 24 * time.Hour),
	}
	back := s.RectToWindow(s.WindowRect(w))

	assert.WithinDuration(t, w.Start, back.Start, time.Second)
	assert.WithinDuration(t, w.End, back.End, time.Second)
}

func TestClickWindowCenters(t *testing.T) {
	s := New(dataStart, dataEnd)

	span := 2 * 24 * time.Hour
	w := s.ClickWindow(0.5, span)

	assert.Equal(t, span, w.Span())
	center := w.Start.Add(span / 2)
	assert.WithinDuration(t, dataStart.Add(5*24*time.Hour), center, time.Second)
}
