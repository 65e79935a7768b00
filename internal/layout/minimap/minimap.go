package minimap

import (
	"time"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

// Sync translates between the main view window and the minimap's
// view-window rectangle. Only the coordinate contract lives here; drawing
// the minimap belongs to the presentation layer.
type Sync struct {
	dataStart time.Time
	dataEnd   time.Time
}

// New creates a sync over the full data range. A degenerate range (no or
// coincident events) yields a full-width rectangle.
func New(dataStart, dataEnd time.Time) Sync {
	return Sync{dataStart: dataStart, dataEnd: dataEnd}
}

// WindowRect maps the view window into minimap space, both values clamped
// to [0,1] relative to the full data range.
func (s Sync) WindowRect(w model.ViewWindow) model.MinimapWindow {
	span := s.dataEnd.Sub(s.dataStart)
	if span <= 0 {
		return model.MinimapWindow{XRatio: 0, WidthRatio: 1}
	}

	x := float64(w.Start.Sub(s.dataStart)) / float64(span)
	width := float64(w.Span()) / float64(span)

	x = clamp01(x)
	if x+width > 1 {
		width = 1 - x
	}
	return model.MinimapWindow{XRatio: x, WidthRatio: clamp01(width)}
}

// RectToWindow inverts WindowRect for minimap drags: the dragged rectangle
// position maps back to absolute window bounds.
func (s Sync) RectToWindow(rect model.MinimapWindow) model.ViewWindow {
	span := s.dataEnd.Sub(s.dataStart)
	start := s.dataStart.Add(time.Duration(clamp01(rect.XRatio) * float64(span)))
	return model.ViewWindow{
		Start: start,
		End:   start.Add(time.Duration(clamp01(rect.WidthRatio) * float64(span))),
	}
}

// ClickWindow centers a window of the given span on a minimap click
// position.
func (s Sync) ClickWindow(xRatio float64, span time.Duration) model.ViewWindow {
	dataSpan := s.dataEnd.Sub(s.dataStart)
	center := s.dataStart.Add(time.Duration(clamp01(xRatio) * float64(dataSpan)))
	return model.ViewWindow{
		Start: center.Add(-span / 2),
		End:   center.Add(span / 2),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
