package viewport

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/constants"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/core/timescale"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// ErrInvalidWindow marks a rejected window or gesture. The controller keeps
// its previous valid state whenever it returns this error.
var ErrInvalidWindow = errors.New("invalid view window")

// Controller owns the current view window and applies zoom/pan/fit-all
// gestures to it, clamping against the data range and the minimum span. It
// is the single writer of the window; everything downstream only reads it.
type Controller struct {
	cfg      *config.LayoutConfig
	viewport model.Viewport
	window   model.ViewWindow

	dataStart time.Time
	dataEnd   time.Time
	hasData   bool
}

// NewController creates a controller showing the default span ending now.
// Callers with data typically follow up with SetDataBounds and FitAll.
func NewController(cfg *config.LayoutConfig, viewport model.Viewport) *Controller {
	now := time.Now().UTC()
	return &Controller{
		cfg:      cfg,
		viewport: viewport,
		window: model.ViewWindow{
			Start: now.Add(-cfg.DefaultSpan.Std()),
			End:   now,
		},
	}
}

// Window returns the current view window.
func (c *Controller) Window() model.ViewWindow {
	return c.window
}

// Viewport returns the current pixel viewport.
func (c *Controller) Viewport() model.Viewport {
	return c.viewport
}

// Scale returns the date-to-pixel mapping for the current window, excluding
// the chrome margins on both edges.
func (c *Controller) Scale() timescale.Scale {
	usable := c.viewport.Width - c.cfg.Margins.Left - c.cfg.Margins.Right
	if usable < 1 {
		usable = 1
	}
	return timescale.New(c.window.Start, c.window.End, c.cfg.Margins.Left, usable)
}

// SetDataBounds records the event data range used for boundary clamps.
// A single-instant range (one event, or all events coincident) is allowed.
func (c *Controller) SetDataBounds(start, end time.Time) {
	if end.Before(start) {
		start, end = end, start
	}
	c.dataStart = start
	c.dataEnd = end
	c.hasData = true
}

// ClearDataBounds removes the data range; clamping then only enforces the
// minimum span.
func (c *Controller) ClearDataBounds() {
	c.hasData = false
}

// Zoom scales the window span by steps of the configured zoom factor while
// keeping the date under pivotPx fixed at that pixel. Positive steps zoom in.
func (c *Controller) Zoom(steps float64, pivotPx float64) error {
	if !isFinite(steps) || !isFinite(pivotPx) {
		return fmt.Errorf("%w: non-finite zoom arguments", ErrInvalidWindow)
	}
	if steps == 0 {
		return nil
	}

	scale := c.Scale()
	pivotDate := scale.ToTime(pivotPx)
	frac := (pivotPx - scale.LeftMargin()) / scale.UsableWidth()

	factor := math.Pow(constants.ZoomStepFactor, steps)
	newSpan := c.clampSpan(time.Duration(float64(c.window.Span()) * factor))

	// Re-place the window so pivotDate maps back to pivotPx.
	start := pivotDate.Add(-time.Duration(frac * float64(newSpan)))
	c.window = c.clampWindow(start, start.Add(newSpan))

	util.LogDebugf("zoom steps=%.1f pivot=%.1f span=%s", steps, pivotPx, c.window.Span())
	return nil
}

// Pan shifts the window by the time equivalent of deltaPx pixels. Positive
// deltas move the window later.
func (c *Controller) Pan(deltaPx float64) error {
	if !isFinite(deltaPx) {
		return fmt.Errorf("%w: non-finite pan delta", ErrInvalidWindow)
	}
	if deltaPx == 0 {
		return nil
	}

	scale := c.Scale()
	delta := time.Duration(deltaPx * float64(c.window.Span()) / scale.UsableWidth())
	c.window = c.clampWindow(c.window.Start.Add(delta), c.window.End.Add(delta))
	return nil
}

// FitAll sets the window to exactly span the data range, or to the default
// span ending now when there is no data. A single-instant range is widened
// to the default span around the instant.
func (c *Controller) FitAll() {
	if !c.hasData {
		now := time.Now().UTC()
		c.window = model.ViewWindow{Start: now.Add(-c.cfg.DefaultSpan.Std()), End: now}
		return
	}

	if !c.dataEnd.After(c.dataStart) {
		half := c.cfg.DefaultSpan.Std() / 2
		c.window = model.ViewWindow{Start: c.dataStart.Add(-half), End: c.dataStart.Add(half)}
		return
	}

	c.window = model.ViewWindow{Start: c.dataStart, End: c.dataEnd}
}

// SetWindow replaces the window, applying the same clamps as zoom and pan.
// Used by minimap drag/click. Invalid bounds are rejected and the previous
// window retained.
func (c *Controller) SetWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return fmt.Errorf("%w: start %v, end %v", ErrInvalidWindow, start, end)
	}

	span := c.clampSpan(end.Sub(start))
	if span != end.Sub(start) {
		// Preserve the requested center when the span itself was clamped.
		center := start.Add(end.Sub(start) / 2)
		start = center.Add(-span / 2)
		end = start.Add(span)
	}

	c.window = c.clampWindow(start, end)
	return nil
}

// Resize updates the pixel viewport. The window is untouched; only the
// mapping changes.
func (c *Controller) Resize(width, height float64) error {
	if !isFinite(width) || !isFinite(height) || width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidWindow, width, height)
	}
	c.viewport = model.Viewport{Width: width, Height: height}
	return nil
}

// clampSpan bounds a candidate span to [MinSpan, maxSpan].
func (c *Controller) clampSpan(span time.Duration) time.Duration {
	minSpan := c.cfg.MinSpan.Std()
	if span < minSpan {
		return minSpan
	}
	if maxSpan := c.maxSpan(); maxSpan > 0 && span > maxSpan {
		return maxSpan
	}
	return span
}

// maxSpan is the widest window permitted: the data range plus the overflow
// tolerance on both sides. Zero means unbounded (no data).
func (c *Controller) maxSpan() time.Duration {
	if !c.hasData {
		return 0
	}
	tol := c.tolerance()
	return c.dataEnd.Sub(c.dataStart) + 2*tol
}

// tolerance is the per-side slack beyond the data range. For a degenerate
// data range it falls back to half the default span so a single event can
// still be panned around.
func (c *Controller) tolerance() time.Duration {
	dataSpan := c.dataEnd.Sub(c.dataStart)
	if dataSpan <= 0 {
		return c.cfg.DefaultSpan.Std() / 2
	}
	return time.Duration(c.cfg.OverflowTolerance * float64(dataSpan))
}

// clampWindow shifts a candidate window back inside the tolerated bounds
// without changing its span.
func (c *Controller) clampWindow(start, end time.Time) model.ViewWindow {
	if !c.hasData {
		return model.ViewWindow{Start: start, End: end}
	}

	tol := c.tolerance()
	lo := c.dataStart.Add(-tol)
	hi := c.dataEnd.Add(tol)

	span := end.Sub(start)
	if span > hi.Sub(lo) {
		return model.ViewWindow{Start: lo, End: hi}
	}

	if start.Before(lo) {
		start = lo
		end = start.Add(span)
	}
	if end.After(hi) {
		end = hi
		start = end.Add(-span)
	}
	return model.ViewWindow{Start: start, End: end}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
