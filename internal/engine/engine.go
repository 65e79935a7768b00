package engine

import (
	"time"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/core/viewport"
	"github.com/CynaCons/powertimeline-layout/internal/data/source"
	"github.com/CynaCons/powertimeline-layout/internal/layout/capacity"
	"github.com/CynaCons/powertimeline-layout/internal/layout/cluster"
	"github.com/CynaCons/powertimeline-layout/internal/layout/degrade"
	"github.com/CynaCons/powertimeline-layout/internal/layout/minimap"
	"github.com/CynaCons/powertimeline-layout/internal/layout/placement"
)

// Snapshot is the immutable output of one layout pass. A newer pass simply
// supersedes an older one; nothing in here is shared or mutated afterwards.
type Snapshot struct {
	Window     model.ViewWindow    `json:"window"`
	Placements []model.Placement   `json:"placements"`
	Minimap    model.MinimapWindow `json:"minimap"`
	Telemetry  model.Telemetry     `json:"telemetry"`
}

// Engine runs the synchronous layout pipeline: scale projection, clustering,
// capacity planning, degradation, placement, minimap mapping. Every gesture
// triggers one full pass built from scratch; the engine performs no internal
// debouncing, batching passes per frame is the presentation layer's job.
type Engine struct {
	cfg        *config.LayoutConfig
	controller *viewport.Controller
	policy     cluster.SidePolicy

	events    []model.Event
	dataStart time.Time
	dataEnd   time.Time
	hasData   bool
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithSidePolicy overrides the default alternation side policy.
func WithSidePolicy(p cluster.SidePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// New builds an engine over an event snapshot and fits the window to it.
func New(cfg *config.LayoutConfig, vp model.Viewport, events []model.Event, opts ...Option) *Engine {
	cfg.Normalize()

	e := &Engine{
		cfg:        cfg,
		controller: viewport.NewController(cfg, vp),
		policy:     cluster.AlternatePolicy{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.SetEvents(events)
	e.controller.FitAll()
	return e
}

// SetEvents replaces the event snapshot, re-sorting it and refreshing the
// data bounds. The current window is kept; callers wanting to re-frame call
// FitAll afterwards.
func (e *Engine) SetEvents(events []model.Event) {
	snapshot := make([]model.Event, len(events))
	copy(snapshot, events)
	source.SortEvents(snapshot)
	e.events = snapshot

	start, end, ok := source.Bounds(snapshot)
	e.dataStart, e.dataEnd, e.hasData = start, end, ok
	if ok {
		e.controller.SetDataBounds(start, end)
	} else {
		e.controller.ClearDataBounds()
	}
}

// Window returns the current view window.
func (e *Engine) Window() model.ViewWindow {
	return e.controller.Window()
}

// Viewport returns the current viewport geometry.
func (e *Engine) Viewport() model.Viewport {
	return e.controller.Viewport()
}

// Layout runs one full pipeline pass over the current (events, viewport)
// state and returns a fresh snapshot.
func (e *Engine) Layout() *Snapshot {
	scale := e.controller.Scale()
	vp := e.controller.Viewport()

	clusterer := cluster.New(e.cfg.MinClusterPitchPx, e.policy)
	clusters := e.visible(clusterer.Cluster(e.events, scale), vp.Width)

	planner := capacity.NewPlanner(e.cfg, vp)
	plans, coordEvents := degrade.New(e.cfg, planner).PlanAll(clusters)
	placements := placement.NewEmitter(e.cfg, planner).Emit(plans)

	var mm model.MinimapWindow
	if e.hasData {
		mm = minimap.New(e.dataStart, e.dataEnd).WindowRect(e.controller.Window())
	} else {
		mm = model.MinimapWindow{XRatio: 0, WidthRatio: 1}
	}

	return &Snapshot{
		Window:     e.controller.Window(),
		Placements: placements,
		Minimap:    mm,
		Telemetry:  buildTelemetry(len(e.events), clusters, plans, coordEvents, e.cfg.MinClusterPitchPx),
	}
}

// visible drops clusters whose anchor sits more than one pitch outside the
// viewport; their cards could never reach the visible area.
func (e *Engine) visible(clusters []model.Cluster, width float64) []model.Cluster {
	out := clusters[:0]
	for _, cl := range clusters {
		if cl.AnchorX < -e.cfg.MinClusterPitchPx || cl.AnchorX > width+e.cfg.MinClusterPitchPx {
			continue
		}
		out = append(out, cl)
	}
	return out
}

// Zoom applies a zoom gesture and recomputes. On a rejected gesture the
// previous window is retained and the pass still runs, so the caller always
// gets a valid snapshot.
func (e *Engine) Zoom(steps, pivotPx float64) (*Snapshot, error) {
	err := e.controller.Zoom(steps, pivotPx)
	return e.Layout(), err
}

// PanBy shifts the window by a pixel delta and recomputes.
func (e *Engine) PanBy(deltaPx float64) (*Snapshot, error) {
	err := e.controller.Pan(deltaPx)
	return e.Layout(), err
}

// FitAll frames the full data range and recomputes.
func (e *Engine) FitAll() *Snapshot {
	e.controller.FitAll()
	return e.Layout()
}

// SetWindow replaces the window (minimap drag/click) and recomputes.
func (e *Engine) SetWindow(start, end time.Time) (*Snapshot, error) {
	err := e.controller.SetWindow(start, end)
	return e.Layout(), err
}

// DragMinimap maps a dragged minimap rectangle back onto the window.
func (e *Engine) DragMinimap(rect model.MinimapWindow) (*Snapshot, error) {
	if !e.hasData {
		return e.Layout(), nil
	}
	w := minimap.New(e.dataStart, e.dataEnd).RectToWindow(rect)
	return e.SetWindow(w.Start, w.End)
}

// Resize updates the pixel viewport and recomputes.
func (e *Engine) Resize(width, height float64) (*Snapshot, error) {
	err := e.controller.Resize(width, height)
	return e.Layout(), err
}
