package capacity

import (
	"math"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

// Planner answers how many cards of each density fit in a half-column given
// the viewport height minus the reserved chrome bands. It only reports
// capacity; the degradation engine owns the policy of what to do with it.
type Planner struct {
	cfg      *config.LayoutConfig
	viewport model.Viewport
}

// NewPlanner creates a planner for one pass.
func NewPlanner(cfg *config.LayoutConfig, viewport model.Viewport) *Planner {
	return &Planner{cfg: cfg, viewport: viewport}
}

// AxisY is the y-coordinate of the axis line: the vertical center of the
// band left between the chrome margins.
func (p *Planner) AxisY() float64 {
	return p.cfg.Margins.Top + (p.viewport.Height-p.cfg.Margins.Top-p.cfg.Margins.Bottom)/2
}

// AvailablePx returns the vertical pixel budget of one side of the axis,
// excluding the axis gap. Never negative.
func (p *Planner) AvailablePx(side model.Side) float64 {
	var available float64
	if side == model.SideAbove {
		available = p.AxisY() - p.cfg.Margins.Top
	} else {
		available = p.viewport.Height - p.AxisY() - p.cfg.Margins.Bottom
	}
	available -= p.cfg.AxisGapPx
	if available < 0 {
		return 0
	}
	return available
}

// Capacity returns how many cards of the given type stack into one side,
// honoring the inter-card margin between neighbors.
func (p *Planner) Capacity(side model.Side, ct model.CardType) int {
	height := p.cfg.CardHeight(ct)
	if height <= 0 {
		return 0
	}

	available := p.AvailablePx(side)
	// n cards consume n*height + (n-1)*margin.
	n := int(math.Floor((available + p.cfg.InterCardMarginPx) / (height + p.cfg.InterCardMarginPx)))
	if n < 0 {
		return 0
	}
	return n
}

// BadgeFits reports whether even the overflow badge alone has room on the
// given side.
func (p *Planner) BadgeFits(side model.Side) bool {
	return p.AvailablePx(side) >= p.cfg.BadgeHeightPx
}
