package degrade

import (
	"math"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/layout/capacity"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// Plan is the chosen rendering for one half-column: a uniform card type for
// every visible member, plus an overflow badge when not all members fit.
type Plan struct {
	Cluster      model.Cluster
	CardType     model.CardType
	VisibleCount int
	HiddenCount  int
	HasOverflow  bool
}

// Engine picks a density per half-column by monotonic downgrade: try full,
// then compact, then titleOnly, stop at the first that holds every member,
// fall through to a "+N" badge for whatever cannot be shown.
type Engine struct {
	cfg     *config.LayoutConfig
	planner *capacity.Planner
}

// New creates an engine over one pass's capacity planner.
func New(cfg *config.LayoutConfig, planner *capacity.Planner) *Engine {
	return &Engine{cfg: cfg, planner: planner}
}

// PlanAll plans every cluster in order and returns the coordination events
// recorded for anchors whose half-column overflowed.
func (e *Engine) PlanAll(clusters []model.Cluster) ([]Plan, []model.CoordinationEvent) {
	if len(clusters) == 0 {
		return nil, nil
	}

	plans := make([]Plan, len(clusters))
	for i, cl := range clusters {
		plans[i] = e.planOne(cl)
	}

	events := e.coordinate(plans)
	return plans, events
}

func (e *Engine) planOne(cl model.Cluster) Plan {
	n := cl.Count()

	// Monotonic downgrade search. A single-event cluster lands on full here
	// whenever capacity allows, so it is never artificially degraded.
	for _, ct := range model.DegradationOrder {
		if e.planner.Capacity(cl.Side, ct) >= n {
			return Plan{Cluster: cl, CardType: ct, VisibleCount: n}
		}
	}

	// Overflow: keep titleOnly cards for as many members as still fit next
	// to the badge, hide the rest behind it.
	visible := e.visibleBesideBadge(cl.Side)
	if visible > n {
		visible = n
	}

	util.LogDebugf("cluster %s overflows: %d visible, %d hidden", cl.ID, visible, n-visible)
	return Plan{
		Cluster:      cl,
		CardType:     model.CardTitleOnly,
		VisibleCount: visible,
		HiddenCount:  n - visible,
		HasOverflow:  true,
	}
}

// visibleBesideBadge is how many titleOnly cards fit once the badge itself
// has claimed its slot. Never negative, so a too-short viewport yields a
// badge-only half-column.
func (e *Engine) visibleBesideBadge(side model.Side) int {
	available := e.planner.AvailablePx(side) - e.cfg.BadgeHeightPx - e.cfg.InterCardMarginPx
	unit := e.cfg.TitleCardHeightPx + e.cfg.InterCardMarginPx
	if available <= 0 || unit <= 0 {
		return 0
	}
	n := int(math.Floor((available + e.cfg.InterCardMarginPx) / unit))
	if n < 0 {
		return 0
	}
	return n
}

// coordinate ties together the above/below decisions at each overflowing
// anchor. When the opposite neighbor still shows spacious full cards right
// beside an overflowing half-column, it is stepped down to compact so the
// two sides do not clash; either way the joint decision is recorded.
func (e *Engine) coordinate(plans []Plan) []model.CoordinationEvent {
	var events []model.CoordinationEvent

	for i := range plans {
		if !plans[i].HasOverflow {
			continue
		}

		j := nearestOpposite(plans, i)
		applied := false
		if j >= 0 && plans[j].CardType == model.CardFull && !plans[j].HasOverflow {
			plans[j].CardType = model.CardCompact
			applied = true
			util.LogDebugf("coordination: cluster %s stepped down to compact beside overflowing %s",
				plans[j].Cluster.ID, plans[i].Cluster.ID)
		}

		above, below := plans[i].CardType, plans[i].CardType
		if j >= 0 {
			if plans[i].Cluster.Side == model.SideAbove {
				below = plans[j].CardType
			} else {
				above = plans[j].CardType
			}
		}

		events = append(events, model.CoordinationEvent{
			ClusterID:           plans[i].Cluster.ID,
			HasOverflow:         true,
			AboveCardType:       above,
			BelowCardType:       below,
			CoordinationApplied: applied,
		})
	}

	return events
}

// nearestOpposite finds the plan on the other side of the axis whose anchor
// sits closest to plans[i], or -1 when the whole timeline is single-sided.
func nearestOpposite(plans []Plan, i int) int {
	side := plans[i].Cluster.Side
	best := -1
	bestDist := math.Inf(1)
	for j := range plans {
		if plans[j].Cluster.Side == side {
			continue
		}
		dist := math.Abs(plans[j].Cluster.AnchorX - plans[i].Cluster.AnchorX)
		if dist < bestDist {
			bestDist = dist
			best = j
		}
	}
	return best
}
