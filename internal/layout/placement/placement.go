package placement

import (
	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/layout/capacity"
	"github.com/CynaCons/powertimeline-layout/internal/layout/degrade"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// Emitter converts half-column plans into the flat list of render
// instructions the presentation layer consumes. Non-overlap is enforced by
// construction: each half-column is a single vertical stack, and the
// clusterer keeps anchors at least one pitch apart horizontally.
type Emitter struct {
	cfg     *config.LayoutConfig
	planner *capacity.Planner
}

// NewEmitter creates an emitter for one pass over the planner's viewport.
func NewEmitter(cfg *config.LayoutConfig, planner *capacity.Planner) *Emitter {
	return &Emitter{cfg: cfg, planner: planner}
}

// Emit stacks every half-column from the axis outward, visible cards first
// and the overflow badge outermost, and returns one record per element. A
// half-column too short for even the badge emits nothing; the hidden count
// stays visible through telemetry.
func (e *Emitter) Emit(plans []degrade.Plan) []model.Placement {
	axisY := e.planner.AxisY()
	var out []model.Placement

	for _, plan := range plans {
		cl := plan.Cluster
		cardH := e.cfg.CardHeight(plan.CardType)
		cardX := cl.AnchorX - e.cfg.CardWidthPx/2

		// offset accumulates the outward distance consumed so far, starting
		// past the axis gap.
		offset := e.cfg.AxisGapPx

		for i := 0; i < plan.VisibleCount; i++ {
			out = append(out, model.Placement{
				EventID:   cl.Events[i].ID,
				ClusterID: cl.ID,
				X:         cardX,
				Y:         e.stackY(cl.Side, axisY, offset, cardH),
				Width:     e.cfg.CardWidthPx,
				Height:    cardH,
				CardType:  plan.CardType,
				Side:      cl.Side,
			})
			offset += cardH + e.cfg.InterCardMarginPx
		}

		if plan.HasOverflow {
			if !e.planner.BadgeFits(cl.Side) {
				util.LogDebugf("cluster %s: no room for the overflow badge, %d events stay hidden",
					cl.ID, plan.HiddenCount)
				continue
			}
			out = append(out, model.Placement{
				ClusterID:   cl.ID,
				X:           cl.AnchorX - e.cfg.BadgeWidthPx/2,
				Y:           e.stackY(cl.Side, axisY, offset, e.cfg.BadgeHeightPx),
				Width:       e.cfg.BadgeWidthPx,
				Height:      e.cfg.BadgeHeightPx,
				CardType:    model.CardMulti,
				Side:        cl.Side,
				HiddenCount: plan.HiddenCount,
			})
		}
	}

	return out
}

// stackY returns the top y-coordinate of an element whose near edge sits
// offset pixels away from the axis on the given side.
func (e *Emitter) stackY(side model.Side, axisY, offset, height float64) float64 {
	if side == model.SideAbove {
		return axisY - offset - height
	}
	return axisY + offset
}
