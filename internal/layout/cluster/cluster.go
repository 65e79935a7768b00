package cluster

import (
	"fmt"
	"time"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/core/timescale"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// Clusterer groups events whose projected positions sit closer than the
// minimum pitch, so anchors never crowd each other horizontally.
type Clusterer struct {
	pitchPx float64
	policy  SidePolicy
}

// New creates a clusterer with the given anchor pitch. A nil policy falls
// back to strict alternation.
func New(pitchPx float64, policy SidePolicy) *Clusterer {
	if policy == nil {
		policy = AlternatePolicy{}
	}
	return &Clusterer{pitchPx: pitchPx, policy: policy}
}

// PitchPx returns the configured minimum anchor pitch.
func (c *Clusterer) PitchPx() float64 {
	return c.pitchPx
}

// Cluster walks date-sorted events left to right, starting a new cluster
// whenever the gap to the previous event's projected x exceeds the pitch,
// then merges clusters whose anchors would still crowd each other and
// assigns sides through the policy.
func (c *Clusterer) Cluster(events []model.Event, scale timescale.Scale) []model.Cluster {
	if len(events) == 0 {
		return nil
	}

	groups := [][]model.Event{{events[0]}}
	prevX := scale.ToX(events[0].Date.Time)

	for _, ev := range events[1:] {
		x := scale.ToX(ev.Date.Time)
		if x-prevX > c.pitchPx {
			groups = append(groups, []model.Event{ev})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], ev)
		}
		prevX = x
	}

	// Anchors are means of member positions; means can land closer together
	// than the raw gaps did, so merge until the pitch holds between anchors.
	merged := true
	for merged {
		merged = false
		for i := 1; i < len(groups); i++ {
			if anchorX(groups[i], scale)-anchorX(groups[i-1], scale) < c.pitchPx {
				groups[i-1] = append(groups[i-1], groups[i]...)
				groups = append(groups[:i], groups[i+1:]...)
				merged = true
				break
			}
		}
	}

	clusters := make([]model.Cluster, 0, len(groups))
	for _, g := range groups {
		anchor := anchorDate(g)
		clusters = append(clusters, model.Cluster{
			ID:         clusterID(anchor, scale, c.pitchPx),
			AnchorDate: anchor,
			AnchorX:    scale.ToX(anchor),
			Events:     g,
		})
	}

	c.policy.Assign(clusters)

	util.LogDebugf("clustered %d events into %d groups (pitch %.0fpx, policy %s)",
		len(events), len(clusters), c.pitchPx, c.policy.Name())
	return clusters
}

// anchorDate is the mean of the member dates, which projects to the mean of
// the member positions under a linear scale.
func anchorDate(events []model.Event) time.Time {
	base := events[0].Date.Time
	var sum time.Duration
	for _, ev := range events {
		sum += ev.Date.Sub(base)
	}
	return base.Add(sum / time.Duration(len(events)))
}

func anchorX(events []model.Event, scale timescale.Scale) float64 {
	return scale.ToX(anchorDate(events))
}

// clusterID derives a best-effort stable ID from the anchor's date bucket,
// so hover/selection keeps referring to the same cluster across small
// viewport changes.
func clusterID(anchor time.Time, scale timescale.Scale, pitchPx float64) string {
	bucket := time.Duration(float64(scale.DurationPerPx()) * pitchPx)
	if bucket <= 0 {
		return fmt.Sprintf("c-%d", anchor.Unix())
	}
	return fmt.Sprintf("c-%d", anchor.UnixNano()/int64(bucket))
}

// CleanAlternation reports whether the realized side assignment is a strict
// above/below alternation over the left-to-right sequence.
func CleanAlternation(clusters []model.Cluster) bool {
	for i, cl := range clusters {
		want := model.SideAbove
		if i%2 == 1 {
			want = model.SideBelow
		}
		if cl.Side != want {
			return false
		}
	}
	return true
}
