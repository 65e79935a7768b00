package engine

import (
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/layout/cluster"
	"github.com/CynaCons/powertimeline-layout/internal/layout/degrade"
)

// buildTelemetry assembles the diagnostic snapshot for one pass. The result
// is plain data handed to tests and debugging overlays; the pipeline never
// reads it back.
func buildTelemetry(totalEvents int, clusters []model.Cluster, plans []degrade.Plan,
	coordEvents []model.CoordinationEvent, pitchPx float64) model.Telemetry {

	t := model.Telemetry{}
	t.Events.Total = totalEvents
	t.Groups.Count = len(clusters)
	t.Dispatch.GroupPitchPx = pitchPx

	if len(clusters) > 0 {
		sum := 0
		for _, cl := range clusters {
			sum += cl.Count()
		}
		t.Dispatch.AvgEventsPerCluster = float64(sum) / float64(len(clusters))
	}

	for _, p := range plans {
		stats := &t.HalfColumns.Above
		if p.Cluster.Side == model.SideBelow {
			stats = &t.HalfColumns.Below
		}
		stats.Clusters++
		stats.Events += p.Cluster.Count()
		stats.Visible += p.VisibleCount
		stats.Hidden += p.HiddenCount

		if p.HasOverflow {
			t.Degradation.ClustersWithOverflow++
		}
	}

	t.Degradation.TotalClusters = len(plans)
	for _, ev := range coordEvents {
		if ev.AboveCardType != ev.BelowCardType {
			t.Degradation.ClustersWithMixedTypes++
		}
	}
	if coordEvents == nil {
		coordEvents = []model.CoordinationEvent{}
	}
	t.Degradation.ClusterCoordinationEvents = coordEvents

	t.Placement.AlternatingPattern = cluster.CleanAlternation(clusters)

	return t
}
