package cluster

import (
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

// SidePolicy decides which side of the axis each cluster renders on. The
// exact assignment is a balancing policy, not a correctness requirement, so
// it stays pluggable behind this interface.
type SidePolicy interface {
	Name() string
	Assign(clusters []model.Cluster)
}

// AlternatePolicy assigns sides by strict alternation over the left-to-right
// cluster sequence: cluster 0 above, cluster 1 below, and so on. The first
// cluster rendering above also covers the single-event timeline case.
type AlternatePolicy struct{}

func (AlternatePolicy) Name() string { return "alternate" }

func (AlternatePolicy) Assign(clusters []model.Cluster) {
	for i := range clusters {
		if i%2 == 0 {
			clusters[i].Side = model.SideAbove
		} else {
			clusters[i].Side = model.SideBelow
		}
	}
}

// WeightedPolicy assigns each cluster to whichever side currently carries
// fewer events, breaking ties above. It trades the clean visual rhythm of
// alternation for better balance on lopsided timelines.
type WeightedPolicy struct{}

func (WeightedPolicy) Name() string { return "weighted" }

func (WeightedPolicy) Assign(clusters []model.Cluster) {
	var above, below int
	for i := range clusters {
		if above <= below {
			clusters[i].Side = model.SideAbove
			above += clusters[i].Count()
		} else {
			clusters[i].Side = model.SideBelow
			below += clusters[i].Count()
		}
	}
}
