package model

// Telemetry is the diagnostic snapshot rebuilt on every layout pass. It is
// returned by value from the pass and never consulted by the algorithm
// itself; consumers treat it as read-only.
type Telemetry struct {
	Events      EventStats       `json:"events"`
	Groups      GroupStats       `json:"groups"`
	Dispatch    DispatchStats    `json:"dispatch"`
	HalfColumns HalfColumnStats  `json:"halfColumns"`
	Degradation DegradationStats `json:"degradation"`
	Placement   PlacementStats   `json:"placement"`
}

type EventStats struct {
	Total int `json:"total"`
}

type GroupStats struct {
	Count int `json:"count"`
}

type DispatchStats struct {
	AvgEventsPerCluster float64 `json:"avgEventsPerCluster"`
	GroupPitchPx        float64 `json:"groupPitchPx"`
}

// SideStats aggregates one half of the axis.
type SideStats struct {
	Events   int `json:"events"`
	Clusters int `json:"clusters"`
	Visible  int `json:"visible"`
	Hidden   int `json:"hidden"`
}

type HalfColumnStats struct {
	Above SideStats `json:"above"`
	Below SideStats `json:"below"`
}

// CoordinationEvent records the joint above/below degradation decision made
// at one anchor whenever a half-column overflows.
type CoordinationEvent struct {
	ClusterID           string   `json:"clusterId"`
	HasOverflow         bool     `json:"hasOverflow"`
	AboveCardType       CardType `json:"aboveCardType"`
	BelowCardType       CardType `json:"belowCardType"`
	CoordinationApplied bool     `json:"coordinationApplied"`
}

type DegradationStats struct {
	TotalClusters             int                 `json:"totalClusters"`
	ClustersWithOverflow      int                 `json:"clustersWithOverflow"`
	ClustersWithMixedTypes    int                 `json:"clustersWithMixedTypes"`
	ClusterCoordinationEvents []CoordinationEvent `json:"clusterCoordinationEvents"`
}

type PlacementStats struct {
	AlternatingPattern bool `json:"alternatingPattern"`
}
