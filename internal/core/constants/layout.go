package constants

import "time"

const (
	// View window limits
	DefaultMinSpan = 30 * time.Second
	DefaultSpan    = 14 * 24 * time.Hour

	// Bounds may exceed the data range by this fraction of the data span
	// per side, which keeps zoom/pan from feeling sticky at the edges.
	DefaultOverflowTolerance = 0.05

	// Zoom geometry: one wheel step scales the span by this factor when
	// zooming in, by its inverse when zooming out.
	ZoomStepFactor = 0.8

	// Cluster pitch
	DefaultMinClusterPitchPx = 80.0

	// Card geometry. Card and badge widths stay at or below the cluster
	// pitch so stacks at neighboring anchors can never touch.
	DefaultCardWidthPx         = 76.0
	DefaultFullCardHeightPx    = 96.0
	DefaultCompactCardHeightPx = 56.0
	DefaultTitleCardHeightPx   = 28.0
	DefaultBadgeWidthPx        = 44.0
	DefaultBadgeHeightPx       = 22.0
	DefaultInterCardMarginPx   = 6.0

	// Gap between the axis line and the innermost card on each side.
	DefaultAxisGapPx = 10.0
)
