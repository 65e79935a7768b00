package formatter

import (
	"fmt"
	"io"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// SummaryFormatter prints a one-screen overview of a layout pass.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

func (f *SummaryFormatter) Format(snap *engine.Snapshot) error {
	t := snap.Telemetry

	fmt.Fprintf(f.w, "Window      %s → %s (%s)\n",
		util.FormatDate(snap.Window.Start),
		util.FormatDate(snap.Window.End),
		util.FormatSpan(snap.Window.Span()))
	fmt.Fprintf(f.w, "Events      %s total, %s clusters (avg %.1f per cluster)\n",
		util.FormatCount(t.Events.Total),
		util.FormatCount(t.Groups.Count),
		t.Dispatch.AvgEventsPerCluster)
	fmt.Fprintf(f.w, "Above       %d events, %d visible, %d hidden\n",
		t.HalfColumns.Above.Events, t.HalfColumns.Above.Visible, t.HalfColumns.Above.Hidden)
	fmt.Fprintf(f.w, "Below       %d events, %d visible, %d hidden\n",
		t.HalfColumns.Below.Events, t.HalfColumns.Below.Visible, t.HalfColumns.Below.Hidden)
	fmt.Fprintf(f.w, "Degradation %d/%d clusters overflowing, %d mixed, %d coordinated\n",
		t.Degradation.ClustersWithOverflow,
		t.Degradation.TotalClusters,
		t.Degradation.ClustersWithMixedTypes,
		len(t.Degradation.ClusterCoordinationEvents))
	fmt.Fprintf(f.w, "Cards       %s placed", util.FormatCount(f.countCards(snap.Placements)))
	if badges := f.countBadges(snap.Placements); badges > 0 {
		fmt.Fprintf(f.w, ", %d overflow badges", badges)
	}
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "Minimap     x=%.3f width=%.3f\n",
		snap.Minimap.XRatio, snap.Minimap.WidthRatio)

	return nil
}

func (f *SummaryFormatter) countCards(placements []model.Placement) int {
	n := 0
	for _, p := range placements {
		if p.CardType != model.CardMulti {
			n++
		}
	}
	return n
}

func (f *SummaryFormatter) countBadges(placements []model.Placement) int {
	n := 0
	for _, p := range placements {
		if p.CardType == model.CardMulti {
			n++
		}
	}
	return n
}
