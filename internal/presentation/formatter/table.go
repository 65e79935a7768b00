package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

type TableFormatter struct {
	w       io.Writer
	opts    Options
	headers []string
}

func NewTableFormatter(w io.Writer, opts Options) *TableFormatter {
	return &TableFormatter{
		w:    w,
		opts: opts,
		headers: []string{
			"Event", "Cluster", "Side", "Card", "X", "Y", "W", "H",
		},
	}
}

func (f *TableFormatter) Format(snap *engine.Snapshot) error {
	fmt.Fprintf(f.w, "Window: %s → %s (%s)\n",
		util.FormatDate(snap.Window.Start),
		util.FormatDate(snap.Window.End),
		util.FormatSpan(snap.Window.Span()))

	rows := make([][]string, 0, len(snap.Placements))
	for _, p := range snap.Placements {
		rows = append(rows, f.rowFor(p))
	}

	widths := f.calculateColumnWidths(rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "bottom")

	if f.opts.Telemetry {
		f.printTelemetry(snap.Telemetry)
	}

	return nil
}

func (f *TableFormatter) rowFor(p model.Placement) []string {
	label := p.EventID
	if p.CardType == model.CardMulti {
		label = "+" + util.FormatCount(p.HiddenCount)
	}
	return []string{
		label,
		p.ClusterID,
		string(p.Side),
		string(p.CardType),
		util.FormatPx(p.X),
		util.FormatPx(p.Y),
		util.FormatPx(p.Width),
		util.FormatPx(p.Height),
	}
}

// calculateColumnWidths determines the width for each column based on content
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Fprint(f.w, left)
	for i, width := range widths {
		fmt.Fprint(f.w, strings.Repeat(separator, width+2))
		if i < len(widths)-1 {
			fmt.Fprint(f.w, middle)
		}
	}
	fmt.Fprintln(f.w, right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Fprint(f.w, "│")
	for i, value := range values {
		pad := widths[i] - runewidth.StringWidth(value)
		if pad < 0 {
			pad = 0
		}
		if i < 4 {
			// Textual columns are left-aligned
			fmt.Fprintf(f.w, " %s%s │", value, strings.Repeat(" ", pad))
		} else {
			fmt.Fprintf(f.w, " %s%s │", strings.Repeat(" ", pad), value)
		}
	}
	fmt.Fprintln(f.w)
}

func (f *TableFormatter) printTelemetry(t model.Telemetry) {
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "Events: %s  Clusters: %s  Avg/cluster: %.1f  Pitch: %s\n",
		util.FormatCount(t.Events.Total),
		util.FormatCount(t.Groups.Count),
		t.Dispatch.AvgEventsPerCluster,
		util.FormatPx(t.Dispatch.GroupPitchPx))
	fmt.Fprintf(f.w, "Above: %d visible / %d hidden  Below: %d visible / %d hidden\n",
		t.HalfColumns.Above.Visible, t.HalfColumns.Above.Hidden,
		t.HalfColumns.Below.Visible, t.HalfColumns.Below.Hidden)
	fmt.Fprintf(f.w, "Overflow: %d of %d clusters  Mixed types: %d  Coordinated: %d\n",
		t.Degradation.ClustersWithOverflow,
		t.Degradation.TotalClusters,
		t.Degradation.ClustersWithMixedTypes,
		len(t.Degradation.ClusterCoordinationEvents))
}
