package render

import (
	"strings"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// Renderer draws a layout snapshot as a character grid for terminal preview.
// Pixel coordinates are scaled down to cells; cards become boxes labelled with
// their event ID, overflow badges become "+N" markers.
type Renderer struct {
	cols int
	rows int
}

// NewRenderer builds a renderer with the given grid size. Non-positive
// dimensions fall back to the terminal width and a 30-row grid.
func NewRenderer(cols, rows int) *Renderer {
	if cols <= 0 {
		cols = sharedSizer.GetMaxWidth()
	}
	if rows <= 0 {
		rows = 30
	}
	return &Renderer{cols: cols, rows: rows}
}

// Render scales the snapshot's placements from viewport pixels into the grid
// and returns the drawn frame.
func (r *Renderer) Render(snap *engine.Snapshot, vp model.Viewport) string {
	grid := make([][]rune, r.rows)
	for y := range grid {
		grid[y] = make([]rune, r.cols)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	scaleX := float64(r.cols) / vp.Width
	scaleY := float64(r.rows) / vp.Height

	// Axis through the vertical middle; cards drawn afterwards win the cell.
	axisRow := r.rows / 2
	for x := 0; x < r.cols; x++ {
		grid[axisRow][x] = '─'
	}

	for _, p := range snap.Placements {
		r.drawPlacement(grid, p, scaleX, scaleY)
	}

	var sb strings.Builder
	sb.Grow((r.cols + 1) * (r.rows + 2))
	sb.WriteString(sharedSizer.TruncateString(r.caption(snap), r.cols))
	sb.WriteByte('\n')
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) caption(snap *engine.Snapshot) string {
	return util.FormatDate(snap.Window.Start) + " → " + util.FormatDate(snap.Window.End) +
		" (" + util.FormatSpan(snap.Window.Span()) + ")"
}

func (r *Renderer) drawPlacement(grid [][]rune, p model.Placement, scaleX, scaleY float64) {
	x0 := clampCell(int(p.X*scaleX), r.cols)
	x1 := clampCell(int(p.Right()*scaleX), r.cols)
	y0 := clampCell(int(p.Y*scaleY), r.rows)
	y1 := clampCell(int(p.Bottom()*scaleY), r.rows)

	label := p.EventID
	if p.CardType == model.CardMulti {
		label = "+" + util.FormatCount(p.HiddenCount)
	}

	if x1-x0 < 2 || y1-y0 < 1 {
		// Too small for a box, drop a single marker.
		grid[y0][x0] = '▪'
		return
	}

	for x := x0; x <= x1; x++ {
		grid[y0][x] = '─'
		grid[y1][x] = '─'
	}
	for y := y0; y <= y1; y++ {
		grid[y][x0] = '│'
		grid[y][x1] = '│'
	}
	grid[y0][x0], grid[y0][x1] = '┌', '┐'
	grid[y1][x0], grid[y1][x1] = '└', '┘'

	label = sharedSizer.TruncateString(label, x1-x0-1)
	row := grid[y0+(y1-y0)/2]
	for i, ch := range []rune(label) {
		if x0+1+i >= x1 {
			break
		}
		row[x0+1+i] = ch
	}
}

func clampCell(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max-1 {
		return max - 1
	}
	return v
}
