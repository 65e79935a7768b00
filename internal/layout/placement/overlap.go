package placement

import (
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

// Overlaps reports whether two placement rectangles intersect. Shared edges
// do not count as overlap.
func Overlaps(a, b model.Placement) bool {
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// ScanOverlaps is the debug-mode check over a whole emitted set. It returns
// every offending index pair; production passes rely on construction
// guarantees instead of calling this.
func ScanOverlaps(placements []model.Placement) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			if Overlaps(placements[i], placements[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
