package model

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Event is one dated record on the timeline. Events are owned by the
// external store; the engine only reads a snapshot per layout pass.
type Event struct {
	ID          string    `json:"id"`
	Date        EventDate `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// EventDate wraps time.Time so that both full RFC3339 timestamps and plain
// calendar dates decode from the same field.
type EventDate struct {
	time.Time
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func (d *EventDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("event date must be a string: %w", err)
	}

	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("unrecognized event date %q", s)
}

func (d EventDate) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// Viewport is the fixed pixel area the timeline renders into.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ChromeMargins are exclusion bands reserved for UI chrome (axis labels,
// zoom controls, breadcrumbs, minimap) supplied by the presentation layer.
type ChromeMargins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// ViewWindow is the visible date range. Ephemeral UI state, owned by the
// viewport controller.
type ViewWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Span returns the window duration.
func (w ViewWindow) Span() time.Duration {
	return w.End.Sub(w.Start)
}

// Valid reports whether the window is representable: finite, ordered bounds.
func (w ViewWindow) Valid() bool {
	if w.Start.IsZero() || w.End.IsZero() {
		return false
	}
	return w.Start.Before(w.End)
}

// Side marks which half of the axis a cluster renders on.
type Side string

const (
	SideAbove Side = "above"
	SideBelow Side = "below"
)

// Opposite returns the other side of the axis.
func (s Side) Opposite() Side {
	if s == SideAbove {
		return SideBelow
	}
	return SideAbove
}

// CardType is the visual density of a rendered card, ordered by descending
// space cost. CardMulti is the collapsed "+N" overflow badge, layered in
// addition to a uniform set of degraded cards.
type CardType string

const (
	CardFull      CardType = "full"
	CardCompact   CardType = "compact"
	CardTitleOnly CardType = "titleOnly"
	CardMulti     CardType = "multi"
)

// DegradationOrder lists renderable densities from most to least detailed.
// The downgrade search walks this list and stops at the first type that fits.
var DegradationOrder = []CardType{CardFull, CardCompact, CardTitleOnly}

// DetailRank returns a comparable density rank, higher meaning more detail.
// CardMulti ranks below every real card type.
func (c CardType) DetailRank() int {
	switch c {
	case CardFull:
		return 3
	case CardCompact:
		return 2
	case CardTitleOnly:
		return 1
	default:
		return 0
	}
}

// Cluster groups events whose projected positions sit closer than the
// minimum pitch. Rebuilt from scratch on every pass; the ID is derived from
// the anchor date bucket so selection survives small viewport changes.
type Cluster struct {
	ID         string    `json:"id"`
	AnchorDate time.Time `json:"anchorDate"`
	AnchorX    float64   `json:"anchorX"`
	Side       Side      `json:"side"`
	Events     []Event   `json:"events"`
}

// Count returns the cluster's member count.
func (c Cluster) Count() int {
	return len(c.Events)
}

// Placement is one render instruction for the presentation layer. Overflow
// badges carry an empty EventID, CardMulti type and a HiddenCount.
type Placement struct {
	EventID     string   `json:"eventId,omitempty"`
	ClusterID   string   `json:"clusterId"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	CardType    CardType `json:"cardType"`
	Side        Side     `json:"side"`
	HiddenCount int      `json:"hiddenCount,omitempty"`
}

// Right returns the exclusive right edge of the placement rectangle.
func (p Placement) Right() float64 { return p.X + p.Width }

// Bottom returns the exclusive bottom edge of the placement rectangle.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// MinimapWindow is the view-window rectangle in minimap space, both values
// in [0,1] relative to the full data range.
type MinimapWindow struct {
	XRatio     float64 `json:"xRatio"`
	WidthRatio float64 `json:"widthRatio"`
}

// FileEvent is a change notice from the event-file watcher.
type FileEvent struct {
	Path      string
	Operation string
}
