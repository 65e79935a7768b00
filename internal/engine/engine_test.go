package engine

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/layout/placement"
)

func spacedEvents(n int, start time.Time, step time.Duration) []model.Event {
	events := make([]model.Event, n)
	for i := range events {
		events[i] = model.Event{
			ID:    fmt.Sprintf("e%03d", i),
			Date:  model.EventDate{Time: start.Add(time.Duration(i) * step)},
			Title: fmt.Sprintf("event %d", i),
		}
	}
	return events
}

func newEngine(events []model.Event) *Engine {
	return New(config.Default(), model.Viewport{Width: 1000, Height: 600}, events)
}

// Ten events a day apart on a 1000px viewport sit ~102px apart, above the
// 80px pitch: ten distinct single-event clusters, alternating 5/5, all full.
func TestSparseEventsRenderFull(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(10, start, 24*time.Hour))

	snap := e.Layout()

	tel := snap.Telemetry
	assert.Equal(t, 10, tel.Events.Total)
	assert.Equal(t, 10, tel.Groups.Count)
	assert.Equal(t, 5, tel.HalfColumns.Above.Clusters)
	assert.Equal(t, 5, tel.HalfColumns.Below.Clusters)
	assert.True(t, tel.Placement.AlternatingPattern)
	assert.Zero(t, tel.Degradation.ClustersWithOverflow)

	require.Len(t, snap.Placements, 10)
	for _, p := range snap.Placements {
		assert.Equal(t, model.CardFull, p.CardType)
	}
	assert.Empty(t, placement.ScanOverlaps(snap.Placements))
}

// 200 events crammed into two days collapse into a handful of clusters that
// degrade to titleOnly or overflow badges, still without any overlap.
func TestDenseEventsDegrade(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(200, start, 2*24*time.Hour/200))

	snap := e.FitAll()

	tel := snap.Telemetry
	assert.Equal(t, 200, tel.Events.Total)
	assert.Greater(t, tel.Groups.Count, 0)
	assert.LessOrEqual(t, tel.Groups.Count, 12)
	assert.Greater(t, tel.Degradation.ClustersWithOverflow, 0)

	for _, p := range snap.Placements {
		assert.Contains(t, []model.CardType{model.CardTitleOnly, model.CardMulti}, p.CardType)
	}
	assert.Empty(t, placement.ScanOverlaps(snap.Placements))

	// Hidden + visible accounts for every event.
	shown := tel.HalfColumns.Above.Visible + tel.HalfColumns.Below.Visible
	hidden := tel.HalfColumns.Above.Hidden + tel.HalfColumns.Below.Hidden
	assert.Equal(t, 200, shown+hidden)
}

func TestRecomputeIsDeterministic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(50, start, 7*time.Hour))

	first, err := sonic.Marshal(e.Layout())
	require.NoError(t, err)
	second, err := sonic.Marshal(e.Layout())
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce byte-identical output")
}

func TestNoOverlapUnderRandomGestures(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(300)
		step := time.Duration(1+rng.Intn(3600*48)) * time.Second
		e := newEngine(spacedEvents(n, start, step))

		for g := 0; g < 15; g++ {
			var snap *Snapshot
			switch rng.Intn(4) {
			case 0:
				snap, _ = e.Zoom(float64(rng.Intn(7)-3), rng.Float64()*1000)
			case 1:
				snap, _ = e.PanBy(rng.Float64()*600 - 300)
			case 2:
				snap = e.FitAll()
			default:
				snap, _ = e.Resize(300+rng.Float64()*1300, 150+rng.Float64()*900)
			}

			pairs := placement.ScanOverlaps(snap.Placements)
			require.Empty(t, pairs, "trial %d gesture %d: overlapping rectangles %v", trial, g, pairs)
		}
	}
}

func TestCoordinationEventsCoverAllOverflows(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Several dense pockets spread over a year so multiple clusters overflow.
	var events []model.Event
	for pocket := 0; pocket < 6; pocket++ {
		base := start.Add(time.Duration(pocket) * 60 * 24 * time.Hour)
		for i := 0; i < 40; i++ {
			events = append(events, model.Event{
				ID:   fmt.Sprintf("p%d-e%d", pocket, i),
				Date: model.EventDate{Time: base.Add(time.Duration(i) * time.Minute)},
			})
		}
	}

	snap := newEngine(events).Layout()
	tel := snap.Telemetry

	require.Greater(t, tel.Degradation.ClustersWithOverflow, 0)
	assert.Equal(t, tel.Degradation.ClustersWithOverflow, len(tel.Degradation.ClusterCoordinationEvents))
	for _, ev := range tel.Degradation.ClusterCoordinationEvents {
		assert.True(t, ev.HasOverflow)
		assert.NotEmpty(t, ev.AboveCardType)
		assert.NotEmpty(t, ev.BelowCardType)
	}
}

func TestEmptyEventList(t *testing.T) {
	e := newEngine(nil)
	snap := e.Layout()

	assert.Empty(t, snap.Placements)
	assert.Zero(t, snap.Telemetry.Groups.Count)
	assert.True(t, snap.Window.Valid())
	assert.Equal(t, config.Default().DefaultSpan.Std(), snap.Window.Span())
	assert.Equal(t, model.MinimapWindow{XRatio: 0, WidthRatio: 1}, snap.Minimap)
}

func TestInvalidGestureStillYieldsSnapshot(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(10, start, 24*time.Hour))
	before := e.Window()

	snap, err := e.SetWindow(start.Add(time.Hour), start)
	require.Error(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, before, snap.Window, "rejected gesture must retain previous window")
	assert.Empty(t, placement.ScanOverlaps(snap.Placements))
}

func TestMinimapTracksWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(10, start, 24*time.Hour))

	snap := e.FitAll()
	assert.InDelta(t, 0.0, snap.Minimap.XRatio, 1e-9)
	assert.InDelta(t, 1.0, snap.Minimap.WidthRatio, 1e-9)

	snap, err := e.Zoom(3, 500)
	require.NoError(t, err)
	assert.Less(t, snap.Minimap.WidthRatio, 1.0)
	assert.GreaterOrEqual(t, snap.Minimap.XRatio, 0.0)
}

func TestDragMinimapRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(100, start, 24*time.Hour))

	rect := model.MinimapWindow{XRatio: 0.25, WidthRatio: 0.5}
	snap, err := e.DragMinimap(rect)
	require.NoError(t, err)

	assert.InDelta(t, rect.XRatio, snap.Minimap.XRatio, 0.01)
	assert.InDelta(t, rect.WidthRatio, snap.Minimap.WidthRatio, 0.01)
}

func TestSetEventsRefreshesBounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := newEngine(spacedEvents(10, start, 24*time.Hour))

	later := start.Add(365 * 24 * time.Hour)
	e.SetEvents(spacedEvents(5, later, 24*time.Hour))
	snap := e.FitAll()

	assert.True(t, snap.Window.Start.Equal(later))
	assert.Equal(t, 5, snap.Telemetry.Events.Total)
}

func TestDegradationMonotoneAtFixedAnchor(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	prevRank := model.CardFull.DetailRank() + 1
	// All events share one date, so they always form a single cluster whose
	// density grows with n.
	for _, n := range []int{1, 2, 3, 5, 8, 12, 20, 40, 80} {
		e := newEngine(spacedEvents(n, start, 0))
		snap := e.Layout()

		rank := model.CardMulti.DetailRank()
		for _, p := range snap.Placements {
			if p.CardType != model.CardMulti {
				rank = p.CardType.DetailRank()
				break
			}
		}
		if len(snap.Placements) == 0 {
			continue
		}
		assert.LessOrEqual(t, rank, prevRank, "raising density to %d upgraded the card type", n)
		prevRank = rank
	}
}
