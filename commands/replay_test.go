package commands

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/layout/placement"
)

func replayEngine(t *testing.T) *engine.Engine {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := make([]model.Event, 12)
	for i := range events {
		events[i] = model.Event{
			ID:   "ev-" + string(rune('a'+i)),
			Date: model.EventDate{Time: base.AddDate(0, 0, i*3)},
		}
	}
	return engine.New(config.Default(), model.Viewport{Width: 1000, Height: 600}, events)
}

func TestGestureRecordDecoding(t *testing.T) {
	lines := []string{
		`{"op":"zoom","steps":2,"pivot":500}`,
		`{"op":"pan","delta":-120}`,
		`{"op":"fitall"}`,
		`{"op":"setwindow","start":"2024-01-01T00:00:00Z","end":"2024-02-01T00:00:00Z"}`,
		`{"op":"minimap","x":0.2,"width":0.3}`,
		`{"op":"resize","width":800,"height":600}`,
	}

	eng := replayEngine(t)
	for _, line := range lines {
		var rec gestureRecord
		require.NoError(t, sonic.UnmarshalString(line, &rec))

		snap, err := applyGesture(eng, rec)
		require.NoError(t, err, "gesture %s", rec.Op)
		require.NotNil(t, snap)
		assert.Empty(t, placement.ScanOverlaps(snap.Placements), "gesture %s", rec.Op)
	}
}

func TestApplyGestureUnknownOp(t *testing.T) {
	eng := replayEngine(t)

	_, err := applyGesture(eng, gestureRecord{Op: "teleport"})
	assert.Error(t, err)
}

func TestApplyGestureInvalidWindow(t *testing.T) {
	eng := replayEngine(t)

	_, err := applyGesture(eng, gestureRecord{Op: "setwindow", Start: "garbage", End: "2024-02-01T00:00:00Z"})
	assert.Error(t, err)
}
