package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
)

func testSnapshot(t *testing.T, count int) *engine.Snapshot {
	t.Helper()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	events := make([]model.Event, count)
	for i := range events {
		events[i] = model.Event{
			ID:    string(rune('a' + i%26)),
			Date:  model.EventDate{Time: base.AddDate(0, 0, i)},
			Title: "Event",
		}
	}
	eng := engine.New(config.Default(), model.Viewport{Width: 1000, Height: 600}, events)
	return eng.Layout()
}

func TestNewSelectsFormatter(t *testing.T) {
	var buf bytes.Buffer

	for _, kind := range []string{"table", "json", "summary"} {
		f, err := New(kind, &buf, Options{})
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := New("csv", &buf, Options{})
	assert.Error(t, err)
}

func TestTableFormatterOutput(t *testing.T) {
	snap := testSnapshot(t, 5)

	var buf bytes.Buffer
	f := NewTableFormatter(&buf, Options{})
	require.NoError(t, f.Format(snap))

	out := buf.String()
	assert.Contains(t, out, "Window:")
	assert.Contains(t, out, "│ Event")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "┘")
	for _, p := range snap.Placements {
		assert.Contains(t, out, p.ClusterID)
	}
	assert.NotContains(t, out, "Overflow:")
}

func TestTableFormatterTelemetry(t *testing.T) {
	snap := testSnapshot(t, 5)

	var buf bytes.Buffer
	f := NewTableFormatter(&buf, Options{Telemetry: true})
	require.NoError(t, f.Format(snap))

	assert.Contains(t, buf.String(), "Overflow:")
	assert.Contains(t, buf.String(), "Above:")
}

func TestTableFormatterAlignedBorders(t *testing.T) {
	snap := testSnapshot(t, 8)

	var buf bytes.Buffer
	f := NewTableFormatter(&buf, Options{})
	require.NoError(t, f.Format(snap))

	// Every border and data line must share the same rendered width.
	var width int
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if !strings.HasPrefix(line, "│") && !strings.HasPrefix(line, "┌") &&
			!strings.HasPrefix(line, "├") && !strings.HasPrefix(line, "└") {
			continue
		}
		n := len([]rune(line))
		if width == 0 {
			width = n
		}
		assert.Equal(t, width, n, "line %q", line)
	}
}

func TestJSONFormatterShape(t *testing.T) {
	snap := testSnapshot(t, 3)

	var buf bytes.Buffer
	f := NewJSONFormatter(&buf, Options{})
	require.NoError(t, f.Format(snap))

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "window")
	assert.Contains(t, decoded, "placements")
	assert.Contains(t, decoded, "minimap")
	assert.NotContains(t, decoded, "telemetry")
}

func TestJSONFormatterWithTelemetry(t *testing.T) {
	snap := testSnapshot(t, 3)

	var buf bytes.Buffer
	f := NewJSONFormatter(&buf, Options{Telemetry: true})
	require.NoError(t, f.Format(snap))

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "telemetry")
}

func TestSummaryFormatterOutput(t *testing.T) {
	snap := testSnapshot(t, 10)

	var buf bytes.Buffer
	f := NewSummaryFormatter(&buf)
	require.NoError(t, f.Format(snap))

	out := buf.String()
	assert.Contains(t, out, "Window")
	assert.Contains(t, out, "10 total")
	assert.Contains(t, out, "Minimap")
}
