package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
)

func writeEvents(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func TestLoadEventsSortedByDate(t *testing.T) {
	path := writeEvents(t, `{"id":"b","date":"2024-03-02","title":"second"}
{"id":"a","date":"2024-03-01","title":"first"}
{"id":"c","date":"2024-03-03","title":"third"}
`)

	events, err := LoadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
	assert.Equal(t, "c", events[2].ID)
}

func TestLoadEventsSkipsInvalidLines(t *testing.T) {
	path := writeEvents(t, `{"id":"a","date":"2024-03-01","title":"keep"}
not json at all
{"id":"","date":"2024-03-01","title":"missing id"}
{"id":"x","date":"garbage","title":"bad date"}

{"id":"b","date":"2024-03-02","title":"also keep"}
`)

	events, err := LoadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}

func TestLoadEventsDropsDuplicateIDs(t *testing.T) {
	path := writeEvents(t, `{"id":"a","date":"2024-03-01","title":"first"}
{"id":"a","date":"2024-03-05","title":"dup"}
`)

	events, err := LoadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "first", events[0].Title)
}

func TestLoadEventsEmptyFile(t *testing.T) {
	path := writeEvents(t, "")

	_, err := LoadEvents(path)
	assert.ErrorIs(t, err, ErrNoEvents)
}

func TestLoadEventsOnlyInvalidLines(t *testing.T) {
	path := writeEvents(t, "not json\n{\"title\":\"no id\"}\n")

	_, err := LoadEvents(path)
	assert.ErrorIs(t, err, ErrNoEvents)
}

func TestLoadEventsMissingFile(t *testing.T) {
	_, err := LoadEvents(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestSortEventsTieBreaksByID(t *testing.T) {
	d := model.EventDate{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	events := []model.Event{
		{ID: "z", Date: d},
		{ID: "a", Date: d},
		{ID: "m", Date: d},
	}

	SortEvents(events)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "m", events[1].ID)
	assert.Equal(t, "z", events[2].ID)
}

func TestBounds(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, ok := Bounds(nil)
		assert.False(t, ok)
	})

	t.Run("unsorted input", func(t *testing.T) {
		events := []model.Event{
			{ID: "b", Date: model.EventDate{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}},
			{ID: "a", Date: model.EventDate{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
			{ID: "c", Date: model.EventDate{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}},
		}

		start, end, ok := Bounds(events)
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), end)
	})
}
