package source

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// ErrNoEvents marks a readable file that yielded no usable events. Callers
// may lay out an empty timeline instead of failing.
var ErrNoEvents = errors.New("no valid events")

// LoadEvents reads one event per line from a JSONL file and returns a clean
// snapshot: invalid lines skipped, duplicate IDs dropped (first wins), and
// the result sorted by date. The engine treats the snapshot as immutable.
func LoadEvents(path string) ([]model.Event, error) {
	util.LogDebug(fmt.Sprintf("Start loading events: %s", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer file.Close()

	var events []model.Event
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev model.Event
		if err := sonic.Unmarshal(line, &ev); err != nil {
			util.LogDebug(fmt.Sprintf("Skip invalid JSON line %s:%d - %v", path, lineCount, err))
			continue
		}
		if ev.ID == "" || ev.Date.IsZero() {
			util.LogDebug(fmt.Sprintf("Skip incomplete event %s:%d", path, lineCount))
			continue
		}
		if seen[ev.ID] {
			util.LogDebug(fmt.Sprintf("Skip duplicate event id %q at %s:%d", ev.ID, path, lineCount))
			continue
		}
		seen[ev.ID] = true
		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan events file: %w", err)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEvents)
	}

	SortEvents(events)

	util.LogDebug(fmt.Sprintf("Loaded %d events from %d lines", len(events), lineCount))
	return events, nil
}

// SortEvents orders events by date, breaking ties by ID so passes over the
// same snapshot are deterministic.
func SortEvents(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date.Time) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date.Time)
	})
}

// Bounds returns the [min, max] date range of the snapshot. ok is false for
// an empty snapshot.
func Bounds(events []model.Event) (start, end time.Time, ok bool) {
	if len(events) == 0 {
		return time.Time{}, time.Time{}, false
	}

	start, end = events[0].Date.Time, events[0].Date.Time
	for _, ev := range events[1:] {
		if ev.Date.Before(start) {
			start = ev.Date.Time
		}
		if ev.Date.After(end) {
			end = ev.Date.Time
		}
	}
	return start, end, true
}
