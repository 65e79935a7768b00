package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/layout/placement"
	"github.com/CynaCons/powertimeline-layout/internal/presentation/formatter"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

var (
	scriptPath    string
	verifyOverlap bool
	stepOutput    bool

	replayCmd = &cobra.Command{
		Use:   "replay [flags]",
		Short: "Replay a gesture script against the layout engine",
		Long: `replay reads a JSON-lines gesture script and applies each gesture in order,
running one layout pass per step. The final snapshot is printed in the chosen
output format.

Gesture records:
  {"op":"zoom","steps":2,"pivot":500}
  {"op":"pan","delta":-120}
  {"op":"fitall"}
  {"op":"setwindow","start":"2024-01-01T00:00:00Z","end":"2024-02-01T00:00:00Z"}
  {"op":"minimap","x":0.2,"width":0.3}
  {"op":"resize","width":800,"height":600}`,
		RunE: runReplay,
	}
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&scriptPath, "script", "s", "",
		"Path to the gesture script (JSON lines)")
	replayCmd.Flags().BoolVar(&verifyOverlap, "verify-overlap", false,
		"Scan every pass for overlapping placements and fail on the first hit")
	replayCmd.Flags().BoolVar(&stepOutput, "steps", false,
		"Print a summary line after every gesture")
	_ = replayCmd.MarkFlagRequired("script")
}

// gestureRecord is one line of a replay script. Only the fields the op needs
// are read; the rest stay zero.
type gestureRecord struct {
	Op     string  `json:"op"`
	Steps  float64 `json:"steps"`
	Pivot  float64 `json:"pivot"`
	Delta  float64 `json:"delta"`
	Start  string  `json:"start"`
	End    string  `json:"end"`
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	eng, err := setupEngine()
	if err != nil {
		return err
	}

	file, err := os.Open(expandPath(scriptPath))
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	snap := eng.Layout()
	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec gestureRecord
		if err := sonic.UnmarshalString(line, &rec); err != nil {
			return fmt.Errorf("script line %d: %w", lineNo, err)
		}

		snap, err = applyGesture(eng, rec)
		if err != nil {
			return fmt.Errorf("script line %d (%s): %w", lineNo, rec.Op, err)
		}

		if verifyOverlap {
			if pairs := placement.ScanOverlaps(snap.Placements); len(pairs) > 0 {
				a, b := snap.Placements[pairs[0][0]], snap.Placements[pairs[0][1]]
				return fmt.Errorf("script line %d (%s): placements overlap in clusters %s and %s",
					lineNo, rec.Op, a.ClusterID, b.ClusterID)
			}
		}

		if stepOutput {
			fmt.Fprintf(os.Stdout, "step %d %-9s window=%s→%s placements=%d\n",
				lineNo, rec.Op,
				util.FormatDate(snap.Window.Start), util.FormatDate(snap.Window.End),
				len(snap.Placements))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	f, err := formatter.New(outputFormat, os.Stdout, formatter.Options{Telemetry: withTelemetry})
	if err != nil {
		return err
	}
	return f.Format(snap)
}

func applyGesture(eng *engine.Engine, rec gestureRecord) (*engine.Snapshot, error) {
	switch rec.Op {
	case "zoom":
		return eng.Zoom(rec.Steps, rec.Pivot)
	case "pan":
		return eng.PanBy(rec.Delta)
	case "fitall":
		return eng.FitAll(), nil
	case "setwindow":
		start, err := time.Parse(time.RFC3339, rec.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, rec.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end: %w", err)
		}
		return eng.SetWindow(start, end)
	case "minimap":
		return eng.DragMinimap(model.MinimapWindow{XRatio: rec.X, WidthRatio: rec.Width})
	case "resize":
		return eng.Resize(rec.Width, rec.Height)
	default:
		return nil, fmt.Errorf("unknown gesture op: %s", rec.Op)
	}
}
