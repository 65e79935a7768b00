package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/CynaCons/powertimeline-layout/internal/core/config"
	"github.com/CynaCons/powertimeline-layout/internal/core/model"
	"github.com/CynaCons/powertimeline-layout/internal/data/source"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/presentation/formatter"
	"github.com/CynaCons/powertimeline-layout/internal/presentation/render"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

var (
	// Logging related
	debug bool

	// Input data
	eventsPath string
	configPath string

	// Viewport geometry
	viewWidth  float64
	viewHeight float64

	// Window framing
	windowStart string
	windowEnd   string

	// Output related
	outputFormat  string
	withTelemetry bool

	rootCmd = &cobra.Command{
		Use:   "powertimeline-layout [flags]",
		Short: "Deterministic timeline layout engine",
		Long: `powertimeline-layout computes overlap-free card placements for a timeline
of events: it projects event dates onto a pixel axis, clusters events that sit
closer than the cluster pitch, degrades card density when a half-column runs
out of vertical room, and emits the resulting placements with telemetry.

Examples:
  powertimeline-layout --events events.jsonl                     # Fit-all layout, table output
  powertimeline-layout --events events.jsonl --output json       # Machine-readable snapshot
  powertimeline-layout --events events.jsonl --telemetry         # Include diagnostics
  powertimeline-layout --events events.jsonl \
      --window-start 2024-01-01T00:00:00Z \
      --window-end 2024-02-01T00:00:00Z                          # Explicit window`,
		RunE: runLayout,
	}
)

const (
	defaultLogFile    = "~/.powertimeline-layout/logs/app.log"
	defaultConfigFile = "~/.powertimeline-layout/config.yaml"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVarP(&eventsPath, "events", "e", "",
		"Path to the events file (JSON lines, one event per line)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile,
		"Path to the layout configuration file")

	// Viewport geometry
	rootCmd.PersistentFlags().Float64Var(&viewWidth, "width", 1200,
		"Viewport width in pixels")
	rootCmd.PersistentFlags().Float64Var(&viewHeight, "height", 800,
		"Viewport height in pixels")

	// Window framing
	rootCmd.Flags().StringVar(&windowStart, "window-start", "",
		"Window start (RFC3339); requires --window-end")
	rootCmd.Flags().StringVar(&windowEnd, "window-end", "",
		"Window end (RFC3339); requires --window-start")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, summary, render)")
	rootCmd.PersistentFlags().BoolVar(&withTelemetry, "telemetry", false,
		"Include the telemetry block in the output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runLayout(cmd *cobra.Command, args []string) error {
	eng, err := setupEngine()
	if err != nil {
		return err
	}

	var snap *engine.Snapshot
	if windowStart != "" || windowEnd != "" {
		start, end, err := parseWindowFlags()
		if err != nil {
			return err
		}
		snap, err = eng.SetWindow(start, end)
		if err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
	} else {
		snap = eng.Layout()
	}

	if outputFormat == "render" {
		out := render.NewRenderer(0, 0).Render(snap, eng.Viewport())
		fmt.Fprint(os.Stdout, out)
		return nil
	}

	f, err := formatter.New(outputFormat, os.Stdout, formatter.Options{Telemetry: withTelemetry})
	if err != nil {
		return err
	}
	return f.Format(snap)
}

// setupEngine initializes logging, loads config and events, and produces an
// engine fitted to the data. Shared by the root, replay, and watch commands.
func setupEngine() (*engine.Engine, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)

	cfg, err := config.Load(expandPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var events []model.Event
	if eventsPath != "" {
		events, err = source.LoadEvents(expandPath(eventsPath))
		switch {
		case errors.Is(err, source.ErrNoEvents):
			util.LogWarnf("No usable events in %s, laying out an empty timeline", eventsPath)
		case err != nil:
			return nil, fmt.Errorf("failed to load events: %w", err)
		default:
			util.LogInfof("Loaded %d events from %s", len(events), eventsPath)
		}
	}

	vp := model.Viewport{Width: viewWidth, Height: viewHeight}
	return engine.New(cfg, vp, events), nil
}

func parseWindowFlags() (time.Time, time.Time, error) {
	if windowStart == "" || windowEnd == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--window-start and --window-end must be given together")
	}
	start, err := time.Parse(time.RFC3339, windowStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --window-start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, windowEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --window-end: %w", err)
	}
	return start, end, nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
