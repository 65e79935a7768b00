package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CynaCons/powertimeline-layout/internal/data/source"
	"github.com/CynaCons/powertimeline-layout/internal/data/watcher"
	"github.com/CynaCons/powertimeline-layout/internal/engine"
	"github.com/CynaCons/powertimeline-layout/internal/presentation/formatter"
	"github.com/CynaCons/powertimeline-layout/internal/presentation/render"
	"github.com/CynaCons/powertimeline-layout/internal/util"
)

var (
	watchRender bool
	watchRows   int

	watchCmd = &cobra.Command{
		Use:   "watch [flags]",
		Short: "Re-run the layout whenever the events file changes",
		Long: `watch keeps the layout live: it watches the events file, reloads it on
every write, re-runs the layout pass, and prints the result. With --render the
output is an ASCII preview of the card placements instead of a summary.

Press Ctrl+C to stop.`,
		RunE: runWatch,
	}
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchRender, "render", false,
		"Draw an ASCII preview instead of the summary output")
	watchCmd.Flags().IntVar(&watchRows, "rows", 30,
		"Grid height in rows for --render")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if eventsPath == "" {
		return fmt.Errorf("--events is required for watch")
	}

	eng, err := setupEngine()
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(expandPath(eventsPath))
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", eventsPath, err)
	}
	defer fw.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := emitPass(eng); err != nil {
		return err
	}

	for {
		select {
		case fe, ok := <-fw.Events():
			if !ok {
				return nil
			}
			util.LogDebugf("Events file changed: %s %s", fe.Operation, fe.Path)
			// Writers often replace the file in several syscalls; give the
			// last one a moment to land before reloading.
			time.Sleep(50 * time.Millisecond)
			events, err := source.LoadEvents(expandPath(eventsPath))
			if errors.Is(err, source.ErrNoEvents) {
				util.LogWarnf("Events file drained, laying out an empty timeline")
				events = nil
			} else if err != nil {
				util.LogWarnf("Reload failed, keeping previous snapshot: %v", err)
				continue
			}
			eng.SetEvents(events)
			if err := emitPass(eng); err != nil {
				return err
			}
		case <-sigCh:
			util.LogInfo("Watch stopped")
			return nil
		}
	}
}

func emitPass(eng *engine.Engine) error {
	snap := eng.FitAll()
	if watchRender {
		out := render.NewRenderer(0, watchRows).Render(snap, eng.Viewport())
		fmt.Fprint(os.Stdout, out)
		return nil
	}
	f, err := formatter.New(outputFormat, os.Stdout, formatter.Options{Telemetry: withTelemetry})
	if err != nil {
		return err
	}
	return f.Format(snap)
}
