package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/CynaCons/powertimeline-layout/internal/engine"
)

type JSONFormatter struct {
	w    io.Writer
	opts Options
}

func NewJSONFormatter(w io.Writer, opts Options) *JSONFormatter {
	return &JSONFormatter{w: w, opts: opts}
}

func (f *JSONFormatter) Format(snap *engine.Snapshot) error {
	var payload any = snap
	if !f.opts.Telemetry {
		// Strip the telemetry block unless asked for it.
		payload = struct {
			Window     any `json:"window"`
			Placements any `json:"placements"`
			Minimap    any `json:"minimap"`
		}{snap.Window, snap.Placements, snap.Minimap}
	}

	data, err := sonic.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(f.w, string(data))
	return err
}
