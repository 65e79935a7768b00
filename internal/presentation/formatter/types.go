package formatter

import (
	"fmt"
	"io"

	"github.com/CynaCons/powertimeline-layout/internal/engine"
)

// Formatter renders one layout snapshot for human or machine consumption.
type Formatter interface {
	Format(snap *engine.Snapshot) error
}

// Options tune what the formatters include.
type Options struct {
	// Telemetry includes the diagnostic snapshot in the output.
	Telemetry bool
}

// New returns the formatter for the given output kind.
func New(kind string, w io.Writer, opts Options) (Formatter, error) {
	switch kind {
	case "table":
		return NewTableFormatter(w, opts), nil
	case "json":
		return NewJSONFormatter(w, opts), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", kind)
	}
}
