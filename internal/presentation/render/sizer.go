package render

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/CynaCons/powertimeline-layout/internal/util"
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct {
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateString trims a string to a display width, appending an ellipsis
// when anything was cut.
func (i Sizer) TruncateString(s string, width int) string {
	if i.displayWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "…")
}

func (i Sizer) GetMaxWidth() int {
	// Get terminal width with fallback
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 60 {
		termWidth = 100 // Default fallback
	}

	maxWidth := termWidth - 2 // Leave some margin
	if maxWidth > 160 {
		maxWidth = 160
	}

	util.LogDebugf("GetMaxWidth %d", maxWidth)
	return maxWidth
}
