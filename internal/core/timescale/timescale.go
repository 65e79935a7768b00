package timescale

import (
	"time"
)

// Scale is the bidirectional mapping between dates and pixel x-coordinates
// for one (window, leftMargin, usableWidth) triple. Both directions are pure;
// the controller guarantees the window span is non-zero before a Scale is
// ever constructed.
type Scale struct {
	start       time.Time
	end         time.Time
	leftMargin  float64
	usableWidth float64
}

// New builds a scale for the given window and usable pixel band.
func New(start, end time.Time, leftMargin, usableWidth float64) Scale {
	return Scale{
		start:       start,
		end:         end,
		leftMargin:  leftMargin,
		usableWidth: usableWidth,
	}
}

// ToX projects a date to its pixel x-coordinate, linear in elapsed time.
func (s Scale) ToX(t time.Time) float64 {
	span := s.end.Sub(s.start)
	if span <= 0 {
		return s.leftMargin
	}
	frac := float64(t.Sub(s.start)) / float64(span)
	return s.leftMargin + s.usableWidth*frac
}

// ToTime inverts ToX, mapping a pixel back to a date.
func (s Scale) ToTime(x float64) time.Time {
	if s.usableWidth <= 0 {
		return s.start
	}
	frac := (x - s.leftMargin) / s.usableWidth
	return s.start.Add(time.Duration(frac * float64(s.end.Sub(s.start))))
}

// DurationPerPx returns the time covered by one pixel at this scale.
func (s Scale) DurationPerPx() time.Duration {
	if s.usableWidth <= 0 {
		return 0
	}
	return time.Duration(float64(s.end.Sub(s.start)) / s.usableWidth)
}

// LeftMargin returns the left edge of the usable band.
func (s Scale) LeftMargin() float64 { return s.leftMargin }

// UsableWidth returns the width of the usable band.
func (s Scale) UsableWidth() float64 { return s.usableWidth }
