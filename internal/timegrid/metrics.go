// Package timegrid provides the pure coordinate model for the week
// grid: conversions between wall-clock hours, "HH:MM" strings and
// vertical pixel offsets, plus quarter-hour snapping.
package timegrid

import (
	"fmt"
	"math"
)

const (
	// DefaultStartHour is the first visible hour of a day column.
	DefaultStartHour = 7.0
	// DefaultEndHour is the hour the day column ends at.
	DefaultEndHour = 19.0
	// DefaultHourHeight is the pixel height of one hour.
	DefaultHourHeight = 60
	// DefaultHeaderHeight is the pixel height of the day header above
	// the time area of each column.
	DefaultHeaderHeight = 40
	// DefaultDurationHours is used when no duration source resolves.
	DefaultDurationHours = 2.0
	// MinBlockPixels is the rendering floor for a block's height.
	MinBlockPixels = 15
)

// Metrics holds the fixed geometry of a day column. All conversion
// methods are pure; malformed input degrades to the grid's start hour
// rather than failing.
type Metrics struct {
	StartHour    float64 // first visible hour, e.g. 7.0
	EndHour      float64 // last visible hour, e.g. 19.0
	HourHeight   int     // pixels per hour
	HeaderHeight int     // pixels above the time area
}

// NewMetrics creates Metrics with defaults applied for zero fields.
func NewMetrics(startHour, endHour float64, hourHeight int) Metrics {
	if endHour <= startHour {
		startHour = DefaultStartHour
		endHour = DefaultEndHour
	}
	if hourHeight <= 0 {
		hourHeight = DefaultHourHeight
	}
	return Metrics{
		StartHour:    startHour,
		EndHour:      endHour,
		HourHeight:   hourHeight,
		HeaderHeight: DefaultHeaderHeight,
	}
}

// HourToPixel converts a fractional hour of day to a vertical pixel
// offset within the column's time area.
func (m Metrics) HourToPixel(hour float64) float64 {
	return (hour - m.StartHour) * float64(m.HourHeight)
}

// PixelToHour converts a vertical pixel offset back to a fractional
// hour. Inverse of HourToPixel up to floating-point rounding.
func (m Metrics) PixelToHour(px float64) float64 {
	return m.StartHour + px/float64(m.HourHeight)
}

// VisibleHours returns the height of the visible window in hours.
func (m Metrics) VisibleHours() float64 {
	return m.EndHour - m.StartHour
}

// PixelHeight returns the total pixel height of the time area.
func (m Metrics) PixelHeight() int {
	return int(m.VisibleHours() * float64(m.HourHeight))
}

// ClampHour clamps an hour into the visible window.
func (m Metrics) ClampHour(h float64) float64 {
	if h < m.StartHour {
		return m.StartHour
	}
	if h > m.EndHour {
		return m.EndHour
	}
	return h
}

// Contains reports whether the hour falls inside the visible window.
func (m Metrics) Contains(h float64) bool {
	return h >= m.StartHour && h < m.EndHour
}

// TimeStringToHour converts "HH:MM" to a fractional hour. Malformed
// or absent input yields the grid's start hour: a safe default that
// keeps corrupt upstream data from breaking rendering.
func (m Metrics) TimeStringToHour(s string) float64 {
	h, ok := ParseClock(s)
	if !ok {
		return m.StartHour
	}
	return h
}

// ParseClock parses "HH:MM" strictly into a fractional hour.
func ParseClock(s string) (float64, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, false
	}
	return float64(hours) + float64(mins)/60, true
}

// HourToTimeString converts a fractional hour to "HH:MM", truncating
// to whole minutes.
func HourToTimeString(h float64) string {
	if h < 0 {
		h = 0
	}
	total := int(h*60 + 1e-6) // truncate, tolerating float representation error
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// SnapToQuarterHour rounds an hour to the nearest 0.25, ties rounding
// up. This is the interaction granularity for all drag placement.
func SnapToQuarterHour(h float64) float64 {
	return math.Floor(h*4+0.5) / 4
}
