// Package geometry maps pointer coordinates on the week grid to 15-minute
// intervals and back.
package geometry

import (
	"fmt"
	"math"
)

const (
	// IntervalMinutes is the duration of one grid interval.
	IntervalMinutes = 15
	// IntervalsPerDay is 24 hours * 4 intervals per hour = 96 intervals.
	IntervalsPerDay = 96
	// DaysPerWeek is the number of day columns (Monday=0 ... Sunday=6).
	DaysPerWeek = 7

	// DefaultIntervalPx is the pixel height of one interval (40px per hour).
	DefaultIntervalPx = 10
	// DefaultHeaderPx is the height of the day header above the grid body.
	DefaultHeaderPx = 30
	// DefaultEdgeThresholdPx is how close to a block edge a press must land to resize.
	DefaultEdgeThresholdPx = 5
)

// Metrics holds the fixed pixel sizes of the grid.
type Metrics struct {
	IntervalPx      float64 // Height of one 15-minute interval
	HeaderPx        float64 // Day header height above the grid body
	EdgeThresholdPx float64 // Resize grab distance from a block edge
}

// DefaultMetrics returns the metrics used by the browser layout (40px per hour).
func DefaultMetrics() Metrics {
	return Metrics{
		IntervalPx:      DefaultIntervalPx,
		HeaderPx:        DefaultHeaderPx,
		EdgeThresholdPx: DefaultEdgeThresholdPx,
	}
}

// MoveThreshold is the hysteresis band around a gesture origin, in pixels.
// Pointer movement smaller than this never changes the drag direction.
func (m Metrics) MoveThreshold() float64 {
	return m.IntervalPx / 4
}

// bodyOffset returns the pointer offset into the grid body, clamped to >= 0.
func (m Metrics) bodyOffset(pointerY, columnTop float64) float64 {
	return math.Max(0, pointerY-columnTop-m.HeaderPx)
}

// PixelToInterval converts a pointer Y coordinate to an interval index.
// Pointers above the grid body clamp to interval 0. The upper bound is not
// clamped; callers decide how to treat positions past the end of the day.
func (m Metrics) PixelToInterval(pointerY, columnTop float64) int {
	return int(math.Floor(m.bodyOffset(pointerY, columnTop) / m.IntervalPx))
}

// PixelOffset returns the signed pixel distance between the pointer and the
// top edge of the origin interval.
func (m Metrics) PixelOffset(pointerY, columnTop float64, origin int) float64 {
	return m.bodyOffset(pointerY, columnTop) - float64(origin)*m.IntervalPx
}

// Box is a vertical pixel extent relative to the column top edge.
type Box struct {
	Top    float64
	Height float64
}

// Bottom returns the bottom edge of the box.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Mid returns the vertical midpoint of the box.
func (b Box) Mid() float64 {
	return b.Top + b.Height/2
}

// IntervalRangeToPixelBox converts an interval range to a pixel box.
// The range may be given in either order.
func (m Metrics) IntervalRangeToPixelBox(start, end int) Box {
	lo := min(start, end)
	span := end - start
	if span < 0 {
		span = -span
	}
	return Box{
		Top:    float64(lo)*m.IntervalPx + m.HeaderPx,
		Height: float64(span) * m.IntervalPx,
	}
}

// IntervalToClockLabel formats an interval index as a 12-hour clock label,
// e.g. 0 -> "12:00AM", 53 -> "1:15PM". Hours wrap at 24 so the end of the
// day (interval 96) renders as midnight again.
func IntervalToClockLabel(interval int) string {
	totalMinutes := interval * IntervalMinutes
	hour := (totalMinutes / 60) % 24
	if hour < 0 {
		hour += 24
	}
	minutes := totalMinutes % 60
	if minutes < 0 {
		minutes += 60
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d%s", h12, minutes, period)
}

// FormatRange formats an interval range as "<start> - <end>", ordering the
// bounds so the earlier label comes first.
func FormatRange(start, end int) string {
	return IntervalToClockLabel(min(start, end)) + " - " + IntervalToClockLabel(max(start, end))
}

// ClampInterval limits an interval index to a valid position inside a day.
func ClampInterval(interval int) int {
	return max(0, min(interval, IntervalsPerDay-1))
}

// ValidDay reports whether dayIndex names a day column.
func ValidDay(dayIndex int) bool {
	return dayIndex >= 0 && dayIndex < DaysPerWeek
}
