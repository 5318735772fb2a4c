package tui

import (
	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

// Layout maps terminal cells to the virtual pixel space the gesture engine
// works in. One body row is one interval, interval_px virtual pixels tall,
// and a pointer inside a cell is reported at the cell's vertical centre.
type Layout struct {
	Width  int
	Height int

	ColW     int // Width of one day column, including its trailing gap
	GridLeft int // Terminal column of day 0
	BodyTop  int // Terminal row of the first visible interval
	BodyRows int // Visible intervals

	metrics geometry.Metrics
}

func newLayout(width, height int, m geometry.Metrics) Layout {
	gridLeft := sidebarWidth + timeColWidth
	if width <= 0 {
		width = gridLeft + geometry.DaysPerWeek*defaultColW
	}
	if height <= 0 {
		height = headerHeight + 24 + footerHeight
	}

	colW := max(minColWidth, (width-gridLeft)/geometry.DaysPerWeek)
	bodyRows := height - headerHeight - footerHeight
	bodyRows = max(1, min(bodyRows, geometry.IntervalsPerDay))

	return Layout{
		Width:    width,
		Height:   height,
		ColW:     colW,
		GridLeft: gridLeft,
		BodyTop:  headerHeight,
		BodyRows: bodyRows,
		metrics:  m,
	}
}

// ColumnBounds implements geometry.ColumnProvider in virtual pixels.
func (l Layout) ColumnBounds(dayIndex int) (geometry.Bounds, bool) {
	if !geometry.ValidDay(dayIndex) || l.ColW <= 0 {
		return geometry.Bounds{}, false
	}
	return geometry.Bounds{
		Top:    0,
		Left:   float64(l.GridLeft + dayIndex*l.ColW),
		Width:  float64(l.ColW),
		Height: l.metrics.HeaderPx + float64(geometry.IntervalsPerDay)*l.metrics.IntervalPx,
	}, true
}

// FooterTop returns the first footer row.
func (l Layout) FooterTop() int {
	return l.BodyTop + l.BodyRows
}

// MaxScroll returns the largest scroll offset that still fills the body.
func (l Layout) MaxScroll() int {
	return max(0, geometry.IntervalsPerDay-l.BodyRows)
}

// PointerX maps a terminal column to a virtual x coordinate.
func (l Layout) PointerX(col int) float64 {
	return float64(col) + 0.5
}

// PointerY maps a terminal row to a virtual y coordinate. Rows above the
// body map to negative offsets, which the geometry clamps to interval 0.
func (l Layout) PointerY(row, scroll int) float64 {
	m := l.metrics
	return float64(row-l.BodyTop+scroll)*m.IntervalPx + m.IntervalPx/2 + m.HeaderPx
}

// IntervalAt returns the interval shown on a body row.
func (l Layout) IntervalAt(row, scroll int) (int, bool) {
	if row < l.BodyTop || row >= l.FooterTop() {
		return 0, false
	}
	iv := row - l.BodyTop + scroll
	if iv < 0 || iv >= geometry.IntervalsPerDay {
		return 0, false
	}
	return iv, true
}

// DayAt returns the day column under a terminal column.
func (l Layout) DayAt(col int) (int, bool) {
	return geometry.DayAt(l, l.PointerX(col))
}

// SidebarIndex returns the schedule listed on a sidebar row.
func (l Layout) SidebarIndex(col, row int) (int, bool) {
	if col < 0 || col >= sidebarWidth || row < headerHeight || row >= l.FooterTop() {
		return 0, false
	}
	return row - headerHeight, true
}

// control is a clickable button drawn on a block's top row.
type control int

const (
	controlNone control = iota
	controlNote
	controlDelete
	controlLock
)

func (c control) String() string {
	switch c {
	case controlNote:
		return "note"
	case controlDelete:
		return "delete"
	case controlLock:
		return "unlock"
	default:
		return ""
	}
}

// controlSuffixW is the width of the button strip on a block's top row.
const controlSuffixW = 4

// hasControls reports whether columns are wide enough to draw buttons.
func (l Layout) hasControls() bool {
	return l.ColW-1 >= controlSuffixW+4
}

// ControlAt returns the button under a terminal column on b's top row.
// Blocks of the selected schedule carry note and delete buttons; others
// carry a lock button that selects their schedule.
func (l Layout) ControlAt(col int, b block.TimeBlock, selected bool) control {
	if !l.hasControls() {
		return controlNone
	}
	off := col - (l.GridLeft + b.DayIndex*l.ColW)
	switch {
	case selected && off == l.ColW-2:
		return controlDelete
	case selected && off == l.ColW-4:
		return controlNote
	case !selected && off == l.ColW-2:
		return controlLock
	default:
		return controlNone
	}
}
