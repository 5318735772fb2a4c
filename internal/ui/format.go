package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

var weekdayNames = [geometry.DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayName returns the name of a day index, or "?" when out of range.
func WeekdayName(day int) string {
	if !geometry.ValidDay(day) {
		return "?"
	}
	return weekdayNames[day]
}

// PrintOpts configures block printing behavior.
type PrintOpts struct {
	Verbose      bool // Show full notes
	ShowSchedule bool // Show the owning schedule's name
	MaxNoteWidth int  // Maximum note width (0 = auto)
}

// CalcMaxNoteWidth calculates the maximum note width based on options.
func (o PrintOpts) CalcMaxNoteWidth(defaultWidth int) int {
	if o.MaxNoteWidth > 0 {
		return o.MaxNoteWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// Base: "  * 1a2b3c4d  12:00AM - 12:00AM  " = ~33 chars
	// Schedule suffix: "  [name]" = ~14 chars
	overhead := 33
	if o.ShowSchedule {
		overhead += 14
	}
	available := termWidth() - overhead
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// BlockRow is one printable block.
type BlockRow struct {
	Block    block.TimeBlock
	Schedule string
	Note     string
}

// PrintBlockRows prints blocks grouped by day under a header per day.
// Rows must be ordered by day.
func PrintBlockRows(w io.Writer, rows []BlockRow, opts PrintOpts) {
	maxNoteWidth := opts.CalcMaxNoteWidth(40)
	currentDay := -1
	for _, r := range rows {
		if r.Block.DayIndex != currentDay {
			if currentDay != -1 {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintf(w, "=== %s ===\n", formatHeader(WeekdayName(r.Block.DayIndex)))
			currentDay = r.Block.DayIndex
		}
		_, _ = fmt.Fprintln(w, formatBlockRow(r, opts, maxNoteWidth))
	}
}

func formatBlockRow(r BlockRow, opts PrintOpts, maxNoteWidth int) string {
	marker := " "
	if r.Note != "" {
		marker = formatNote("*")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s  %-19s", marker, formatMuted(shortID(r.Block.ID)), r.Block.Label())
	if opts.ShowSchedule {
		fmt.Fprintf(&b, "  %s", formatSchedule("["+r.Schedule+"]"))
	}
	if r.Note != "" {
		fmt.Fprintf(&b, "  %s", formatMuted(truncate(r.Note, maxNoteWidth)))
	}
	return strings.TrimRight(b.String(), " ")
}

// FormatDuration formats a number of intervals as hours and minutes.
func FormatDuration(intervals int) string {
	minutes := intervals * geometry.IntervalMinutes
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// shortIDLen is how many id characters the block listing shows.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// truncate shortens s to at most width cells, ending with "...".
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "...")
}
