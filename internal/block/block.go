// Package block defines the core domain types for weekgrid.
package block

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/weekgrid/internal/geometry"
)

// Validation errors.
var (
	ErrEmptyName   = errors.New("schedule name cannot be empty")
	ErrInvalidDay  = errors.New("day index must be between 0 and 6")
	ErrInvalidSpan = errors.New("block end must be after start and within the day")
)

// Domain errors.
var (
	ErrNoScheduleSelected = errors.New("no schedule selected")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrBlockNotFound      = errors.New("time block not found")
)

// PreviewID marks an in-progress block that has not been committed yet.
const PreviewID = "preview"

// TimeBlock is a scheduled interval range on one day of the week.
type TimeBlock struct {
	ID         string
	ScheduleID string
	DayIndex   int // 0=Monday, 6=Sunday
	Start      int // Interval index, inclusive
	End        int // Interval index, exclusive
	Color      string
}

// Span returns the number of intervals covered by the block.
func (b TimeBlock) Span() int {
	return b.End - b.Start
}

// IsPreview reports whether the block is an uncommitted drag preview.
func (b TimeBlock) IsPreview() bool {
	return b.ID == PreviewID
}

// Normalized returns the block with ordered bounds and at least one interval.
func (b TimeBlock) Normalized() TimeBlock {
	if b.End < b.Start {
		b.Start, b.End = b.End, b.Start
	}
	if b.Start == b.End {
		b.End = b.Start + 1
	}
	return b
}

// Contains reports whether the interval falls inside the block.
func (b TimeBlock) Contains(interval int) bool {
	return interval >= b.Start && interval < b.End
}

// Validate checks that a committed block is well formed.
func (b TimeBlock) Validate() error {
	if !geometry.ValidDay(b.DayIndex) {
		return fmt.Errorf("%w: got %d", ErrInvalidDay, b.DayIndex)
	}
	if b.Start < 0 || b.End <= b.Start || b.End > geometry.IntervalsPerDay {
		return fmt.Errorf("%w: [%d,%d)", ErrInvalidSpan, b.Start, b.End)
	}
	return nil
}

// Label returns the block's clock range, e.g. "2:00PM - 4:00PM".
func (b TimeBlock) Label() string {
	return geometry.FormatRange(b.Start, b.End)
}

// Schedule is a named, colored group of time blocks.
type Schedule struct {
	ID       string
	Name     string
	IsActive bool   // Visible on the grid regardless of selection
	Color    string // Accent color
	BgColor  string // Fill color
}

// Note is a free-text annotation attached to one time block.
type Note struct {
	TimeBlockID string
	Content     string
}
