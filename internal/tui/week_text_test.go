package tui

import (
	"testing"

	"github.com/javiermolinar/weekgrid/internal/block"
)

func TestWeekText(t *testing.T) {
	st := newTestState()
	st.Blocks = st.Blocks.
		Append(block.TimeBlock{ID: "b", ScheduleID: "work", DayIndex: 0, Start: 0, End: 2}).
		Append(block.TimeBlock{ID: "c", ScheduleID: "work", DayIndex: 6, Start: 92, End: 96})
	st.Notes["a"] = block.Note{TimeBlockID: "a", Content: "standup"}

	got := weekText(st, "work")
	want := "work\n" +
		"Mon  12:00AM - 12:30AM\n" +
		"Mon  1:00AM - 2:00AM  standup\n" +
		"Sun  11:00PM - 12:00AM\n"
	if got != want {
		t.Errorf("weekText() =\n%s\nwant\n%s", got, want)
	}
}

func TestWeekTextUnknownSchedule(t *testing.T) {
	if got := weekText(newTestState(), "missing"); got != "" {
		t.Errorf("weekText() = %q, want empty", got)
	}
}
