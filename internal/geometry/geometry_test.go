package geometry

import "testing"

func TestPixelToInterval(t *testing.T) {
	m := DefaultMetrics()

	tests := []struct {
		name      string
		pointerY  float64
		columnTop float64
		want      int
	}{
		{"first pixel of body", 30, 0, 0},
		{"inside first interval", 39.9, 0, 0},
		{"second interval", 40, 0, 1},
		{"2am", 30 + 8*10 + 5, 0, 8},
		{"column offset", 130 + 15, 100, 1},
		{"above body clamps to zero", 10, 0, 0},
		{"far above clamps to zero", -500, 0, 0},
		{"past end of day is not clamped", 30 + 100*10, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.PixelToInterval(tt.pointerY, tt.columnTop)
			if got != tt.want {
				t.Errorf("PixelToInterval(%v, %v) = %d, want %d", tt.pointerY, tt.columnTop, got, tt.want)
			}
		})
	}
}

func TestPixelOffset(t *testing.T) {
	m := DefaultMetrics()

	if got := m.PixelOffset(30+85, 0, 8); got != 5 {
		t.Errorf("expected offset 5, got %v", got)
	}
	if got := m.PixelOffset(30+75, 0, 8); got != -5 {
		t.Errorf("expected offset -5, got %v", got)
	}
	// Clamped at the top of the body.
	if got := m.PixelOffset(0, 0, 2); got != -20 {
		t.Errorf("expected offset -20, got %v", got)
	}
}

func TestIntervalRangeToPixelBox(t *testing.T) {
	m := DefaultMetrics()

	box := m.IntervalRangeToPixelBox(8, 12)
	if box.Top != 110 || box.Height != 40 {
		t.Errorf("expected {110 40}, got %+v", box)
	}

	reversed := m.IntervalRangeToPixelBox(12, 8)
	if reversed != box {
		t.Errorf("reversed range should give the same box, got %+v", reversed)
	}

	empty := m.IntervalRangeToPixelBox(5, 5)
	if empty.Height != 0 || empty.Top != 80 {
		t.Errorf("expected zero-height box at 80, got %+v", empty)
	}
}

func TestIntervalToClockLabel(t *testing.T) {
	tests := []struct {
		interval int
		want     string
	}{
		{0, "12:00AM"},
		{1, "12:15AM"},
		{4, "1:00AM"},
		{8, "2:00AM"},
		{12, "3:00AM"},
		{47, "11:45AM"},
		{48, "12:00PM"},
		{53, "1:15PM"},
		{95, "11:45PM"},
		{96, "12:00AM"},
	}

	for _, tt := range tests {
		if got := IntervalToClockLabel(tt.interval); got != tt.want {
			t.Errorf("IntervalToClockLabel(%d) = %q, want %q", tt.interval, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(8, 12); got != "2:00AM - 3:00AM" {
		t.Errorf("unexpected range %q", got)
	}
	if got := FormatRange(56, 64); got != "2:00PM - 4:00PM" {
		t.Errorf("unexpected range %q", got)
	}
	if got := FormatRange(64, 56); got != "2:00PM - 4:00PM" {
		t.Errorf("reversed bounds should be ordered, got %q", got)
	}
}

// Every valid range maps back into itself through its midpoint pixel.
func TestRoundTripMidpoint(t *testing.T) {
	for _, m := range []Metrics{DefaultMetrics(), {IntervalPx: 7, HeaderPx: 3}, {IntervalPx: 1, HeaderPx: 1}} {
		for start := 0; start < IntervalsPerDay; start++ {
			for end := start + 1; end <= IntervalsPerDay; end++ {
				box := m.IntervalRangeToPixelBox(start, end)
				got := m.PixelToInterval(box.Mid(), 0)
				if got < start || got >= end {
					t.Fatalf("metrics %+v: midpoint of [%d,%d) mapped to %d", m, start, end, got)
				}
			}
		}
	}
}

func TestClampInterval(t *testing.T) {
	if ClampInterval(-3) != 0 {
		t.Error("negative should clamp to 0")
	}
	if ClampInterval(200) != IntervalsPerDay-1 {
		t.Error("overflow should clamp to last interval")
	}
	if ClampInterval(40) != 40 {
		t.Error("valid interval should be unchanged")
	}
}

func TestUniformColumns(t *testing.T) {
	cols := UniformColumns{Top: 0, Left: 6, Width: 10, Height: 990}

	b, ok := cols.ColumnBounds(2)
	if !ok {
		t.Fatal("expected column 2 to be laid out")
	}
	if b.Left != 26 || b.Width != 10 {
		t.Errorf("unexpected bounds %+v", b)
	}
	if _, ok := cols.ColumnBounds(7); ok {
		t.Error("column 7 does not exist")
	}

	if day, ok := DayAt(cols, 27); !ok || day != 2 {
		t.Errorf("DayAt(27) = %d, %v", day, ok)
	}
	if _, ok := DayAt(cols, 2); ok {
		t.Error("x=2 is in the time label column, not a day")
	}
	if _, ok := DayAt(nil, 27); ok {
		t.Error("nil provider should never resolve a day")
	}
}
