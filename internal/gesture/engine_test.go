package gesture

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

// Default metrics: 10px per interval below a 30px header.
func yAt(interval int) float64 { return 30 + float64(interval)*10 + 5 }
func xAt(day int) float64      { return float64(day)*100 + 50 }

type countingCapture struct {
	acquired int
	released int
}

func (c *countingCapture) Acquire() error { c.acquired++; return nil }
func (c *countingCapture) Release()       { c.released++ }
func (c *countingCapture) held() int      { return c.acquired - c.released }

type harness struct {
	engine  *Engine
	state   *block.State
	capture *countingCapture
	notices []string
	clock   time.Time
}

func newTestState(t *testing.T) *block.State {
	t.Helper()
	st := block.NewState()
	if err := st.AddSchedule(block.Schedule{ID: "work", Name: "Work", Color: "#ff8800"}); err != nil {
		t.Fatalf("AddSchedule failed: %v", err)
	}
	if err := st.AddSchedule(block.Schedule{ID: "gym", Name: "Gym", IsActive: true, Color: "#0088ff"}); err != nil {
		t.Fatalf("AddSchedule failed: %v", err)
	}
	st.Blocks = st.Blocks.
		Append(block.TimeBlock{ID: "a", ScheduleID: "work", DayIndex: 0, Start: 4, End: 8, Color: "#ff8800"}).
		Append(block.TimeBlock{ID: "g", ScheduleID: "gym", DayIndex: 3, Start: 20, End: 24, Color: "#0088ff"})
	return st
}

func newHarness(t *testing.T, st *block.State) *harness {
	t.Helper()
	h := &harness{
		state:   st,
		capture: &countingCapture{},
		clock:   time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	ids := 0
	h.engine = NewEngine(st, Config{
		Metrics:  geometry.DefaultMetrics(),
		Bindings: DefaultBindings(),
		Columns:  geometry.UniformColumns{Width: 100, Height: 1000},
		Notifier: NotifierFunc(func(msg string) { h.notices = append(h.notices, msg) }),
		Capture:  h.capture,
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
		Now:          func() time.Time { return h.clock },
		RecentWindow: time.Second,
	})
	return h
}

func (h *harness) press(t *testing.T, ev PointerDown) Decision {
	t.Helper()
	d, err := h.engine.PointerDown(ev)
	if err != nil {
		t.Fatalf("PointerDown failed: %v", err)
	}
	return d
}

func (h *harness) release(t *testing.T) Commit {
	t.Helper()
	c, err := h.engine.PointerUp()
	if err != nil {
		t.Fatalf("PointerUp failed: %v", err)
	}
	return c
}

func TestEngine_CreateScenario(t *testing.T) {
	h := newHarness(t, newTestState(t))

	d := h.press(t, PointerDown{DayIndex: 2, X: xAt(2), Y: yAt(8), Target: TargetGrid})
	if d.Mode != ModeCreating || d.Origin != 8 {
		t.Fatalf("expected creating at 8, got %s at %d", d.Mode, d.Origin)
	}
	if b := h.engine.Session().Block; b.Start != 8 || b.End != 9 || !b.IsPreview() {
		t.Errorf("provisional block should span [8,9), got %+v", b)
	}

	// End is exclusive, so the pointer rests in interval 11 for an end of 12.
	h.engine.PointerMove(xAt(2), yAt(11))

	p := h.engine.Preview()
	if p == nil {
		t.Fatal("expected a preview while creating")
	}
	if p.Start != 8 || p.End != 12 {
		t.Errorf("preview = [%d,%d), want [8,12)", p.Start, p.End)
	}
	if want := geometry.FormatRange(8, 12); p.Label != want {
		t.Errorf("label = %q, want %q", p.Label, want)
	}
	if p.Direction != DirectionDown || !p.LabelAtBottom() {
		t.Errorf("expected downward growth, got %s", p.Direction)
	}

	c := h.release(t)
	if !c.Applied {
		t.Fatal("create commit should apply")
	}
	want := block.TimeBlock{ID: "id-1", ScheduleID: "work", DayIndex: 2, Start: 8, End: 12, Color: "#ff8800"}
	if c.Block != want {
		t.Errorf("committed %+v, want %+v", c.Block, want)
	}
	blocks := h.state.Blocks.Blocks("work")
	if len(blocks) != 2 || blocks[1] != want {
		t.Errorf("block should be appended to the selected schedule, got %+v", blocks)
	}
	if h.engine.Active() || h.engine.Preview() != nil {
		t.Error("session should be idle after commit")
	}
	if h.engine.RecentBlockID() != "id-1" {
		t.Errorf("expected recent id-1, got %q", h.engine.RecentBlockID())
	}
	h.clock = h.clock.Add(2 * time.Second)
	if h.engine.RecentBlockID() != "" {
		t.Error("recent block should expire after the window")
	}
}

func TestEngine_CreateUpward(t *testing.T) {
	h := newHarness(t, newTestState(t))

	h.press(t, PointerDown{DayIndex: 1, X: xAt(1), Y: yAt(10)})
	h.engine.PointerMove(xAt(1), yAt(6))

	p := h.engine.Preview()
	if p.Start != 6 || p.End != 10 || p.Direction != DirectionUp {
		t.Errorf("preview = [%d,%d) %s, want [6,10) up", p.Start, p.End, p.Direction)
	}
	if p.LabelAtBottom() {
		t.Error("label should sit at the top while growing upward")
	}

	c := h.release(t)
	if c.Block.Start != 6 || c.Block.End != 10 {
		t.Errorf("committed [%d,%d), want [6,10)", c.Block.Start, c.Block.End)
	}
}

func TestEngine_CreateHysteresis(t *testing.T) {
	h := newHarness(t, newTestState(t))

	// The origin line of interval 8 sits at y=110.
	h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: 111})

	for _, y := range []float64{109, 111, 112, 108.5, 110, 112.4, 107.6} {
		h.engine.PointerMove(xAt(0), y)
		s := h.engine.Session()
		if s.Direction != DirectionNone {
			t.Fatalf("jitter at y=%v flipped direction to %s", y, s.Direction)
		}
		if s.Block.Start != 8 || s.Block.End != 9 {
			t.Fatalf("jitter at y=%v changed block to [%d,%d)", y, s.Block.Start, s.Block.End)
		}
	}
}

func TestEngine_MinimumSpan(t *testing.T) {
	tests := []struct {
		name  string
		moves []float64
		start int
		end   int
	}{
		{name: "no movement", start: 8, end: 9},
		{name: "jitter only", moves: []float64{111, 109}, start: 8, end: 9},
		{name: "back to origin", moves: []float64{yAt(14), 111}, start: 8, end: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, newTestState(t))
			h.press(t, PointerDown{DayIndex: 4, X: xAt(4), Y: 111})
			for _, y := range tt.moves {
				h.engine.PointerMove(xAt(4), y)
			}
			c := h.release(t)
			if c.Block.Start != tt.start || c.Block.End != tt.end {
				t.Errorf("committed [%d,%d), want [%d,%d)", c.Block.Start, c.Block.End, tt.start, tt.end)
			}
			if c.Block.End <= c.Block.Start {
				t.Error("committed block must have end > start")
			}
		})
	}
}

func TestEngine_NoScheduleSelected(t *testing.T) {
	st := newTestState(t)
	if err := st.Select(""); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	h := newHarness(t, st)
	before := st.Blocks.Len()

	d, err := h.engine.PointerDown(PointerDown{DayIndex: 2, X: xAt(2), Y: yAt(8)})
	if !errors.Is(err, block.ErrNoScheduleSelected) {
		t.Fatalf("expected ErrNoScheduleSelected, got %v", err)
	}
	if d.Starts() || h.engine.Active() {
		t.Error("no session should start")
	}
	if len(h.notices) != 1 || h.notices[0] != SelectSchedulePrompt {
		t.Errorf("expected the select prompt, got %v", h.notices)
	}
	if st.Blocks.Len() != before {
		t.Error("no block should be created")
	}
	if h.capture.acquired != 0 {
		t.Error("capture should not be acquired")
	}
}

func TestEngine_ResizeBottomPinsStart(t *testing.T) {
	h := newHarness(t, newTestState(t))

	// Block a spans [4,8): top edge at y=70, bottom edge at y=110.
	d := h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: 108, Target: TargetBlock, BlockID: "a"})
	if d.Mode != ModeResizing || d.Edge != EdgeBottom || d.Origin != 4 {
		t.Fatalf("expected bottom resize anchored at 4, got %s %s %d", d.Mode, d.Edge, d.Origin)
	}

	for _, y := range []float64{yAt(12), yAt(1), yAt(4), yAt(20), yAt(95), 5000, yAt(15)} {
		h.engine.PointerMove(xAt(0), y)
		b := h.engine.Session().Block
		if b.Start != 4 {
			t.Fatalf("start moved to %d at y=%v", b.Start, y)
		}
		if b.End <= b.Start || b.End > geometry.IntervalsPerDay {
			t.Fatalf("invalid live span [%d,%d) at y=%v", b.Start, b.End, y)
		}
	}

	c := h.release(t)
	if !c.Applied || c.Block.ID != "a" || c.Block.Start != 4 || c.Block.End != 16 {
		t.Errorf("committed %+v, want a [4,16)", c.Block)
	}
}

func TestEngine_ResizeCollapse(t *testing.T) {
	h := newHarness(t, newTestState(t))
	h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: 108, Target: TargetBlock, BlockID: "a"})

	h.engine.PointerMove(xAt(0), yAt(1))
	s := h.engine.Session()
	if !s.Collapsed || s.Block.Start != 4 || s.Block.End != 5 {
		t.Errorf("dragging above the pinned edge should collapse to [4,5), got [%d,%d) collapsed=%v",
			s.Block.Start, s.Block.End, s.Collapsed)
	}
	if p := h.engine.Preview(); !p.Collapsed {
		t.Error("preview should report the collapsed state")
	}

	c := h.release(t)
	if c.Block.Start != 4 || c.Block.End != 5 {
		t.Errorf("committed [%d,%d), want [4,5)", c.Block.Start, c.Block.End)
	}
}

func TestEngine_ResizeTopPinsEnd(t *testing.T) {
	h := newHarness(t, newTestState(t))

	d := h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: 72, Target: TargetBlock, BlockID: "a"})
	if d.Edge != EdgeTop || d.Origin != 8 {
		t.Fatalf("expected top resize anchored at 8, got %s %d", d.Edge, d.Origin)
	}

	h.engine.PointerMove(xAt(0), yAt(1))
	if b := h.engine.Session().Block; b.Start != 1 || b.End != 8 {
		t.Errorf("expected [1,8), got [%d,%d)", b.Start, b.End)
	}
	h.engine.PointerMove(xAt(0), yAt(30))
	if s := h.engine.Session(); !s.Collapsed || s.Block.Start != 7 || s.Block.End != 8 {
		t.Errorf("expected collapsed [7,8), got [%d,%d)", s.Block.Start, s.Block.End)
	}
	h.engine.PointerMove(xAt(0), yAt(2))

	c := h.release(t)
	if c.Block.Start != 2 || c.Block.End != 8 {
		t.Errorf("committed [%d,%d), want [2,8)", c.Block.Start, c.Block.End)
	}
}

func TestEngine_RepositionScenario(t *testing.T) {
	h := newHarness(t, newTestState(t))

	d := h.press(t, PointerDown{
		DayIndex: 0, X: xAt(0), Y: yAt(6),
		Mods: Modifiers{Meta: true, Shift: true}, Target: TargetBlock, BlockID: "a",
	})
	if d.Mode != ModeRepositioning || d.Origin != 6 {
		t.Fatalf("expected reposition at 6, got %s at %d", d.Mode, d.Origin)
	}

	h.engine.PointerMove(xAt(1), yAt(10))
	s := h.engine.Session()
	if s.Origin != 10 {
		t.Errorf("origin should re-anchor to 10, got %d", s.Origin)
	}

	c := h.release(t)
	want := block.TimeBlock{ID: "a", ScheduleID: "work", DayIndex: 1, Start: 8, End: 12, Color: "#ff8800"}
	if c.Block != want {
		t.Errorf("committed %+v, want %+v", c.Block, want)
	}
	got, _, _ := h.state.Blocks.Find("work", "a")
	if got != want {
		t.Errorf("stored %+v, want %+v", got, want)
	}
	if h.state.Blocks.Len() != 2 {
		t.Error("reposition must not add blocks")
	}
}

func TestEngine_RepositionSpanInvariant(t *testing.T) {
	h := newHarness(t, newTestState(t))
	h.press(t, PointerDown{
		DayIndex: 0, X: xAt(0), Y: yAt(5),
		Mods: Modifiers{Meta: true, Shift: true}, Target: TargetBlock, BlockID: "a",
	})

	moves := []struct{ x, y float64 }{
		{xAt(0), yAt(9)}, {xAt(2), yAt(3)}, {xAt(2), -100},
		{xAt(6), yAt(95)}, {xAt(6), 9000}, {xAt(5), yAt(40)},
	}
	for _, m := range moves {
		h.engine.PointerMove(m.x, m.y)
		b := h.engine.Session().Block
		if b.Span() != 4 {
			t.Fatalf("span changed to %d after move to (%v,%v)", b.Span(), m.x, m.y)
		}
		if b.Start < 0 || b.End > geometry.IntervalsPerDay {
			t.Fatalf("block left the day: [%d,%d)", b.Start, b.End)
		}
	}

	c := h.release(t)
	if c.Block.Span() != 4 || c.Block.DayIndex != 5 {
		t.Errorf("committed %+v, want span 4 on day 5", c.Block)
	}
}

func TestEngine_DuplicateOncePerColumn(t *testing.T) {
	h := newHarness(t, newTestState(t))

	d := h.press(t, PointerDown{
		DayIndex: 0, X: xAt(0), Y: yAt(5),
		Mods: Modifiers{Meta: true}, Target: TargetBlock, BlockID: "a",
	})
	if d.Mode != ModeDuplicating {
		t.Fatalf("expected duplicating, got %s", d.Mode)
	}

	var spawned []block.TimeBlock
	for _, day := range []int{1, 0, 1, 1, 2, 1, 0} {
		if c := h.engine.PointerMove(xAt(day), yAt(5)); c != nil && c.Applied {
			spawned = append(spawned, c.Block)
		}
	}
	h.engine.LeaveColumn(1)
	if c := h.engine.EnterColumn(1); c != nil {
		t.Error("re-entering a processed column should not spawn")
	}

	if len(spawned) != 2 {
		t.Fatalf("expected 2 copies, got %d: %+v", len(spawned), spawned)
	}
	if spawned[0].DayIndex != 1 || spawned[1].DayIndex != 2 {
		t.Errorf("copies should land on days 1 and 2, got %+v", spawned)
	}
	for _, b := range spawned {
		if b.Start != 4 || b.End != 8 || b.ScheduleID != "work" || b.ID == "a" {
			t.Errorf("copy %+v should share span and schedule with a new id", b)
		}
	}
	if got := h.engine.Session().ProcessedDays(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("processed days = %v, want [1 2]", got)
	}

	c := h.release(t)
	if c.Applied {
		t.Error("duplicate release should not commit again")
	}
	if h.state.Blocks.Len() != 4 {
		t.Errorf("expected 4 blocks, got %d", h.state.Blocks.Len())
	}
	orig, _, _ := h.state.Blocks.Find("work", "a")
	if orig.DayIndex != 0 || orig.Start != 4 || orig.End != 8 {
		t.Errorf("original block moved: %+v", orig)
	}
}

func TestEngine_StaleReferenceDropped(t *testing.T) {
	h := newHarness(t, newTestState(t))
	h.press(t, PointerDown{
		DayIndex: 0, X: xAt(0), Y: yAt(6),
		Mods: Modifiers{Meta: true, Shift: true}, Target: TargetBlock, BlockID: "a",
	})
	h.engine.PointerMove(xAt(0), yAt(20))

	if _, err := h.state.DeleteBlock("a"); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	before := h.state.Blocks

	c, err := h.engine.PointerUp()
	if err != nil {
		t.Fatalf("stale commit should not error, got %v", err)
	}
	if c.Applied {
		t.Error("stale commit should be dropped")
	}
	if h.state.Blocks.Len() != before.Len() {
		t.Error("collection should be unchanged")
	}
	if h.engine.Active() || h.capture.held() != 0 {
		t.Error("session should reset and release the capture")
	}
}

func TestEngine_CaptureBalance(t *testing.T) {
	h := newHarness(t, newTestState(t))

	h.press(t, PointerDown{DayIndex: 1, X: xAt(1), Y: yAt(3)})
	if h.capture.held() != 1 {
		t.Fatalf("expected one registration, got %d", h.capture.held())
	}
	if _, err := h.engine.PointerDown(PointerDown{DayIndex: 2, X: xAt(2), Y: yAt(3)}); !errors.Is(err, ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}
	if h.capture.held() != 1 {
		t.Errorf("second press must not register again, held=%d", h.capture.held())
	}
	h.release(t)

	h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: 108, Target: TargetBlock, BlockID: "a"})
	if !h.engine.Cancel() {
		t.Error("Cancel should end the active session")
	}
	if h.engine.Cancel() {
		t.Error("Cancel on idle should report false")
	}
	if _, err := h.engine.PointerUp(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	// Plain clicks never register.
	h.press(t, PointerDown{DayIndex: 0, X: xAt(0), Y: yAt(6), Target: TargetBlock, BlockID: "a"})

	if h.capture.acquired != 2 || h.capture.released != 2 {
		t.Errorf("unbalanced capture: acquired=%d released=%d", h.capture.acquired, h.capture.released)
	}
}

func TestEngine_CancelCreate(t *testing.T) {
	h := newHarness(t, newTestState(t))
	before := h.state.Blocks.Len()

	h.press(t, PointerDown{DayIndex: 5, X: xAt(5), Y: yAt(3)})
	h.engine.PointerMove(xAt(5), yAt(9))
	h.engine.Cancel()

	if h.state.Blocks.Len() != before {
		t.Error("cancelled create should not add a block")
	}
	if h.engine.Preview() != nil {
		t.Error("preview should be cleared")
	}
}

func TestEngine_PointerDownUnknownColumn(t *testing.T) {
	h := newHarness(t, newTestState(t))
	if _, err := h.engine.PointerDown(PointerDown{DayIndex: 9}); !errors.Is(err, block.ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay, got %v", err)
	}
}
