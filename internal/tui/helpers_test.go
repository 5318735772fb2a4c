package tui

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/db"
)

const (
	testColW   = 20
	testWidth  = sidebarWidth + timeColWidth + 7*testColW
	testHeight = headerHeight + 40 + footerHeight
)

// recordingRepo records the writes it receives.
type recordingRepo struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recordingRepo) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingRepo) LoadSchedules(ctx context.Context) ([]block.Schedule, error) { return nil, nil }

func (r *recordingRepo) SaveSchedules(ctx context.Context, schedules []block.Schedule) error {
	r.record("SaveSchedules")
	return nil
}

func (r *recordingRepo) LoadBlocks(ctx context.Context, scheduleID string) ([]block.TimeBlock, error) {
	return nil, nil
}

func (r *recordingRepo) SaveBlocks(ctx context.Context, scheduleID string, blocks []block.TimeBlock) error {
	r.record("SaveBlocks:" + scheduleID)
	return nil
}

func (r *recordingRepo) LoadNote(ctx context.Context, timeBlockID string) (*block.Note, error) {
	return nil, nil
}

func (r *recordingRepo) SaveNote(ctx context.Context, note block.Note) error {
	r.record("SaveNote:" + note.TimeBlockID)
	return nil
}

func (r *recordingRepo) DeleteNote(ctx context.Context, timeBlockID string) error {
	r.record("DeleteNote:" + timeBlockID)
	return nil
}

func (r *recordingRepo) DeleteBlock(ctx context.Context, timeBlockID string) error {
	r.record("DeleteBlock:" + timeBlockID)
	return nil
}

func (r *recordingRepo) DeleteSchedule(ctx context.Context, scheduleID string) error {
	r.record("DeleteSchedule:" + scheduleID)
	return nil
}

func (r *recordingRepo) Close() error { return nil }

// newTestState has two schedules: "work" (selected) with block "a" on
// Monday [4,8), and "gym" (active) with block "g" on Thursday [20,24).
func newTestState() *block.State {
	st := block.NewState()
	st.Schedules = []block.Schedule{
		{ID: "work", Name: "work", Color: "#ff8800", BgColor: "#663300"},
		{ID: "gym", Name: "gym", IsActive: true, Color: "#0088ff", BgColor: "#003366"},
	}
	st.SelectedID = "work"
	st.Blocks = st.Blocks.
		Append(block.TimeBlock{ID: "a", ScheduleID: "work", DayIndex: 0, Start: 4, End: 8, Color: "#ff8800"}).
		Append(block.TimeBlock{ID: "g", ScheduleID: "gym", DayIndex: 3, Start: 20, End: 24, Color: "#0088ff"})
	return st
}

type harness struct {
	t      *testing.T
	m      Model
	repo   *recordingRepo
	writer *db.Writer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	repo := &recordingRepo{}
	w := db.NewWriter(32)
	t.Cleanup(w.Close)

	m := New(repo, w, config.Default(), WithState(newTestState()), WithRand(rand.New(rand.NewSource(1))))
	h := &harness{t: t, m: *m, repo: repo, writer: w}
	h.send(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	h.m.scroll = 0
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	updated, cmd := h.m.Update(msg)
	m, ok := updated.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T, want Model", updated)
	}
	h.m = m
	return cmd
}

// cell returns the terminal position of a column offset within a day on
// the row showing interval iv.
func (h *harness) cell(day, off, iv int) (int, int) {
	l := h.m.layout
	return l.GridLeft + day*l.ColW + off, l.BodyTop + iv - h.m.scroll
}

func (h *harness) press(day, off, iv int, alt, shift bool) {
	x, y := h.cell(day, off, iv)
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Alt: alt, Shift: shift})
}

func (h *harness) move(day, off, iv int) {
	x, y := h.cell(day, off, iv)
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func (h *harness) hoverAt(day, off, iv int) {
	x, y := h.cell(day, off, iv)
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
}

// release sends a release with no button, as many terminals report it.
func (h *harness) release(day, off, iv int) {
	x, y := h.cell(day, off, iv)
	h.send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func (h *harness) key(s string) {
	switch s {
	case "enter":
		h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		h.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "shift+tab":
		h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	default:
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// flush waits for queued writes and returns the recorded calls.
func (h *harness) flush() []string {
	h.writer.Close()
	return h.repo.Calls()
}

func containsCall(calls []string, want string) bool {
	for _, c := range calls {
		if c == want {
			return true
		}
	}
	return false
}

func (h *harness) block(id string) block.TimeBlock {
	h.t.Helper()
	b, ok := h.m.state.Blocks.FindAny(id)
	if !ok {
		h.t.Fatalf("block %q not found", id)
	}
	return b
}
