package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/gesture"
	"github.com/javiermolinar/weekgrid/internal/tui/commands"
)

const wheelStep = 3

// mouseCapture routes motion and release events to the gesture engine
// while a session holds it, wherever the pointer is on screen.
type mouseCapture struct {
	held bool
}

// Acquire implements gesture.Capture.
func (c *mouseCapture) Acquire() error {
	if c.held {
		return gesture.ErrSessionActive
	}
	c.held = true
	return nil
}

// Release implements gesture.Capture.
func (c *mouseCapture) Release() {
	c.held = false
}

// Held reports whether a gesture owns the pointer.
func (c *mouseCapture) Held() bool {
	return c.held
}

// hover is what lies under the pointer.
type hover struct {
	x, y     float64
	mods     gesture.Modifiers
	inGrid   bool
	day      int
	interval int
	onBlock  bool
	block    block.TimeBlock
	control  control
	sidebar  int // Schedule index under the pointer in the sidebar, or -1
}

func noHover() hover {
	return hover{sidebar: -1}
}

// modifiers maps terminal modifier flags to gesture modifiers. The
// terminal key acting as meta is configurable since many terminals
// swallow one of alt or ctrl on click.
func (m Model) modifiers(ev tea.MouseEvent) gesture.Modifiers {
	meta := ev.Alt
	if m.config.MetaIsCtrl() {
		meta = ev.Ctrl
	}
	return gesture.Modifiers{Meta: meta, Shift: ev.Shift}
}

// hitTest resolves the element under a terminal cell.
func (m Model) hitTest(col, row int, mods gesture.Modifiers) hover {
	h := noHover()
	h.x = m.layout.PointerX(col)
	h.y = m.layout.PointerY(row, m.scroll)
	h.mods = mods

	if i, ok := m.layout.SidebarIndex(col, row); ok {
		if i < len(m.state.Schedules) {
			h.sidebar = i
		}
		return h
	}

	day, ok := m.layout.DayAt(col)
	if !ok {
		return h
	}
	iv, ok := m.layout.IntervalAt(row, m.scroll)
	if !ok {
		return h
	}
	h.inGrid = true
	h.day = day
	h.interval = iv

	b, ok := m.blockAt(day, iv)
	if !ok {
		return h
	}
	h.onBlock = true
	h.block = b
	if iv == b.Start {
		h.control = m.layout.ControlAt(col, b, b.ScheduleID == m.state.SelectedID)
	}
	return h
}

// blockAt returns the top-most visible block covering an interval.
func (m Model) blockAt(day, interval int) (block.TimeBlock, bool) {
	visible := m.state.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		b := visible[i]
		if b.DayIndex == day && b.Contains(interval) {
			return b, true
		}
	}
	return block.TimeBlock{}, false
}

// handleMouseMsg adapts terminal mouse events to the gesture engine.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg, m.capture.Held())
	ev := tea.MouseEvent(msg)

	if ev.IsWheel() {
		return m.handleWheel(ev)
	}
	if (m.mode == ModePrompt || m.modalType != ModalNone) && !m.capture.Held() {
		return m, nil
	}

	m.hover = m.hitTest(ev.X, ev.Y, m.modifiers(ev))

	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.pointerDown()
	case tea.MouseActionMotion:
		if m.capture.Held() {
			return m.pointerMove()
		}
	case tea.MouseActionRelease:
		// Release events do not reliably report which button was let go.
		if m.capture.Held() {
			return m.pointerUp()
		}
	}
	return m, nil
}

func (m Model) handleWheel(ev tea.MouseEvent) (tea.Model, tea.Cmd) {
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scroll -= wheelStep
	case tea.MouseButtonWheelDown:
		m.scroll += wheelStep
	default:
		return m, nil
	}
	m.clampScroll()
	if m.capture.Held() {
		m.hover = m.hitTest(ev.X, ev.Y, m.hover.mods)
		return m.pointerMove()
	}
	return m, nil
}

func (m Model) pointerDown() (tea.Model, tea.Cmd) {
	h := m.hover
	if h.sidebar >= 0 {
		return m.selectSchedule(h.sidebar)
	}
	if !h.inGrid {
		return m, nil
	}

	ev := gesture.PointerDown{
		DayIndex: h.day,
		X:        h.x,
		Y:        h.y,
		Mods:     h.mods,
		Target:   gesture.TargetGrid,
	}
	if h.onBlock {
		ev.Target = gesture.TargetBlock
		ev.BlockID = h.block.ID
	}
	if h.control != controlNone {
		ev.Target = gesture.TargetControl
	}

	d, err := m.engine.PointerDown(ev)
	if err != nil {
		LogError("pointer down", err)
		if errors.Is(err, block.ErrNoScheduleSelected) {
			// The engine already put the prompt in the footer.
			return m, commands.ClearStatusAfter(statusDuration)
		}
		return m, nil
	}
	if d.StopPropagation {
		return m.runControl(h)
	}
	if d.Starts() {
		LogGestureStart(d)
		return m, nil
	}
	if d.Reason == gesture.ReasonLocked {
		return m, m.flash("Schedule is locked; click its L button to edit it")
	}
	return m, nil
}

func (m Model) pointerMove() (tea.Model, tea.Cmd) {
	spawned := m.engine.PointerMove(m.hover.x, m.hover.y)
	if spawned == nil {
		return m, nil
	}
	LogDuplicateSpawn(*spawned)
	if !spawned.Applied {
		return m, nil
	}
	m.persistBlocks(spawned.Block.ScheduleID)
	return m, commands.ExpireRecentAfter(m.config.RecentWindow())
}

func (m Model) pointerUp() (tea.Model, tea.Cmd) {
	c, err := m.engine.PointerUp()
	if err != nil {
		LogError("pointer up", err)
		return m, nil
	}
	LogGestureCommit(c)
	if !c.Applied {
		return m, nil
	}
	m.persistBlocks(c.Block.ScheduleID)
	if c.Mode == gesture.ModeCreating {
		return m, commands.ExpireRecentAfter(m.config.RecentWindow())
	}
	return m, nil
}

func (m Model) cancelGesture(reason string) bool {
	mode := m.engine.Session().Mode
	if !m.engine.Cancel() {
		return false
	}
	LogGestureCancel(mode, reason)
	return true
}

// runControl performs the action of a block button.
func (m Model) runControl(h hover) (tea.Model, tea.Cmd) {
	switch h.control {
	case controlDelete:
		return m.deleteBlock(h.block.ID)
	case controlNote:
		return m.openNotePrompt(h.block.ID)
	case controlLock:
		if err := m.state.Select(h.block.ScheduleID); err != nil {
			return m, m.flashErr("Unlock failed", err)
		}
		sc, _ := m.state.Selected()
		return m, m.flash("Editing " + sc.Name)
	}
	return m, nil
}

func (m Model) persistBlocks(scheduleID string) {
	m.persister.SaveBlocks(scheduleID, m.state.Blocks.Blocks(scheduleID))
}
