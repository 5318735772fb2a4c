package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/palette"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModePrompt {
		return m.handlePromptKeys(msg)
	}
	if m.modalType != ModalNone {
		return m.handleModalKeys(msg)
	}
	if m.engine.Active() {
		// Only escape is honored while a gesture owns the pointer.
		if msg.String() == "esc" {
			m.cancelGesture("escape")
		}
		return m, nil
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit

	case "esc":
		m.status.set("", false, 0)
		return m, nil

	// Scrolling
	case "j", "down":
		m.scroll++
	case "k", "up":
		m.scroll--
	case "pgdown", "ctrl+d":
		m.scroll += m.layout.BodyRows / 2
	case "pgup", "ctrl+u":
		m.scroll -= m.layout.BodyRows / 2
	case "g":
		m.scroll = 0
	case "G":
		m.scroll = m.layout.MaxScroll()

	// Schedules
	case "tab":
		return m.cycleSchedule(1)
	case "shift+tab":
		return m.cycleSchedule(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.selectSchedule(int(key[0] - '1'))
	case " ", "space":
		return m.toggleActive()
	case "n":
		return m.openPrompt(promptNewSchedule, "", "New schedule: ", "")
	case "r":
		sc, ok := m.state.Selected()
		if !ok {
			return m, m.flash("No schedule selected")
		}
		return m.openPrompt(promptRename, sc.ID, "Rename: ", sc.Name)
	case "c":
		return m.recolorSchedule()
	case "D":
		sc, ok := m.state.Selected()
		if !ok {
			return m, m.flash("No schedule selected")
		}
		return m.openModal(ModalConfirmDelete, sc.ID)
	case "?":
		return m.openModal(ModalHelp, "")

	// Hovered block
	case "x":
		if !m.hover.onBlock {
			return m, m.flash("Point at a block to delete it")
		}
		return m.deleteBlock(m.hover.block.ID)
	case "e":
		if !m.hover.onBlock {
			return m, m.flash("Point at a block to edit its note")
		}
		return m.openNotePrompt(m.hover.block.ID)

	case "y":
		return m.copyWeek()
	}

	m.clampScroll()
	return m, nil
}

// handlePromptKeys handles keys while the footer prompt has focus.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		value := m.prompt.Value()
		kind, target := m.promptKind, m.promptTarget
		m.closePrompt()
		return m.submitPrompt(kind, target, value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, target, label, value string) (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.promptKind = kind
	m.promptTarget = target
	m.prompt.Prompt = label
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	return m, m.prompt.Focus()
}

func (m Model) openNotePrompt(blockID string) (tea.Model, tea.Cmd) {
	content := ""
	if n, ok := m.state.Notes[blockID]; ok {
		content = n.Content
	}
	return m.openPrompt(promptNote, blockID, "Note: ", content)
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.promptKind = promptNone
	m.promptTarget = ""
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m Model) submitPrompt(kind promptKind, target, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case promptNewSchedule:
		return m.addSchedule(value)

	case promptRename:
		if err := m.state.RenameSchedule(target, value); err != nil {
			return m, m.flashErr("Rename failed", err)
		}
		m.persister.SaveSchedules(m.state.Schedules)
		return m, nil

	case promptNote:
		note, keep, err := m.state.SetNote(target, value)
		if err != nil {
			return m, m.flashErr("Note failed", err)
		}
		m.persister.SaveNote(note, keep)
		if !keep {
			return m, m.flash("Note removed")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) addSchedule(name string) (tea.Model, tea.Cmd) {
	pair := palette.Generate(m.state.Colors(), m.rnd)
	sc := block.Schedule{
		ID:       uuid.NewString(),
		Name:     name,
		IsActive: true,
		Color:    pair.Color,
		BgColor:  pair.BgColor,
	}
	if err := m.state.AddSchedule(sc); err != nil {
		return m, m.flashErr("Add schedule failed", err)
	}
	_ = m.state.Select(sc.ID)
	m.persister.SaveSchedules(m.state.Schedules)
	return m, m.flash("Added " + strings.TrimSpace(name))
}

// selectSchedule selects by position. Indexes past the list are ignored.
func (m Model) selectSchedule(i int) (tea.Model, tea.Cmd) {
	_ = m.state.SelectIndex(i)
	return m, nil
}

func (m Model) cycleSchedule(step int) (tea.Model, tea.Cmd) {
	n := len(m.state.Schedules)
	if n == 0 {
		return m, nil
	}
	i := m.state.SelectedIndex()
	if i < 0 {
		i = 0
		if step < 0 {
			i = n - 1
		}
		return m.selectSchedule(i)
	}
	return m.selectSchedule(((i+step)%n + n) % n)
}

func (m Model) toggleActive() (tea.Model, tea.Cmd) {
	sc, ok := m.state.Selected()
	if !ok {
		return m, m.flash("No schedule selected")
	}
	if err := m.state.ToggleActive(sc.ID); err != nil {
		return m, m.flashErr("Toggle failed", err)
	}
	m.persister.SaveSchedules(m.state.Schedules)
	return m, nil
}

func (m Model) recolorSchedule() (tea.Model, tea.Cmd) {
	sc, ok := m.state.Selected()
	if !ok {
		return m, m.flash("No schedule selected")
	}
	var others []string
	for _, other := range m.state.Schedules {
		if other.ID != sc.ID {
			others = append(others, other.Color)
		}
	}
	pair := palette.Generate(others, m.rnd)
	if err := m.state.RecolorSchedule(sc.ID, pair.Color, pair.BgColor); err != nil {
		return m, m.flashErr("Recolor failed", err)
	}
	m.persister.SaveSchedules(m.state.Schedules)
	m.persistBlocks(sc.ID)
	return m, nil
}

func (m Model) deleteSchedule(id string) (tea.Model, tea.Cmd) {
	sc, ok := m.state.Schedule(id)
	if !ok {
		return m, m.flash("Schedule no longer exists")
	}
	if _, err := m.state.DeleteSchedule(sc.ID); err != nil {
		return m, m.flashErr("Delete failed", err)
	}
	m.persister.DeleteSchedule(sc.ID)
	m.hover = noHover()
	return m, m.flash("Deleted " + sc.Name)
}

func (m Model) deleteBlock(id string) (tea.Model, tea.Cmd) {
	if _, err := m.state.DeleteBlock(id); err != nil {
		return m, m.flashErr("Delete failed", err)
	}
	m.persister.DeleteBlock(id)
	if m.hover.block.ID == id {
		m.hover = noHover()
	}
	return m, nil
}

func (m Model) copyWeek() (tea.Model, tea.Cmd) {
	sc, ok := m.state.Selected()
	if !ok {
		return m, m.flash("No schedule selected")
	}
	if err := clipboardWrite(weekText(m.state, sc.ID)); err != nil {
		return m, m.flashErr("Copy failed", err)
	}
	return m, m.flash(fmt.Sprintf("Copied %s to clipboard", sc.Name))
}
