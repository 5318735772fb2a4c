package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/tui/view"
)

// ModalType identifies the modal drawn over the grid.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalHelp
	ModalConfirmDelete
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalHelp:
		return m.renderHelpModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalStyle:       m.styles.ModalStyle,
		ModalHeaderStyle: m.styles.ModalHeaderStyle,
		ModalTitleStyle:  m.styles.ModalTitleStyle,
		ModalBodyStyle:   m.styles.ModalBodyStyle,
		ModalKeyStyle:    m.styles.ModalKeyStyle,
		ModalFooterStyle: m.styles.ModalFooterStyle,
	}
}

func (m Model) helpRows() []view.KeyHelp {
	b := m.config.Bindings()
	return []view.KeyHelp{
		{Keys: "drag", Desc: "create a block in the selected schedule"},
		{Keys: "drag edge", Desc: "resize a block"},
		{Keys: m.chordLabel(b.Reposition) + " drag", Desc: "move a block, across days too"},
		{Keys: m.chordLabel(b.Duplicate) + " drag", Desc: "copy a block into every day crossed"},
		{Keys: "n / x", Desc: "block buttons: edit note / delete"},
		{Keys: "L", Desc: "block button: edit that schedule"},
		{Keys: "esc", Desc: "cancel the gesture in progress"},
		{Keys: "n", Desc: "new schedule"},
		{Keys: "tab / 1-9", Desc: "select schedule"},
		{Keys: "space", Desc: "show or hide the selected schedule"},
		{Keys: "r / c / D", Desc: "rename / recolor / delete schedule"},
		{Keys: "x / e", Desc: "delete / note the block under the pointer"},
		{Keys: "y", Desc: "copy the week to the clipboard"},
		{Keys: "j / k / g / G", Desc: "scroll"},
		{Keys: "q", Desc: "quit"},
	}
}

func (m Model) renderHelpModal() string {
	body := view.RenderKeyTable(m.helpRows(), m.modalStyles())
	return view.RenderModalFrame("Keys", body, "[Esc] Close", m.modalStyles())
}

func (m Model) renderConfirmDeleteModal() string {
	sc, ok := m.state.Schedule(m.modalTarget)
	if !ok {
		return ""
	}
	n := len(m.state.Blocks.Blocks(sc.ID))
	body := m.styles.ModalBodyStyle.Render(fmt.Sprintf(
		"Delete %q with its %d blocks and their notes?", sc.Name, n))
	return view.RenderModalFrame("Delete schedule", body, "[y] Delete  [n] Keep", m.modalStyles())
}

func (m Model) openModal(t ModalType, target string) (tea.Model, tea.Cmd) {
	m.modalType = t
	m.modalTarget = target
	return m, nil
}

func (m *Model) closeModal() {
	m.modalType = ModalNone
	m.modalTarget = ""
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.modalType {
	case ModalConfirmDelete:
		switch key {
		case "y", "enter":
			target := m.modalTarget
			m.closeModal()
			return m.deleteSchedule(target)
		case "n", "esc", "q":
			m.closeModal()
		}
	default:
		switch key {
		case "esc", "?", "q", "enter":
			m.closeModal()
		}
	}
	return m, nil
}
