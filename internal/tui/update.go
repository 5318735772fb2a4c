package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = newLayout(m.width, m.height, m.config.Metrics())
		m.engine.SetColumns(m.layout)
		m.clampScroll()
		return m, nil

	case commands.StateLoadedMsg:
		m.setState(msg.State)
		return m, nil

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.loading = false
		m.status.set(fmt.Sprintf("Error: %v", msg.Err), true, errorDuration)
		return m, commands.ClearStatusAfter(errorDuration)

	case commands.PersistErrMsg:
		LogPersistError(msg.Op, msg.Err)
		m.status.set(fmt.Sprintf("Save failed (%s): %v", msg.Op, msg.Err), true, errorDuration)
		return m, tea.Batch(
			commands.WaitForWriteError(m.persister.Writer()),
			commands.ClearStatusAfter(errorDuration),
		)

	case commands.WriterClosedMsg:
		return m, nil

	case commands.StatusMsgCmd:
		m.status.set(msg.Msg, false, statusDuration)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		m.status.clearIfExpired()
		return m, nil

	case commands.RecentExpiredMsg:
		// Re-render only; the engine reports the block as no longer recent.
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// flash shows a status message and schedules its removal.
func (m Model) flash(text string) tea.Cmd {
	m.status.set(text, false, statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

// flashErr shows an error in the footer.
func (m Model) flashErr(context string, err error) tea.Cmd {
	LogError(context, err)
	m.status.set(fmt.Sprintf("%s: %v", context, err), true, errorDuration)
	return commands.ClearStatusAfter(errorDuration)
}

func (m *Model) clampScroll() {
	m.scroll = max(0, min(m.scroll, m.layout.MaxScroll()))
}
