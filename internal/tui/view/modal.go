package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames.
type ModalStyles struct {
	ModalStyle       lipgloss.Style
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalKeyStyle    lipgloss.Style
	ModalFooterStyle lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	header := styles.ModalHeaderStyle.Render(styles.ModalTitleStyle.Render(title))
	b.WriteString(header)
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ModalFooterStyle.Render(footer))
	}

	return styles.ModalStyle.Render(b.String())
}

// KeyHelp is one row of a key reference.
type KeyHelp struct {
	Keys string
	Desc string
}

// RenderKeyTable renders key help rows with the key column aligned.
func RenderKeyTable(rows []KeyHelp, styles ModalStyles) string {
	keyW := 0
	for _, r := range rows {
		keyW = max(keyW, lipgloss.Width(r.Keys))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines,
			styles.ModalKeyStyle.Render(Fit(r.Keys, keyW))+
				styles.ModalBodyStyle.Render("  "+r.Desc))
	}
	return strings.Join(lines, "\n")
}
