package view

import "github.com/charmbracelet/lipgloss"

// ViewState contains pre-rendered content and overlay metadata.
type ViewState struct {
	Width        int
	Height       int
	BaseContent  string
	ModalContent string
	ShowModal    bool
	Bg           lipgloss.Color
	ModalBg      lipgloss.Color
}

// Render composes the final view output: the base padded to the terminal,
// with the modal centered on top when shown.
func Render(state ViewState) string {
	base := PadLinesWithBackground(state.BaseContent, state.Width, state.Height, state.Bg)
	if state.ShowModal && state.ModalContent != "" {
		return RenderModalOverlay(base, state.ModalContent, state.Width, state.Height, state.ModalBg)
	}
	return base
}
