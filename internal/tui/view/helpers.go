package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		lineWidth := lipgloss.Width(lines[i])
		if lineWidth >= width {
			continue
		}
		lines[i] += paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
	}
	return strings.Join(lines[:height], "\n")
}

// RenderModalOverlay centers modalContent and splices it over the base content.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modalContent, "\n")
	modalHeight := len(modalLines)

	modalWidth := 0
	for _, line := range modalLines {
		modalWidth = max(modalWidth, lipgloss.Width(line))
	}
	if modalWidth == 0 {
		return baseContent
	}
	modalWidth = min(modalWidth, width)
	modalHeight = min(modalHeight, height)

	top := max(0, (height-modalHeight)/2)
	left := max(0, (width-modalWidth)/2)

	for i, line := range modalLines[:modalHeight] {
		lineWidth := lipgloss.Width(line)
		if lineWidth > modalWidth {
			line = ansi.Cut(line, 0, modalWidth)
		}
		if lineWidth < modalWidth {
			paddingStyle := lipgloss.NewStyle().Background(modalBg)
			line += paddingStyle.Render(strings.Repeat(" ", modalWidth-lineWidth))
		}
		line = applyBackgroundResets(line, modalBg)
		modalLines[i] = line + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, lipgloss.Color("")), "\n")

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+modalHeight {
			lines = append(lines, baseLines[row])
			continue
		}
		baseLine := baseLines[row]
		leftSlice := ansi.Cut(baseLine, 0, left)
		rightSlice := ansi.Cut(baseLine, left+modalWidth, width)
		lines = append(lines, leftSlice+modalLines[row-top]+rightSlice)
	}
	return strings.Join(lines, "\n")
}

// applyBackgroundResets reapplies bg after every ANSI reset in line.
func applyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := backgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// backgroundSeq returns the escape sequence selecting bg, or "" for no color.
func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
