package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Schedule names: bold cyan
	colorSchedule = color.New(color.FgCyan, color.Bold)

	// Notes: yellow to make them pop
	colorNote = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Active marker: green
	colorActive = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatSchedule(s string) string {
	return colorSchedule.Sprint(s)
}

func formatNote(s string) string {
	return colorNote.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatActive(s string) string {
	return colorActive.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
