// Package tui provides the terminal user interface for weekgrid.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/weekgrid/internal/tui/theme"
)

// Layout constants, in terminal cells.
const (
	sidebarWidth  = 20
	timeColWidth  = 8
	minColWidth   = 6
	defaultColW   = 14
	footerHeight  = 2
	headerHeight  = 2 // Title row and day header row
	defaultScroll = 32 // 8:00AM
)

// blockKind selects how a block cell is drawn.
type blockKind int

const (
	blockNormal blockKind = iota
	blockMuted            // Schedule is visible but not selected
	blockRecent           // Just committed
	blockPreview          // Live gesture preview
	blockCollapsed        // Preview of a resize dragged past its fixed edge
)

type blockStyleKey struct {
	color string
	kind  blockKind
}

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title style
	TitleStyle lipgloss.Style

	// Day header
	DayHeaderStyle lipgloss.Style

	// Time column
	TimeColumnStyle     lipgloss.Style
	TimeColumnHourStyle lipgloss.Style

	// Empty grid cells
	EmptyCellStyle lipgloss.Style
	HourCellStyle  lipgloss.Style
	SeparatorStyle lipgloss.Style

	// Sidebar
	SidebarStyle         lipgloss.Style
	SidebarTitleStyle    lipgloss.Style
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Modal
	ModalStyle       lipgloss.Style
	ModalBgColor     lipgloss.Color
	ModalHeaderStyle lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalKeyStyle    lipgloss.Style
	ModalFooterStyle lipgloss.Style

	blocks map[blockStyleKey]lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		palette: p,
		blocks:  make(map[blockStyleKey]lipgloss.Style),
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(p.Bg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.BgHighlight)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.TimeColumnHourStyle = s.TimeColumnStyle.
		Foreground(p.Accent)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(p.GridLine).
		Background(p.Bg)

	s.HourCellStyle = lipgloss.NewStyle().
		Foreground(p.HourLine).
		Background(p.Bg)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(p.GridLine).
		Background(p.Bg)

	s.SidebarStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.SidebarBg)

	s.SidebarTitleStyle = s.SidebarStyle.
		Foreground(p.SidebarBorder).
		Bold(true)

	s.SidebarItemStyle = s.SidebarStyle

	s.SidebarSelectedStyle = s.SidebarStyle.
		Background(p.BgSelection).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Bg)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Background(p.Bg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)

	modalBg := p.BgHighlight
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		BorderBackground(p.Bg).
		Background(modalBg).
		Foreground(p.Fg).
		Padding(1, 2)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(modalBg)

	s.ModalKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning).
		Background(modalBg)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(modalBg)

	return s
}

// Palette returns the derived theme colors.
func (s *Styles) Palette() *theme.Palette {
	return s.palette
}

// Block returns the cell style of a block drawn in a schedule color.
func (s *Styles) Block(color string, kind blockKind) lipgloss.Style {
	key := blockStyleKey{color: color, kind: kind}
	if style, ok := s.blocks[key]; ok {
		return style
	}

	p := s.palette
	var fill lipgloss.Color
	switch kind {
	case blockMuted:
		fill = p.BlockMuted(color)
	case blockRecent:
		fill = p.BlockRecent(color)
	case blockCollapsed:
		fill = p.Warning
	case blockPreview:
		fill = p.BlockRecent(color)
	default:
		fill = p.BlockFill(color)
	}

	style := lipgloss.NewStyle().
		Background(fill).
		Foreground(p.BlockText(fill))
	if kind == blockPreview || kind == blockCollapsed || kind == blockRecent {
		style = style.Bold(true)
	}
	s.blocks[key] = style
	return style
}

// Swatch returns the row style with its text in a schedule color.
func (s *Styles) Swatch(row lipgloss.Style, color string) lipgloss.Style {
	return row.Foreground(lipgloss.Color(color))
}
