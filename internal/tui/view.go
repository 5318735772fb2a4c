package tui

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
	"github.com/javiermolinar/weekgrid/internal/gesture"
	"github.com/javiermolinar/weekgrid/internal/tui/view"
)

const helpText = "drag: create · drag edge: resize · %s: move · %s: duplicate · " +
	"n new · tab switch · space show/hide · ? keys · q quit"

// cell is one interval of one day column as drawn.
type cell struct {
	used bool
	kind blockKind
	text string
	b    block.TimeBlock
}

type weekCells [geometry.DaysPerWeek][geometry.IntervalsPerDay]cell

// View renders the TUI.
func (m Model) View() string {
	if m.loading {
		return "Loading schedules..."
	}

	l := m.layout
	cells := m.buildCells()

	lines := make([]string, 0, l.Height)
	lines = append(lines, m.renderTitle(), m.renderDayHeader())
	for r := 0; r < l.BodyRows; r++ {
		lines = append(lines, m.renderSidebarRow(r)+m.renderBodyRow(m.scroll+r, &cells))
	}
	lines = append(lines, m.renderStatusLine(), m.renderHelpLine())

	return view.Render(view.ViewState{
		Width:        l.Width,
		Height:       l.Height,
		BaseContent:  strings.Join(lines, "\n"),
		ModalContent: m.renderModal(),
		ShowModal:    m.modalType != ModalNone,
		Bg:           m.styles.Palette().Bg,
		ModalBg:      m.styles.ModalBgColor,
	})
}

// buildCells resolves which block, if any, covers every grid cell. Blocks
// of the selected schedule are painted last, and the live preview on top.
func (m Model) buildCells() weekCells {
	var cells weekCells

	s := m.engine.Session()
	hidden := ""
	if s.Mode == gesture.ModeResizing || s.Mode == gesture.ModeRepositioning {
		hidden = s.ActiveBlockID
	}
	recent := m.engine.RecentBlockID()

	for _, b := range m.state.Visible() {
		if b.ID == hidden {
			continue
		}
		kind := blockNormal
		switch {
		case b.ID == recent:
			kind = blockRecent
		case b.ScheduleID != m.state.SelectedID:
			kind = blockMuted
		}
		m.paintBlock(&cells, b, kind)
	}

	if p := m.engine.Preview(); p != nil {
		m.paintPreview(&cells, p)
	}
	return cells
}

func (m Model) paintBlock(cells *weekCells, b block.TimeBlock, kind blockKind) {
	if !fill(cells, b, kind) {
		return
	}
	cw := m.layout.ColW - 1
	day := cells[b.DayIndex][:]

	top := b.Label()
	if m.layout.hasControls() {
		suffix := "   L"
		if b.ScheduleID == m.state.SelectedID {
			suffix = " n x"
		}
		top = view.Fit(top, cw-controlSuffixW) + suffix
	}
	day[b.Start].text = top

	if n, ok := m.state.Notes[b.ID]; ok && b.Span() > 1 {
		day[b.Start+1].text = "* " + n.Content
	}
}

func (m Model) paintPreview(cells *weekCells, p *gesture.Preview) {
	kind := blockPreview
	if p.Collapsed {
		kind = blockCollapsed
	}
	b := block.TimeBlock{
		ID:       p.BlockID,
		DayIndex: p.DayIndex,
		Start:    p.Start,
		End:      p.End,
		Color:    p.Color,
	}
	if !fill(cells, b, kind) {
		return
	}
	row := b.Start
	if p.LabelAtBottom() {
		row = b.End - 1
	}
	cells[b.DayIndex][row].text = p.Label
}

// fill marks the cells a block covers. Blocks outside the grid are skipped.
func fill(cells *weekCells, b block.TimeBlock, kind blockKind) bool {
	if !geometry.ValidDay(b.DayIndex) || b.Start < 0 || b.End > geometry.IntervalsPerDay || b.End <= b.Start {
		return false
	}
	for iv := b.Start; iv < b.End; iv++ {
		cells[b.DayIndex][iv] = cell{used: true, kind: kind, b: b}
	}
	return true
}

func (m Model) renderTitle() string {
	title := " weekgrid"
	if sc, ok := m.state.Selected(); ok {
		title += "  ·  " + sc.Name
	} else {
		title += "  ·  no schedule selected"
	}
	return m.styles.TitleStyle.Render(view.Fit(title, m.layout.Width))
}

func (m Model) renderDayHeader() string {
	l := m.layout
	var b strings.Builder
	b.WriteString(m.styles.SidebarTitleStyle.Render(view.Fit(" Schedules", sidebarWidth)))
	b.WriteString(m.styles.TimeColumnStyle.Render(view.Fit("", timeColWidth)))
	for d := 0; d < geometry.DaysPerWeek; d++ {
		b.WriteString(m.styles.DayHeaderStyle.Render(view.Center(dayNames[d], l.ColW-1)))
		b.WriteString(m.styles.SeparatorStyle.Render(" "))
	}
	b.WriteString(m.renderRemainder())
	return b.String()
}

func (m Model) renderSidebarRow(i int) string {
	if i >= len(m.state.Schedules) {
		return m.styles.SidebarStyle.Render(view.Fit("", sidebarWidth))
	}
	sc := m.state.Schedules[i]

	row := m.styles.SidebarItemStyle
	marker := " "
	if sc.ID == m.state.SelectedID {
		row = m.styles.SidebarSelectedStyle
		marker = "›"
	}
	num := " "
	if i < 9 {
		num = fmt.Sprintf("%d", i+1)
	}
	dot := "○"
	if sc.IsActive {
		dot = "●"
	}

	return row.Render(marker+num+" ") +
		m.styles.Swatch(row, sc.Color).Render(dot) +
		row.Render(view.Fit(" "+sc.Name, sidebarWidth-4))
}

func (m Model) renderBodyRow(iv int, cells *weekCells) string {
	l := m.layout
	s := m.styles
	cw := l.ColW - 1
	hour := iv%4 == 0

	var b strings.Builder
	if hour {
		label := geometry.IntervalToClockLabel(iv)
		b.WriteString(s.TimeColumnHourStyle.Render(view.Fit(fmt.Sprintf("%7s ", label), timeColWidth)))
	} else {
		b.WriteString(s.TimeColumnStyle.Render(view.Fit("", timeColWidth)))
	}

	for d := 0; d < geometry.DaysPerWeek; d++ {
		c := cells[d][iv]
		switch {
		case c.used:
			b.WriteString(s.Block(c.b.Color, c.kind).Render(view.Fit(c.text, cw)))
		case hour:
			b.WriteString(s.HourCellStyle.Render(strings.Repeat("┄", cw)))
		default:
			b.WriteString(s.EmptyCellStyle.Render(view.Fit("", cw)))
		}
		b.WriteString(s.SeparatorStyle.Render("│"))
	}
	b.WriteString(m.renderRemainder())
	return b.String()
}

func (m Model) renderRemainder() string {
	l := m.layout
	rest := l.Width - l.GridLeft - geometry.DaysPerWeek*l.ColW
	if rest <= 0 {
		return ""
	}
	return m.styles.EmptyCellStyle.Render(strings.Repeat(" ", rest))
}

func (m Model) renderStatusLine() string {
	w := m.layout.Width
	switch {
	case m.mode == ModePrompt:
		return m.styles.PromptStyle.Render(view.Fit(m.prompt.View(), w))
	case m.status.text != "" && m.status.isErr:
		return m.styles.ErrorStyle.Render(view.Fit(" "+m.status.text, w))
	case m.status.text != "":
		return m.styles.StatusStyle.Render(view.Fit(" "+m.status.text, w))
	default:
		return m.styles.HelpStyle.Render(view.Fit(" "+m.affordance(), w))
	}
}

func (m Model) renderHelpLine() string {
	b := m.config.Bindings()
	text := fmt.Sprintf(helpText, m.chordLabel(b.Reposition)+" drag", m.chordLabel(b.Duplicate)+" drag")
	return m.styles.HelpStyle.Render(view.Fit(" "+text, m.layout.Width))
}

// chordLabel names a chord with the terminal key that acts as meta.
func (m Model) chordLabel(mods gesture.Modifiers) string {
	meta := "alt"
	if m.config.MetaIsCtrl() {
		meta = "ctrl"
	}
	return strings.ReplaceAll(mods.String(), "meta", meta)
}

// affordance describes what pressing at the pointer would do, standing in
// for the cursor shapes of a pointer-driven UI.
func (m Model) affordance() string {
	if p := m.engine.Preview(); p != nil {
		text := fmt.Sprintf("%s %s %s", p.Mode, dayNames[p.DayIndex], p.Label)
		if p.Collapsed {
			text += " (collapsed)"
		}
		if p.Mode == gesture.ModeDuplicating {
			text += fmt.Sprintf(" · %d copies", len(m.engine.Session().ProcessedDays()))
		}
		return text
	}

	h := m.hover
	if h.sidebar >= 0 && h.sidebar < len(m.state.Schedules) {
		return "click to select " + m.state.Schedules[h.sidebar].Name
	}
	if !h.inGrid {
		return ""
	}

	at := fmt.Sprintf("%s %s", dayNames[h.day], geometry.IntervalToClockLabel(h.interval))
	if h.control != controlNone {
		return at + " · " + h.control.String()
	}

	column, ok := m.layout.ColumnBounds(h.day)
	if !ok {
		return at
	}
	ev := gesture.PointerDown{DayIndex: h.day, X: h.x, Y: h.y, Mods: h.mods, Target: gesture.TargetGrid}
	if h.onBlock {
		ev.Target = gesture.TargetBlock
		ev.BlockID = h.block.ID
	}
	d := m.classifier.Classify(ev, column, m.state)

	var hint string
	switch {
	case d.Err != nil:
		hint = "select a schedule first"
	case d.Mode == gesture.ModeCreating:
		hint = "create"
	case d.Mode == gesture.ModeResizing:
		hint = "resize " + d.Edge.String()
	case d.Mode == gesture.ModeRepositioning:
		hint = "move"
	case d.Mode == gesture.ModeDuplicating:
		hint = "duplicate"
	case d.Reason == gesture.ReasonLocked:
		hint = "locked"
	}
	switch {
	case hint != "":
		return at + " · " + hint
	case h.onBlock:
		return at + " · " + h.block.Label()
	default:
		return at
	}
}
