package gesture

import "github.com/javiermolinar/weekgrid/internal/geometry"

// Preview is a render snapshot of the in-progress block.
type Preview struct {
	Mode      Mode
	BlockID   string // Active block, or block.PreviewID when creating
	DayIndex  int
	Top       float64
	Height    float64
	Start     int
	End       int
	Label     string
	Direction Direction
	Color     string
	Collapsed bool
}

// LabelAtBottom reports whether the time label should hug the bottom edge.
// The label follows the growing edge and sits on top otherwise.
func (p Preview) LabelAtBottom() bool {
	return p.Direction == DirectionDown
}

// Project derives the preview for a session. It returns nil when idle.
func Project(s Session, m geometry.Metrics) *Preview {
	if s.Mode == ModeIdle {
		return nil
	}
	b := s.Block
	box := m.IntervalRangeToPixelBox(b.Start, b.End)
	return &Preview{
		Mode:      s.Mode,
		BlockID:   b.ID,
		DayIndex:  b.DayIndex,
		Top:       box.Top,
		Height:    box.Height,
		Start:     min(b.Start, b.End),
		End:       max(b.Start, b.End),
		Label:     geometry.FormatRange(b.Start, b.End),
		Direction: s.Direction,
		Color:     b.Color,
		Collapsed: s.Collapsed,
	}
}
