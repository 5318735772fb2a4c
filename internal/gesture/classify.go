package gesture

import (
	"math"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

// SelectSchedulePrompt is shown when a create gesture starts without a selected schedule.
const SelectSchedulePrompt = "Please select a schedule before adding time blocks."

// Reasons reported on idle decisions.
const (
	ReasonControl    = "control"
	ReasonNoSchedule = "no schedule selected"
	ReasonLocked     = "schedule locked"
	ReasonPlainClick = "plain click"
	ReasonUnbound    = "unbound chord"
)

// PointerDown describes a pointer press on a day column.
type PointerDown struct {
	DayIndex int
	X, Y     float64
	Mods     Modifiers
	Target   Target
	BlockID  string // Block under the pointer when Target is TargetBlock or TargetControl
}

// Decision is the outcome of classifying a pointer press.
type Decision struct {
	Mode   Mode
	Origin int             // Fixed interval anchoring the gesture
	Edge   Edge            // Grabbed edge when resizing
	Block  block.TimeBlock // Block under the pointer, or the provisional block when creating

	// StopPropagation is set when the press landed on a block control and
	// must not reach the grid handlers.
	StopPropagation bool

	// Err is set when the press violated a user precondition.
	Err error

	// Reason explains an idle decision for logs.
	Reason string
}

// Starts reports whether the decision begins a gesture session.
func (d Decision) Starts() bool {
	return d.Mode != ModeIdle && d.Err == nil
}

// Classifier decides which gesture a pointer press begins.
type Classifier struct {
	Metrics  geometry.Metrics
	Bindings Bindings
}

// NewClassifier creates a classifier.
func NewClassifier(metrics geometry.Metrics, bindings Bindings) Classifier {
	return Classifier{Metrics: metrics, Bindings: bindings}
}

// Classify evaluates the press against the decision table:
// controls, missing selection, create, resize, reposition, duplicate, plain click.
func (c Classifier) Classify(ev PointerDown, column geometry.Bounds, st *block.State) Decision {
	if ev.Target == TargetControl {
		return Decision{Mode: ModeIdle, StopPropagation: true, Reason: ReasonControl}
	}

	pointer := geometry.ClampInterval(c.Metrics.PixelToInterval(ev.Y, column.Top))

	target, onBlock := c.blockUnderPointer(ev, st)
	if !onBlock {
		sc, ok := st.Selected()
		if !ok {
			return Decision{Mode: ModeIdle, Err: block.ErrNoScheduleSelected, Reason: ReasonNoSchedule}
		}
		return Decision{
			Mode:   ModeCreating,
			Origin: pointer,
			Block: block.TimeBlock{
				ID:         block.PreviewID,
				ScheduleID: sc.ID,
				DayIndex:   ev.DayIndex,
				Start:      pointer,
				End:        pointer + 1,
				Color:      sc.Color,
			},
		}
	}

	if target.ScheduleID != st.SelectedID {
		return Decision{Mode: ModeIdle, Block: target, Reason: ReasonLocked}
	}

	if ev.Mods.None() {
		edge := c.nearEdge(ev.Y, column, target)
		switch edge {
		case EdgeBottom:
			return Decision{Mode: ModeResizing, Origin: target.Start, Edge: edge, Block: target}
		case EdgeTop:
			return Decision{Mode: ModeResizing, Origin: target.End, Edge: edge, Block: target}
		}
		return Decision{Mode: ModeIdle, Block: target, Reason: ReasonPlainClick}
	}

	mode, ok := c.Bindings.modeFor(ev.Mods)
	if !ok {
		return Decision{Mode: ModeIdle, Block: target, Reason: ReasonUnbound + " " + ev.Mods.String()}
	}
	return Decision{Mode: mode, Origin: pointer, Block: target}
}

// blockUnderPointer resolves the pressed block from the state.
// A block id that no longer resolves is treated as an empty cell.
func (c Classifier) blockUnderPointer(ev PointerDown, st *block.State) (block.TimeBlock, bool) {
	if ev.Target != TargetBlock || ev.BlockID == "" {
		return block.TimeBlock{}, false
	}
	return st.Blocks.FindAny(ev.BlockID)
}

// nearEdge returns the block edge within the grab threshold of pointerY.
// When both edges qualify the nearer wins, with ties going to the bottom.
func (c Classifier) nearEdge(pointerY float64, column geometry.Bounds, b block.TimeBlock) Edge {
	box := c.Metrics.IntervalRangeToPixelBox(b.Start, b.End)
	top := column.Top + box.Top
	bottom := column.Top + box.Bottom()

	dTop := math.Abs(pointerY - top)
	dBottom := math.Abs(bottom - pointerY)
	nearTop := dTop <= c.Metrics.EdgeThresholdPx
	nearBottom := dBottom <= c.Metrics.EdgeThresholdPx

	switch {
	case nearTop && nearBottom:
		if dTop < dBottom {
			return EdgeTop
		}
		return EdgeBottom
	case nearBottom:
		return EdgeBottom
	case nearTop:
		return EdgeTop
	default:
		return EdgeNone
	}
}
