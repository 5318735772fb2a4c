package gesture

import (
	"github.com/google/uuid"

	"github.com/javiermolinar/weekgrid/internal/block"
)

// Result is the final block produced by a gesture session.
type Result struct {
	Block         block.TimeBlock
	ActiveBlockID string // Empty when creating
}

// Outcome reports what a commit did to the collection.
type Outcome struct {
	Block   block.TimeBlock // Block as stored after the commit
	Applied bool            // False when the commit was dropped
}

// Applier commits gesture results into a block collection.
// It never mutates the collection it is given.
type Applier struct {
	NewID func() string
}

// NewApplier returns an applier that mints uuid identities.
func NewApplier() Applier {
	return Applier{NewID: uuid.NewString}
}

func (a Applier) id() string {
	if a.NewID == nil {
		return uuid.NewString()
	}
	return a.NewID()
}

// Apply commits one gesture result.
// Resize, reposition and duplicate results whose block no longer exists are
// dropped and the original collection is returned unchanged.
func (a Applier) Apply(mode Mode, res Result, blocks block.Collection, selectedID string) (block.Collection, Outcome) {
	switch mode {
	case ModeCreating:
		return a.create(res, blocks, selectedID)
	case ModeResizing, ModeRepositioning:
		return a.update(mode, res, blocks, selectedID)
	case ModeDuplicating:
		return a.duplicate(res, blocks)
	default:
		return blocks, Outcome{}
	}
}

func (a Applier) create(res Result, blocks block.Collection, selectedID string) (block.Collection, Outcome) {
	if selectedID == "" {
		return blocks, Outcome{}
	}
	b := res.Block.Normalized()
	b.ID = a.id()
	b.ScheduleID = selectedID
	if err := b.Validate(); err != nil {
		return blocks, Outcome{}
	}
	return blocks.Append(b), Outcome{Block: b, Applied: true}
}

func (a Applier) update(mode Mode, res Result, blocks block.Collection, selectedID string) (block.Collection, Outcome) {
	existing, _, ok := blocks.Find(selectedID, res.ActiveBlockID)
	if !ok {
		return blocks, Outcome{}
	}
	final := res.Block.Normalized()
	existing.Start, existing.End = final.Start, final.End
	if mode == ModeRepositioning {
		existing.DayIndex = final.DayIndex
	}
	if err := existing.Validate(); err != nil {
		return blocks, Outcome{}
	}
	next, ok := blocks.Replace(selectedID, existing)
	if !ok {
		return blocks, Outcome{}
	}
	return next, Outcome{Block: existing, Applied: true}
}

func (a Applier) duplicate(res Result, blocks block.Collection) (block.Collection, Outcome) {
	src, ok := blocks.FindAny(res.ActiveBlockID)
	if !ok {
		return blocks, Outcome{}
	}
	cp := src
	cp.ID = a.id()
	cp.DayIndex = res.Block.DayIndex
	if err := cp.Validate(); err != nil {
		return blocks, Outcome{}
	}
	return blocks.Append(cp), Outcome{Block: cp, Applied: true}
}
