// Package gesture turns pointer input on the week grid into create, resize,
// reposition and duplicate operations on time blocks.
package gesture

import "errors"

// Engine errors.
var (
	ErrSessionActive = errors.New("a gesture session is already active")
	ErrNoSession     = errors.New("no gesture session is active")
)

// Mode identifies the kind of gesture in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeResizing
	ModeRepositioning
	ModeDuplicating
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeResizing:
		return "resizing"
	case ModeRepositioning:
		return "repositioning"
	case ModeDuplicating:
		return "duplicating"
	default:
		return "idle"
	}
}

// Edge is the block boundary grabbed by a resize.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
)

// String returns the edge name used in logs.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Direction is the growing edge of a live preview.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// String returns the direction name used in logs.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Target is the kind of element under the pointer at press time.
type Target int

const (
	TargetGrid    Target = iota // Empty grid cell
	TargetBlock                 // Body of an existing block
	TargetControl               // Delete, lock or note button on a block
)
