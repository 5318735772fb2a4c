package gesture

import (
	"fmt"
	"strings"
)

// Modifiers are the modifier keys held during a pointer press.
type Modifiers struct {
	Meta  bool
	Shift bool
}

// None reports whether no modifier is held.
func (m Modifiers) None() bool {
	return !m.Meta && !m.Shift
}

// String renders modifiers as a chord, e.g. "meta+shift".
func (m Modifiers) String() string {
	var parts []string
	if m.Meta {
		parts = append(parts, "meta")
	}
	if m.Shift {
		parts = append(parts, "shift")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// ParseChord parses a chord such as "meta", "meta+shift" or "shift+meta".
func ParseChord(s string) (Modifiers, error) {
	var m Modifiers
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return m, fmt.Errorf("empty key chord")
	}
	for _, part := range strings.Split(s, "+") {
		switch strings.TrimSpace(part) {
		case "meta", "cmd":
			m.Meta = true
		case "shift":
			m.Shift = true
		default:
			return Modifiers{}, fmt.Errorf("unknown modifier %q in chord %q", part, s)
		}
	}
	return m, nil
}

// Bindings maps modifier chords to block gestures.
type Bindings struct {
	Reposition Modifiers
	Duplicate  Modifiers
}

// DefaultBindings returns meta+shift for reposition and meta for duplicate.
func DefaultBindings() Bindings {
	return Bindings{
		Reposition: Modifiers{Meta: true, Shift: true},
		Duplicate:  Modifiers{Meta: true},
	}
}

// ParseBindings builds bindings from chord strings.
func ParseBindings(reposition, duplicate string) (Bindings, error) {
	rep, err := ParseChord(reposition)
	if err != nil {
		return Bindings{}, fmt.Errorf("reposition: %w", err)
	}
	dup, err := ParseChord(duplicate)
	if err != nil {
		return Bindings{}, fmt.Errorf("duplicate: %w", err)
	}
	b := Bindings{Reposition: rep, Duplicate: dup}
	if err := b.Validate(); err != nil {
		return Bindings{}, err
	}
	return b, nil
}

// Validate checks that both gestures are reachable and distinct.
func (b Bindings) Validate() error {
	if b.Reposition.None() || b.Duplicate.None() {
		return fmt.Errorf("gesture chords must hold at least one modifier")
	}
	if b.Reposition == b.Duplicate {
		return fmt.Errorf("reposition and duplicate chords must differ (both %s)", b.Reposition)
	}
	return nil
}

// modeFor returns the block gesture bound to a chord.
func (b Bindings) modeFor(m Modifiers) (Mode, bool) {
	switch m {
	case b.Reposition:
		return ModeRepositioning, true
	case b.Duplicate:
		return ModeDuplicating, true
	default:
		return ModeIdle, false
	}
}
