package block

import (
	"fmt"
	"strings"
)

// State is the in-memory application state shared by the gesture engine and
// the schedule management actions. It replaces ambient globals: callers pass
// it explicitly to whatever needs to read or mutate it.
type State struct {
	Schedules  []Schedule
	SelectedID string // Empty when no schedule is selected
	Blocks     Collection
	Notes      map[string]Note // Keyed by time block id
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		Blocks: Collection{},
		Notes:  make(map[string]Note),
	}
}

// Schedule returns the schedule with the given id.
func (s *State) Schedule(id string) (Schedule, bool) {
	for _, sc := range s.Schedules {
		if sc.ID == id {
			return sc, true
		}
	}
	return Schedule{}, false
}

// Selected returns the selected schedule, if any.
func (s *State) Selected() (Schedule, bool) {
	if s.SelectedID == "" {
		return Schedule{}, false
	}
	return s.Schedule(s.SelectedID)
}

// Select makes a schedule the selected one. An empty id clears the selection.
func (s *State) Select(id string) error {
	if id == "" {
		s.SelectedID = ""
		return nil
	}
	if _, ok := s.Schedule(id); !ok {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	s.SelectedID = id
	return nil
}

// SelectIndex selects the schedule at position i in the schedule list.
func (s *State) SelectIndex(i int) error {
	if i < 0 || i >= len(s.Schedules) {
		return fmt.Errorf("%w: index %d", ErrScheduleNotFound, i)
	}
	s.SelectedID = s.Schedules[i].ID
	return nil
}

// SelectedIndex returns the position of the selected schedule, or -1.
func (s *State) SelectedIndex() int {
	for i, sc := range s.Schedules {
		if sc.ID == s.SelectedID {
			return i
		}
	}
	return -1
}

// AddSchedule appends a schedule. The first schedule added becomes selected.
func (s *State) AddSchedule(sc Schedule) error {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return ErrEmptyName
	}
	s.Schedules = append(s.Schedules, sc)
	if s.SelectedID == "" {
		s.SelectedID = sc.ID
	}
	return nil
}

// RenameSchedule changes a schedule's name.
func (s *State) RenameSchedule(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return s.updateSchedule(id, func(sc *Schedule) { sc.Name = name })
}

// ToggleActive flips a schedule's visibility.
func (s *State) ToggleActive(id string) error {
	return s.updateSchedule(id, func(sc *Schedule) { sc.IsActive = !sc.IsActive })
}

// RecolorSchedule sets a schedule's colors and rewrites its blocks' colors.
func (s *State) RecolorSchedule(id, color, bgColor string) error {
	if err := s.updateSchedule(id, func(sc *Schedule) {
		sc.Color = color
		sc.BgColor = bgColor
	}); err != nil {
		return err
	}
	s.Blocks = s.Blocks.Recolor(id, color)
	return nil
}

func (s *State) updateSchedule(id string, fn func(*Schedule)) error {
	for i := range s.Schedules {
		if s.Schedules[i].ID == id {
			fn(&s.Schedules[i])
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
}

// DeleteSchedule removes a schedule with all of its blocks and their notes.
// Returns the ids of the removed blocks.
func (s *State) DeleteSchedule(id string) ([]string, error) {
	idx := -1
	for i, sc := range s.Schedules {
		if sc.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}

	schedules := make([]Schedule, 0, len(s.Schedules)-1)
	schedules = append(schedules, s.Schedules[:idx]...)
	s.Schedules = append(schedules, s.Schedules[idx+1:]...)

	var removed []string
	s.Blocks, removed = s.Blocks.RemoveSchedule(id)
	for _, blockID := range removed {
		delete(s.Notes, blockID)
	}

	if s.SelectedID == id {
		s.SelectedID = ""
		if len(s.Schedules) > 0 {
			s.SelectedID = s.Schedules[0].ID
		}
	}
	return removed, nil
}

// DeleteBlock removes a block and its note.
// Returns the id of the schedule that owned the block.
func (s *State) DeleteBlock(id string) (string, error) {
	blocks, scheduleID, ok := s.Blocks.Remove(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	s.Blocks = blocks
	delete(s.Notes, id)
	return scheduleID, nil
}

// SetNote stores a note for a block. Empty content deletes the note.
// Returns true if a note remains after the call.
func (s *State) SetNote(blockID, content string) (Note, bool, error) {
	if _, ok := s.Blocks.FindAny(blockID); !ok {
		return Note{}, false, fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		delete(s.Notes, blockID)
		return Note{TimeBlockID: blockID}, false, nil
	}
	n := Note{TimeBlockID: blockID, Content: content}
	s.Notes[blockID] = n
	return n, true, nil
}

// HasNote reports whether a block carries a note.
func (s *State) HasNote(blockID string) bool {
	_, ok := s.Notes[blockID]
	return ok
}

// Visible returns the blocks drawn on the grid: every active schedule plus
// the selected one. The selected schedule's blocks come last so they render
// on top.
func (s *State) Visible() []TimeBlock {
	var out []TimeBlock
	for _, sc := range s.Schedules {
		if sc.ID == s.SelectedID || !sc.IsActive {
			continue
		}
		out = append(out, s.Blocks[sc.ID]...)
	}
	if s.SelectedID != "" {
		out = append(out, s.Blocks[s.SelectedID]...)
	}
	return out
}

// Colors returns the accent colors of all schedules.
func (s *State) Colors() []string {
	colors := make([]string, 0, len(s.Schedules))
	for _, sc := range s.Schedules {
		colors = append(colors, sc.Color)
	}
	return colors
}
