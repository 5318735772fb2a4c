package block

// Collection holds time blocks keyed by schedule id.
// It is treated as immutable: every mutation returns a new Collection that
// shares the untouched schedule lists with the original.
type Collection map[string][]TimeBlock

// Blocks returns the blocks of a schedule.
func (c Collection) Blocks(scheduleID string) []TimeBlock {
	return c[scheduleID]
}

// Find returns the block with the given id inside a schedule.
func (c Collection) Find(scheduleID, id string) (TimeBlock, int, bool) {
	for i, b := range c[scheduleID] {
		if b.ID == id {
			return b, i, true
		}
	}
	return TimeBlock{}, -1, false
}

// FindAny looks a block up across all schedules.
func (c Collection) FindAny(id string) (TimeBlock, bool) {
	for _, blocks := range c {
		for _, b := range blocks {
			if b.ID == id {
				return b, true
			}
		}
	}
	return TimeBlock{}, false
}

// with returns a shallow copy of the collection with one schedule replaced.
func (c Collection) with(scheduleID string, blocks []TimeBlock) Collection {
	out := make(Collection, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[scheduleID] = blocks
	return out
}

// Append adds a block to the end of its schedule's list.
func (c Collection) Append(b TimeBlock) Collection {
	existing := c[b.ScheduleID]
	blocks := make([]TimeBlock, len(existing), len(existing)+1)
	copy(blocks, existing)
	return c.with(b.ScheduleID, append(blocks, b))
}

// Replace swaps the block with the same id in the given schedule.
// Returns false and the unchanged collection if the block is not found.
func (c Collection) Replace(scheduleID string, b TimeBlock) (Collection, bool) {
	_, idx, ok := c.Find(scheduleID, b.ID)
	if !ok {
		return c, false
	}
	blocks := make([]TimeBlock, len(c[scheduleID]))
	copy(blocks, c[scheduleID])
	blocks[idx] = b
	return c.with(scheduleID, blocks), true
}

// Remove deletes a block from every schedule list.
// Returns the schedule the block belonged to, or false if it was not present.
func (c Collection) Remove(id string) (Collection, string, bool) {
	for scheduleID, blocks := range c {
		for i, b := range blocks {
			if b.ID != id {
				continue
			}
			kept := make([]TimeBlock, 0, len(blocks)-1)
			kept = append(kept, blocks[:i]...)
			kept = append(kept, blocks[i+1:]...)
			return c.with(scheduleID, kept), scheduleID, true
		}
	}
	return c, "", false
}

// RemoveSchedule drops a schedule and returns the ids of the blocks it held.
func (c Collection) RemoveSchedule(scheduleID string) (Collection, []string) {
	blocks, ok := c[scheduleID]
	if !ok {
		return c, nil
	}
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	out := make(Collection, len(c))
	for k, v := range c {
		if k != scheduleID {
			out[k] = v
		}
	}
	return out, ids
}

// Recolor rewrites the denormalized color of every block in a schedule.
func (c Collection) Recolor(scheduleID, color string) Collection {
	existing, ok := c[scheduleID]
	if !ok {
		return c
	}
	blocks := make([]TimeBlock, len(existing))
	for i, b := range existing {
		b.Color = color
		blocks[i] = b
	}
	return c.with(scheduleID, blocks)
}

// OnDay returns the blocks of a schedule on a given day.
func (c Collection) OnDay(scheduleID string, day int) []TimeBlock {
	var out []TimeBlock
	for _, b := range c[scheduleID] {
		if b.DayIndex == day {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the total number of blocks across all schedules.
func (c Collection) Len() int {
	n := 0
	for _, blocks := range c {
		n += len(blocks)
	}
	return n
}
