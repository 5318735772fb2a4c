package block

import "context"

// Repository defines the storage interface for schedules, blocks and notes.
type Repository interface {
	// LoadSchedules returns all schedules in display order.
	LoadSchedules(ctx context.Context) ([]Schedule, error)

	// SaveSchedules replaces the stored schedule list.
	// Schedules missing from the list are deleted along with their blocks and notes.
	SaveSchedules(ctx context.Context, schedules []Schedule) error

	// LoadBlocks returns the blocks of one schedule in insertion order.
	LoadBlocks(ctx context.Context, scheduleID string) ([]TimeBlock, error)

	// SaveBlocks replaces the stored block list of one schedule.
	// Blocks missing from the list are deleted along with their notes.
	SaveBlocks(ctx context.Context, scheduleID string, blocks []TimeBlock) error

	// LoadNote returns the note of a block, or nil if it has none.
	LoadNote(ctx context.Context, timeBlockID string) (*Note, error)

	// SaveNote creates or replaces a note.
	SaveNote(ctx context.Context, note Note) error

	// DeleteNote removes a block's note. Deleting a missing note is not an error.
	DeleteNote(ctx context.Context, timeBlockID string) error

	// DeleteBlock removes a block and its note.
	DeleteBlock(ctx context.Context, timeBlockID string) error

	// DeleteSchedule removes a schedule, its blocks, and their notes.
	DeleteSchedule(ctx context.Context, scheduleID string) error

	// Close releases any resources held by the repository.
	Close() error
}

// LoadState reads every schedule with its blocks and notes into a new State.
// The first schedule becomes the selected one.
func LoadState(ctx context.Context, repo Repository) (*State, error) {
	st := NewState()

	schedules, err := repo.LoadSchedules(ctx)
	if err != nil {
		return nil, err
	}
	st.Schedules = schedules
	if len(schedules) > 0 {
		st.SelectedID = schedules[0].ID
	}

	for _, sc := range schedules {
		blocks, err := repo.LoadBlocks(ctx, sc.ID)
		if err != nil {
			return nil, err
		}
		st.Blocks = st.Blocks.with(sc.ID, blocks)
		for _, b := range blocks {
			note, err := repo.LoadNote(ctx, b.ID)
			if err != nil {
				return nil, err
			}
			if note != nil {
				st.Notes[b.ID] = *note
			}
		}
	}
	return st, nil
}
