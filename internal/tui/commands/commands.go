// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/db"
)

// StateLoadedMsg is sent when schedules, blocks and notes are loaded.
type StateLoadedMsg struct {
	State *block.State
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// PersistErrMsg is sent when a background write fails.
type PersistErrMsg struct {
	Op  string
	Err error
}

// WriterClosedMsg is sent once the writer has stopped.
type WriterClosedMsg struct{}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// RecentExpiredMsg is sent when the recent-block highlight should fade.
type RecentExpiredMsg struct{}

// LoadState loads every schedule with its blocks and notes.
func LoadState(repo block.Repository) tea.Cmd {
	return func() tea.Msg {
		st, err := block.LoadState(context.Background(), repo)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading schedules: %w", err)}
		}
		return StateLoadedMsg{State: st}
	}
}

// WaitForWriteError blocks until the writer reports a failure or closes.
// Re-issue it after each PersistErrMsg to keep listening.
func WaitForWriteError(w *db.Writer) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-w.Errors()
		if !ok {
			return WriterClosedMsg{}
		}
		var we *db.WriteError
		if errors.As(err, &we) {
			return PersistErrMsg{Op: we.Op, Err: we.Err}
		}
		return PersistErrMsg{Op: "write", Err: err}
	}
}

// Status shows a message for a few seconds.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ExpireRecentAfter fades the recent-block highlight after d.
func ExpireRecentAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RecentExpiredMsg{}
	})
}

// Persister queues repository writes on a Writer. Writes are submitted
// synchronously from the update loop so they reach storage in the order
// the state changed. Each write receives its own copy of the data.
type Persister struct {
	repo   block.Repository
	writer *db.Writer
}

// NewPersister creates a Persister.
func NewPersister(repo block.Repository, writer *db.Writer) *Persister {
	return &Persister{repo: repo, writer: writer}
}

// Writer returns the underlying writer.
func (p *Persister) Writer() *db.Writer {
	return p.writer
}

func (p *Persister) submit(op string, fn func(context.Context) error) bool {
	if p == nil || p.repo == nil || p.writer == nil {
		return false
	}
	return p.writer.Submit(op, fn)
}

// SaveSchedules queues a write of the full schedule list.
func (p *Persister) SaveSchedules(schedules []block.Schedule) bool {
	snapshot := slices.Clone(schedules)
	return p.submit("saving schedules", func(ctx context.Context) error {
		return p.repo.SaveSchedules(ctx, snapshot)
	})
}

// SaveBlocks queues a write of one schedule's block list.
func (p *Persister) SaveBlocks(scheduleID string, blocks []block.TimeBlock) bool {
	snapshot := slices.Clone(blocks)
	return p.submit("saving blocks", func(ctx context.Context) error {
		return p.repo.SaveBlocks(ctx, scheduleID, snapshot)
	})
}

// SaveNote queues a note write. A removed note is deleted instead.
func (p *Persister) SaveNote(note block.Note, keep bool) bool {
	if !keep {
		return p.submit("deleting note", func(ctx context.Context) error {
			return p.repo.DeleteNote(ctx, note.TimeBlockID)
		})
	}
	return p.submit("saving note", func(ctx context.Context) error {
		return p.repo.SaveNote(ctx, note)
	})
}

// DeleteBlock queues removal of a block and its note.
func (p *Persister) DeleteBlock(id string) bool {
	return p.submit("deleting block", func(ctx context.Context) error {
		return p.repo.DeleteBlock(ctx, id)
	})
}

// DeleteSchedule queues removal of a schedule with its blocks and notes.
func (p *Persister) DeleteSchedule(id string) bool {
	return p.submit("deleting schedule", func(ctx context.Context) error {
		return p.repo.DeleteSchedule(ctx, id)
	})
}
