// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekgrid/internal/block"
)

// SQLite implements block.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ block.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Saves run from background commands; serialize them on one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadSchedules returns all schedules in display order.
func (s *SQLite) LoadSchedules(ctx context.Context) ([]block.Schedule, error) {
	query := `
		SELECT id, name, is_active, color, bg_color
		FROM schedules
		ORDER BY position, created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying schedules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var schedules []block.Schedule
	for rows.Next() {
		var sc block.Schedule
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.IsActive, &sc.Color, &sc.BgColor); err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	return schedules, nil
}

// SaveSchedules replaces the stored schedule list.
// Schedules missing from the list are deleted with their blocks and notes.
func (s *SQLite) SaveSchedules(ctx context.Context, schedules []block.Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := queryIDs(ctx, tx, `SELECT id FROM schedules`)
	if err != nil {
		return fmt.Errorf("querying schedule ids: %w", err)
	}

	keep := make(map[string]bool, len(schedules))
	for _, sc := range schedules {
		if strings.TrimSpace(sc.Name) == "" {
			return fmt.Errorf("schedule %s: %w", sc.ID, block.ErrEmptyName)
		}
		keep[sc.ID] = true
	}
	for _, id := range existing {
		if !keep[id] {
			if err := deleteScheduleTx(ctx, tx, id); err != nil {
				return err
			}
		}
	}

	query := `
		INSERT INTO schedules (id, name, is_active, color, bg_color, position)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			is_active = excluded.is_active,
			color = excluded.color,
			bg_color = excluded.bg_color,
			position = excluded.position
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, sc := range schedules {
		if _, err := stmt.ExecContext(ctx, sc.ID, sc.Name, sc.IsActive, sc.Color, sc.BgColor, i); err != nil {
			return fmt.Errorf("saving schedule %q: %w", sc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LoadBlocks returns the blocks of one schedule in insertion order.
func (s *SQLite) LoadBlocks(ctx context.Context, scheduleID string) ([]block.TimeBlock, error) {
	query := `
		SELECT id, schedule_id, day_index, start_interval, end_interval, color
		FROM time_blocks
		WHERE schedule_id = ?
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("querying time blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanBlocks(rows)
}

// ListBlocks returns every stored block ordered by day and start interval.
func (s *SQLite) ListBlocks(ctx context.Context) ([]block.TimeBlock, error) {
	query := `
		SELECT id, schedule_id, day_index, start_interval, end_interval, color
		FROM time_blocks
		ORDER BY day_index, start_interval, end_interval
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying time blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanBlocks(rows)
}

func scanBlocks(rows *sql.Rows) ([]block.TimeBlock, error) {
	var blocks []block.TimeBlock
	for rows.Next() {
		var b block.TimeBlock
		if err := rows.Scan(&b.ID, &b.ScheduleID, &b.DayIndex, &b.Start, &b.End, &b.Color); err != nil {
			return nil, fmt.Errorf("scanning time block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time blocks: %w", err)
	}
	return blocks, nil
}

// SaveBlocks replaces the stored block list of one schedule.
// Blocks missing from the list are deleted along with their notes.
func (s *SQLite) SaveBlocks(ctx context.Context, scheduleID string, blocks []block.TimeBlock) error {
	keep := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.ScheduleID != scheduleID {
			return fmt.Errorf("block %s belongs to schedule %q, not %q", b.ID, b.ScheduleID, scheduleID)
		}
		if b.IsPreview() {
			return fmt.Errorf("refusing to store uncommitted preview block")
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		keep[b.ID] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := queryIDs(ctx, tx, `SELECT id FROM time_blocks WHERE schedule_id = ?`, scheduleID)
	if err != nil {
		return fmt.Errorf("querying block ids: %w", err)
	}
	for _, id := range existing {
		if !keep[id] {
			if err := deleteBlockTx(ctx, tx, id); err != nil {
				return err
			}
		}
	}

	query := `
		INSERT INTO time_blocks (id, schedule_id, day_index, start_interval, end_interval, color, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day_index = excluded.day_index,
			start_interval = excluded.start_interval,
			end_interval = excluded.end_interval,
			color = excluded.color,
			position = excluded.position
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range blocks {
		if _, err := stmt.ExecContext(ctx, b.ID, b.ScheduleID, b.DayIndex, b.Start, b.End, b.Color, i); err != nil {
			return fmt.Errorf("saving time block %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LoadNote returns the note of a block, or nil if it has none.
func (s *SQLite) LoadNote(ctx context.Context, timeBlockID string) (*block.Note, error) {
	query := `SELECT time_block_id, content FROM notes WHERE time_block_id = ?`

	var n block.Note
	err := s.db.QueryRowContext(ctx, query, timeBlockID).Scan(&n.TimeBlockID, &n.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying note: %w", err)
	}

	return &n, nil
}

// SaveNote creates or replaces a note.
func (s *SQLite) SaveNote(ctx context.Context, note block.Note) error {
	if strings.TrimSpace(note.Content) == "" {
		return s.DeleteNote(ctx, note.TimeBlockID)
	}

	query := `
		INSERT INTO notes (time_block_id, content, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(time_block_id) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, note.TimeBlockID, note.Content, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// DeleteNote removes a block's note. Deleting a missing note is not an error.
func (s *SQLite) DeleteNote(ctx context.Context, timeBlockID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE time_block_id = ?`, timeBlockID); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// DeleteBlock removes a block and its note.
func (s *SQLite) DeleteBlock(ctx context.Context, timeBlockID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteBlockTx(ctx, tx, timeBlockID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteSchedule removes a schedule, its blocks, and their notes.
// Returns block.ErrScheduleNotFound if no such schedule is stored.
func (s *SQLite) DeleteSchedule(ctx context.Context, scheduleID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE id = ?`, scheduleID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("querying schedule: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", block.ErrScheduleNotFound, scheduleID)
	}

	if err := deleteScheduleTx(ctx, tx, scheduleID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func deleteBlockTx(ctx context.Context, tx *sql.Tx, id string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE time_block_id = ?`, id); err != nil {
		return fmt.Errorf("deleting note of block %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting block %s: %w", id, err)
	}
	return nil
}

func deleteScheduleTx(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM notes WHERE time_block_id IN (SELECT id FROM time_blocks WHERE schedule_id = ?)`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting notes of schedule %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM time_blocks WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("deleting blocks of schedule %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting schedule %s: %w", id, err)
	}
	return nil
}

func queryIDs(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return ids, rows.Err()
}
