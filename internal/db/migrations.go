package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedules (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			is_active  INTEGER NOT NULL DEFAULT 0,
			color      TEXT NOT NULL DEFAULT '',
			bg_color   TEXT NOT NULL DEFAULT '',
			position   INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS time_blocks (
			id             TEXT PRIMARY KEY,
			schedule_id    TEXT NOT NULL,
			day_index      INTEGER NOT NULL CHECK(day_index BETWEEN 0 AND 6),
			start_interval INTEGER NOT NULL CHECK(start_interval >= 0),
			end_interval   INTEGER NOT NULL CHECK(end_interval > start_interval AND end_interval <= 96),
			color          TEXT NOT NULL DEFAULT '',
			position       INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS notes (
			time_block_id TEXT PRIMARY KEY,
			content       TEXT NOT NULL,
			updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_time_blocks_schedule ON time_blocks(schedule_id, position);
		CREATE INDEX IF NOT EXISTS idx_time_blocks_day ON time_blocks(day_index, start_interval);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
