package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/db"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import schedules from another database",
		Long: `Import every schedule, with its blocks and notes, from another
weekgrid database into the current one. Imported items get new ids.

Example:
  weekgrid import /path/to/other.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			res, err := importSchedules(context.Background(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(a.out, "Imported %d schedules, %d blocks and %d notes from %s\n",
				res.Schedules, res.Blocks, res.Notes, sourcePath)
			return nil
		},
	}

	return cmd
}

// importResult counts what an import copied.
type importResult struct {
	Schedules int
	Blocks    int
	Notes     int
}

func importSchedules(ctx context.Context, dest block.Repository, sourcePath string) (importResult, error) {
	var res importResult

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return res, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	source, err := block.LoadState(ctx, sourceRepo)
	if err != nil {
		return res, fmt.Errorf("loading source schedules: %w", err)
	}
	existing, err := dest.LoadSchedules(ctx)
	if err != nil {
		return res, fmt.Errorf("loading schedules: %w", err)
	}

	schedules := existing
	type imported struct {
		id     string
		blocks []block.TimeBlock
	}
	var pending []imported
	var notes []block.Note

	for _, sc := range source.Schedules {
		newSchedule := sc
		newSchedule.ID = uuid.NewString()
		schedules = append(schedules, newSchedule)

		var blocks []block.TimeBlock
		for _, b := range source.Blocks.Blocks(sc.ID) {
			newBlock := b
			newBlock.ID = uuid.NewString()
			newBlock.ScheduleID = newSchedule.ID
			blocks = append(blocks, newBlock)

			if n, ok := source.Notes[b.ID]; ok {
				notes = append(notes, block.Note{TimeBlockID: newBlock.ID, Content: n.Content})
			}
		}
		pending = append(pending, imported{id: newSchedule.ID, blocks: blocks})
	}

	if err := dest.SaveSchedules(ctx, schedules); err != nil {
		return res, fmt.Errorf("saving schedules: %w", err)
	}
	res.Schedules = len(pending)

	for _, p := range pending {
		if err := dest.SaveBlocks(ctx, p.id, p.blocks); err != nil {
			return res, fmt.Errorf("saving blocks: %w", err)
		}
		res.Blocks += len(p.blocks)
	}
	for _, n := range notes {
		if err := dest.SaveNote(ctx, n); err != nil {
			return res, fmt.Errorf("saving note for block %s: %w", n.TimeBlockID, err)
		}
		res.Notes++
	}

	return res, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
