package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/block"
)

func (a *App) blocksCmd() *cobra.Command {
	var (
		schedule string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List time blocks grouped by day",
		Long: `List the week's time blocks grouped by day.

Blocks with a note are marked with '*'. Without --schedule, blocks of
every schedule are listed together with the schedule name.`,
		Example: `  weekgrid blocks
  weekgrid blocks --schedule work -v`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}

			filter := ""
			if schedule != "" {
				sc, err := findSchedule(st, schedule)
				if err != nil {
					return err
				}
				filter = sc.ID
			}

			blocks, err := a.repo.ListBlocks(ctx)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}
			rows := blockRows(st, blocks, filter)

			if len(rows) == 0 {
				_, _ = fmt.Fprintln(a.out, "No time blocks found.")
				return nil
			}

			PrintBlockRows(a.out, rows, PrintOpts{
				Verbose:      verbose,
				ShowSchedule: filter == "",
			})

			intervals := 0
			for _, r := range rows {
				intervals += r.Block.Span()
			}
			_, _ = fmt.Fprintf(a.out, "\n%s\n", formatMuted(fmt.Sprintf("%d blocks, %s", len(rows), FormatDuration(intervals))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schedule, "schedule", "s", "", "Only list blocks of this schedule")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full notes")
	return cmd
}

// blockRows pairs stored blocks with their schedule name and note. An empty
// scheduleID keeps every block.
func blockRows(st *block.State, blocks []block.TimeBlock, scheduleID string) []BlockRow {
	rows := make([]BlockRow, 0, len(blocks))
	for _, b := range blocks {
		if scheduleID != "" && b.ScheduleID != scheduleID {
			continue
		}
		r := BlockRow{Block: b}
		if sc, ok := st.Schedule(b.ScheduleID); ok {
			r.Schedule = sc.Name
		}
		if n, ok := st.Notes[b.ID]; ok {
			r.Note = n.Content
		}
		rows = append(rows, r)
	}
	return rows
}
