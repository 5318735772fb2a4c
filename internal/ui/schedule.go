package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/palette"
)

func (a *App) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"schedules"},
		Short:   "Manage schedules",
		Long: `Manage the named, colored schedules that group time blocks.

Schedules can be referred to by name (case-insensitive) or by id.`,
	}

	cmd.AddCommand(a.scheduleAddCmd())
	cmd.AddCommand(a.scheduleListCmd())
	cmd.AddCommand(a.scheduleRemoveCmd())
	cmd.AddCommand(a.scheduleRecolorCmd())
	cmd.AddCommand(a.scheduleRenameCmd())
	cmd.AddCommand(a.scheduleToggleCmd())
	return cmd
}

func (a *App) scheduleAddCmd() *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a schedule with a generated color",
		Example: `  weekgrid schedule add work
  weekgrid schedule add "side project" --hidden`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}

			pair := palette.Generate(st.Colors(), a.rnd)
			sc := block.Schedule{
				ID:       uuid.NewString(),
				Name:     strings.Join(args, " "),
				IsActive: !hidden,
				Color:    pair.Color,
				BgColor:  pair.BgColor,
			}
			if err := st.AddSchedule(sc); err != nil {
				return err
			}
			if err := a.repo.SaveSchedules(ctx, st.Schedules); err != nil {
				return fmt.Errorf("saving schedules: %w", err)
			}

			added := st.Schedules[len(st.Schedules)-1]
			_, _ = fmt.Fprintf(a.out, "Added schedule %s (%s)\n", formatSchedule(added.Name), added.Color)
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "Only show the schedule on the grid while it is selected")
	return cmd
}

func (a *App) scheduleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List schedules",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			st, err := a.loadState(context.Background())
			if err != nil {
				return err
			}

			if len(st.Schedules) == 0 {
				_, _ = fmt.Fprintln(a.out, "No schedules yet. Add one with 'weekgrid schedule add <name>'.")
				return nil
			}

			for _, sc := range st.Schedules {
				marker := formatMuted("○")
				if sc.IsActive {
					marker = formatActive("●")
				}
				blocks := st.Blocks.Blocks(sc.ID)
				intervals := 0
				for _, b := range blocks {
					intervals += b.Span()
				}
				_, _ = fmt.Fprintf(a.out, "  %s %s  %s  %s\n",
					marker,
					formatSchedule(sc.Name),
					formatMuted(sc.Color),
					formatMuted(fmt.Sprintf("%d blocks, %s", len(blocks), FormatDuration(intervals))),
				)
			}
			return nil
		},
	}
}

func (a *App) scheduleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <schedule>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a schedule with its blocks and notes",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			sc, err := findSchedule(st, args[0])
			if err != nil {
				return err
			}

			removed, err := st.DeleteSchedule(sc.ID)
			if err != nil {
				return err
			}
			if err := a.repo.DeleteSchedule(ctx, sc.ID); err != nil {
				return fmt.Errorf("deleting schedule: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Deleted schedule %s (%d blocks)\n", formatSchedule(sc.Name), len(removed))
			return nil
		},
	}
}

func (a *App) scheduleRecolorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recolor <schedule>",
		Short: "Pick a new color for a schedule and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			sc, err := findSchedule(st, args[0])
			if err != nil {
				return err
			}

			var others []string
			for _, other := range st.Schedules {
				if other.ID != sc.ID {
					others = append(others, other.Color)
				}
			}
			pair := palette.Generate(others, a.rnd)
			if err := st.RecolorSchedule(sc.ID, pair.Color, pair.BgColor); err != nil {
				return err
			}

			if err := a.repo.SaveSchedules(ctx, st.Schedules); err != nil {
				return fmt.Errorf("saving schedules: %w", err)
			}
			blocks := st.Blocks.Blocks(sc.ID)
			if err := a.repo.SaveBlocks(ctx, sc.ID, blocks); err != nil {
				return fmt.Errorf("saving blocks: %w", err)
			}

			_, _ = fmt.Fprintf(a.out, "Recolored %s: %s -> %s (%d blocks)\n",
				formatSchedule(sc.Name), sc.Color, pair.Color, len(blocks))
			return nil
		},
	}
}

func (a *App) scheduleRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <schedule> <new name>",
		Short: "Rename a schedule",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			sc, err := findSchedule(st, args[0])
			if err != nil {
				return err
			}

			name := strings.Join(args[1:], " ")
			if err := st.RenameSchedule(sc.ID, name); err != nil {
				return err
			}
			if err := a.repo.SaveSchedules(ctx, st.Schedules); err != nil {
				return fmt.Errorf("saving schedules: %w", err)
			}

			renamed, _ := st.Schedule(sc.ID)
			_, _ = fmt.Fprintf(a.out, "Renamed %s to %s\n", sc.Name, formatSchedule(renamed.Name))
			return nil
		},
	}
}

func (a *App) scheduleToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <schedule>",
		Short: "Show or hide a schedule on the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			sc, err := findSchedule(st, args[0])
			if err != nil {
				return err
			}

			if err := st.ToggleActive(sc.ID); err != nil {
				return err
			}
			if err := a.repo.SaveSchedules(ctx, st.Schedules); err != nil {
				return fmt.Errorf("saving schedules: %w", err)
			}

			state := "hidden"
			if !sc.IsActive {
				state = "shown"
			}
			_, _ = fmt.Fprintf(a.out, "%s is now %s\n", formatSchedule(sc.Name), state)
			return nil
		},
	}
}

// findSchedule resolves a schedule by id or by case-insensitive name.
func findSchedule(st *block.State, ref string) (block.Schedule, error) {
	ref = strings.TrimSpace(ref)
	if sc, ok := st.Schedule(ref); ok {
		return sc, nil
	}

	var matches []block.Schedule
	for _, sc := range st.Schedules {
		if strings.EqualFold(sc.Name, ref) {
			matches = append(matches, sc)
		}
	}
	switch len(matches) {
	case 0:
		return block.Schedule{}, fmt.Errorf("%w: %s", block.ErrScheduleNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return block.Schedule{}, fmt.Errorf("%d schedules are named %q, use the id instead", len(matches), ref)
	}
}
