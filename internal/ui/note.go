package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/block"
)

func (a *App) noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Manage block notes",
		Long: `Read and edit the note attached to a time block.

Blocks are referred to by id or by any unique id prefix, as printed by
'weekgrid blocks'.`,
	}

	cmd.AddCommand(a.noteSetCmd())
	cmd.AddCommand(a.noteShowCmd())
	cmd.AddCommand(a.noteRemoveCmd())
	return cmd
}

func (a *App) noteSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set <block> <text>",
		Short:   "Set a block's note",
		Example: `  weekgrid note set 1a2b3c4d "standup, then review"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			b, err := findBlock(st, args[0])
			if err != nil {
				return err
			}

			note, kept, err := st.SetNote(b.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !kept {
				if err := a.repo.DeleteNote(ctx, b.ID); err != nil {
					return fmt.Errorf("deleting note: %w", err)
				}
				_, _ = fmt.Fprintf(a.out, "Removed note from %s\n", describeBlock(b))
				return nil
			}
			if err := a.repo.SaveNote(ctx, note); err != nil {
				return fmt.Errorf("saving note: %w", err)
			}
			_, _ = fmt.Fprintf(a.out, "Saved note on %s\n", describeBlock(b))
			return nil
		},
	}
}

func (a *App) noteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <block>",
		Short: "Print a block's note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			st, err := a.loadState(context.Background())
			if err != nil {
				return err
			}
			b, err := findBlock(st, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(a.out, formatHeader(describeBlock(b)))
			n, ok := st.Notes[b.ID]
			if !ok {
				_, _ = fmt.Fprintln(a.out, formatMuted("(no note)"))
				return nil
			}
			_, _ = fmt.Fprintln(a.out, formatNote(n.Content))
			return nil
		},
	}
}

func (a *App) noteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <block>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a block's note",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := a.loadState(ctx)
			if err != nil {
				return err
			}
			b, err := findBlock(st, args[0])
			if err != nil {
				return err
			}

			if !st.HasNote(b.ID) {
				_, _ = fmt.Fprintf(a.out, "%s has no note\n", describeBlock(b))
				return nil
			}
			if err := a.repo.DeleteNote(ctx, b.ID); err != nil {
				return fmt.Errorf("deleting note: %w", err)
			}
			_, _ = fmt.Fprintf(a.out, "Removed note from %s\n", describeBlock(b))
			return nil
		},
	}
}

// findBlock resolves a block by id or by a unique id prefix.
func findBlock(st *block.State, ref string) (block.TimeBlock, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return block.TimeBlock{}, fmt.Errorf("%w: empty id", block.ErrBlockNotFound)
	}
	if b, ok := st.Blocks.FindAny(ref); ok {
		return b, nil
	}

	var matches []block.TimeBlock
	for _, sc := range st.Schedules {
		for _, b := range st.Blocks.Blocks(sc.ID) {
			if strings.HasPrefix(b.ID, ref) {
				matches = append(matches, b)
			}
		}
	}
	switch len(matches) {
	case 0:
		return block.TimeBlock{}, fmt.Errorf("%w: %s", block.ErrBlockNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return block.TimeBlock{}, fmt.Errorf("block id prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func describeBlock(b block.TimeBlock) string {
	return fmt.Sprintf("%s %s", WeekdayName(b.DayIndex), b.Label())
}
