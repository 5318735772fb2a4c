package ui

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/db"
	"github.com/javiermolinar/weekgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// Store is the repository the CLI reads and writes. It extends
// block.Repository with a flat listing of every block.
type Store interface {
	block.Repository
	ListBlocks(ctx context.Context) ([]block.TimeBlock, error)
}

// App holds the CLI application state.
type App struct {
	repo    Store
	config  *config.Config
	root    *cobra.Command
	out     io.Writer
	rnd     *rand.Rand
	opened  bool // repo was opened by the app and must be closed
	debug   bool // Enable debug logging
	noColor bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repo is opened from the configured database path on first use.
func NewApp(repo Store, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		repo:   repo,
		config: cfg,
		out:    os.Stdout,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	a.root = &cobra.Command{
		Use:   "weekgrid",
		Short: "A weekly schedule editor for the terminal",
		Long: `Weekgrid is a weekly schedule editor for the terminal.

Drag on the 7-day grid to create time blocks, drag their edges to resize
them, and hold the meta chords to move or duplicate them across days.
Blocks belong to named, colored schedules that can be shown side by side.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.blocksCmd())
	a.root.AddCommand(a.noteCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs overrides the command line arguments.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(a.out, "weekgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database if no repository was given.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if path == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.opened = true
	return nil
}

// loadState opens the repository and reads every schedule into memory.
func (a *App) loadState(ctx context.Context) (*block.State, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	st, err := block.LoadState(ctx, a.repo)
	if err != nil {
		return nil, fmt.Errorf("loading schedules: %w", err)
	}
	return st, nil
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if !a.opened || a.repo == nil {
		return nil
	}
	a.opened = false
	return a.repo.Close()
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
