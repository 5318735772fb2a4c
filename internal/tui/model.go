package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/db"
	"github.com/javiermolinar/weekgrid/internal/gesture"
	"github.com/javiermolinar/weekgrid/internal/tui/commands"
	"github.com/javiermolinar/weekgrid/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
)

// promptKind identifies what the footer prompt is editing.
type promptKind int

const (
	promptNone promptKind = iota
	promptNewSchedule
	promptRename
	promptNote
)

// statusLine is the transient footer message. It is shared by pointer so
// the gesture engine's notifier can write to it from inside Update.
type statusLine struct {
	text  string
	isErr bool
	until time.Time
}

func (s *statusLine) set(text string, isErr bool, d time.Duration) {
	s.text = text
	s.isErr = isErr
	s.until = time.Now().Add(d)
}

func (s *statusLine) clearIfExpired() {
	if time.Now().After(s.until) {
		s.text = ""
		s.isErr = false
	}
}

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo      block.Repository
	config    *config.Config
	persister *commands.Persister

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Gesture state
	state      *block.State
	engine     *gesture.Engine
	classifier gesture.Classifier
	capture    *mouseCapture

	loading bool
	layout  Layout
	scroll  int
	hover   hover

	// Footer prompt
	mode         Mode
	promptKind   promptKind
	promptTarget string // Schedule or block id the prompt edits
	prompt       textinput.Model

	// Modal overlay
	modalType   ModalType
	modalTarget string // Schedule id a confirmation acts on

	status *statusLine
	rnd    *rand.Rand
	now    func() time.Time

	// Terminal dimensions
	width  int
	height int
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithState starts the model with an already loaded state.
func WithState(st *block.State) ModelOption {
	return func(m *Model) {
		m.setState(st)
	}
}

// WithClock overrides the time source used for the recent-block window.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithRand sets the random source used to pick schedule colors.
func WithRand(rnd *rand.Rand) ModelOption {
	return func(m *Model) {
		m.rnd = rnd
	}
}

// New creates a new TUI model.
func New(repo block.Repository, writer *db.Writer, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.TextStyle = styles.PromptStyle
	ti.PromptStyle = styles.PromptStyle.Bold(true)

	m := &Model{
		repo:       repo,
		config:     cfg,
		persister:  commands.NewPersister(repo, writer),
		theme:      t,
		styles:     styles,
		classifier: gesture.NewClassifier(cfg.Metrics(), cfg.Bindings()),
		capture:    &mouseCapture{},
		loading:    true,
		layout:     newLayout(0, 0, cfg.Metrics()),
		scroll:     defaultScroll,
		hover:      noHover(),
		mode:       ModeNormal,
		prompt:     ti,
		status:     &statusLine{},
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.state == nil {
		m.setState(block.NewState())
		m.loading = true
	}
	m.clampScroll()

	return m
}

func (m *Model) setState(st *block.State) {
	m.state = st
	m.loading = false
	m.engine = gesture.NewEngine(st, gesture.Config{
		Metrics:      m.config.Metrics(),
		Bindings:     m.config.Bindings(),
		Columns:      m.layout,
		Notifier:     gesture.NotifierFunc(m.notify),
		Capture:      m.capture,
		Now:          func() time.Time { return m.now() },
		RecentWindow: m.config.RecentWindow(),
	})
}

func (m *Model) notify(message string) {
	m.status.set(message, false, statusDuration)
}

// State returns the application state.
func (m Model) State() *block.State {
	return m.state
}

// Engine returns the gesture engine.
func (m Model) Engine() *gesture.Engine {
	return m.engine
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.loading && m.repo != nil {
		cmds = append(cmds, commands.LoadState(m.repo))
	}
	if w := m.persister.Writer(); w != nil {
		cmds = append(cmds, commands.WaitForWriteError(w))
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI.
func Run(repo block.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo
// opens the database named in the config and closes it on exit.
func RunWithDebug(repo block.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if repo == nil {
		opened, err := openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = opened.Close() }()
		repo = opened
	}

	st, err := block.LoadState(context.Background(), repo)
	if err != nil {
		return err
	}

	writer := db.NewWriter(64)
	model := New(repo, writer, cfg, WithState(st))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := p.Run()

	writer.Close()
	for err := range writer.Errors() {
		LogError("flushing writes", err)
	}
	return runErr
}
