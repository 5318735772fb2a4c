package gesture

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/geometry"
)

// DefaultRecentWindow is how long a committed block stays "recent".
const DefaultRecentWindow = 1500 * time.Millisecond

// Notifier delivers user-facing messages.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string) { f(message) }

// Capture routes pointer move and release events to the engine for the
// duration of a session, including events outside the grid.
type Capture interface {
	Acquire() error
	Release()
}

// Session is the ephemeral state of one gesture.
type Session struct {
	Mode          Mode
	Origin        int
	ActiveBlockID string
	Edge          Edge
	Block         block.TimeBlock // Live block; the untouched source when duplicating
	SourceDay     int
	HoverDay      int // -1 when the pointer is over no column
	Direction     Direction
	Collapsed     bool

	processed map[int]bool
}

// Processed reports whether a day already received a duplicate this gesture.
func (s Session) Processed(day int) bool {
	return s.processed[day]
}

// ProcessedDays returns the days duplicated into, in ascending order.
func (s Session) ProcessedDays() []int {
	days := make([]int, 0, len(s.processed))
	for d := range s.processed {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// Commit describes a block change that the caller should persist.
type Commit struct {
	Mode    Mode
	Block   block.TimeBlock
	Applied bool
}

// Config configures an Engine.
type Config struct {
	Metrics      geometry.Metrics
	Bindings     Bindings
	Columns      geometry.ColumnProvider
	Notifier     Notifier
	Capture      Capture
	NewID        func() string
	Now          func() time.Time
	RecentWindow time.Duration
}

// Engine runs gesture sessions against an application state.
// It is not safe for concurrent use; all calls are expected from the UI loop.
type Engine struct {
	metrics    geometry.Metrics
	classifier Classifier
	applier    Applier
	columns    geometry.ColumnProvider
	notifier   Notifier
	capture    Capture
	now        func() time.Time
	window     time.Duration

	state    *block.State
	session  Session
	captured bool

	recentID string
	recentAt time.Time
}

// NewEngine creates an engine bound to st.
func NewEngine(st *block.State, cfg Config) *Engine {
	if cfg.Metrics == (geometry.Metrics{}) {
		cfg.Metrics = geometry.DefaultMetrics()
	}
	if cfg.Bindings == (Bindings{}) {
		cfg.Bindings = DefaultBindings()
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = DefaultRecentWindow
	}
	return &Engine{
		metrics:    cfg.Metrics,
		classifier: NewClassifier(cfg.Metrics, cfg.Bindings),
		applier:    Applier{NewID: cfg.NewID},
		columns:    cfg.Columns,
		notifier:   cfg.Notifier,
		capture:    cfg.Capture,
		now:        cfg.Now,
		window:     cfg.RecentWindow,
		state:      st,
		session:    idleSession(),
	}
}

func idleSession() Session {
	return Session{Mode: ModeIdle, HoverDay: -1}
}

// State returns the application state the engine mutates.
func (e *Engine) State() *block.State {
	return e.state
}

// Metrics returns the grid metrics.
func (e *Engine) Metrics() geometry.Metrics {
	return e.metrics
}

// SetColumns replaces the column provider, e.g. after a terminal resize.
func (e *Engine) SetColumns(p geometry.ColumnProvider) {
	e.columns = p
}

// Active reports whether a session is in progress.
func (e *Engine) Active() bool {
	return e.session.Mode != ModeIdle
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session {
	return e.session
}

// Preview returns the render snapshot of the current session, or nil.
func (e *Engine) Preview() *Preview {
	return Project(e.session, e.metrics)
}

// RecentBlockID returns the most recently committed block while it is
// still inside the display window.
func (e *Engine) RecentBlockID() string {
	if e.recentID == "" || e.now().Sub(e.recentAt) > e.window {
		return ""
	}
	return e.recentID
}

func (e *Engine) markRecent(id string) {
	e.recentID = id
	e.recentAt = e.now()
}

// PointerDown classifies a press and starts a session when it begins a gesture.
func (e *Engine) PointerDown(ev PointerDown) (Decision, error) {
	if e.Active() {
		return Decision{Mode: e.session.Mode}, ErrSessionActive
	}
	column, ok := e.columnBounds(ev.DayIndex)
	if !ok {
		return Decision{Mode: ModeIdle}, fmt.Errorf("%w: no column for day %d", block.ErrInvalidDay, ev.DayIndex)
	}

	d := e.classifier.Classify(ev, column, e.state)
	if d.Err != nil {
		if e.notifier != nil {
			e.notifier.Notify(SelectSchedulePrompt)
		}
		return d, d.Err
	}
	if !d.Starts() {
		return d, nil
	}

	if err := e.acquire(); err != nil {
		return Decision{Mode: ModeIdle}, err
	}

	s := Session{
		Mode:      d.Mode,
		Origin:    d.Origin,
		Edge:      d.Edge,
		Block:     d.Block,
		SourceDay: d.Block.DayIndex,
		HoverDay:  ev.DayIndex,
	}
	if d.Mode != ModeCreating {
		s.ActiveBlockID = d.Block.ID
	}
	if d.Mode == ModeDuplicating {
		s.processed = make(map[int]bool)
	}
	e.session = s
	return d, nil
}

// PointerMove updates the live session from an absolute pointer position.
// Crossing into a new day column while duplicating commits a copy, which is
// returned so the caller can persist it.
func (e *Engine) PointerMove(x, y float64) *Commit {
	if !e.Active() {
		return nil
	}

	var spawned *Commit
	if day, ok := geometry.DayAt(e.columns, x); ok {
		spawned = e.EnterColumn(day)
	} else if e.session.HoverDay >= 0 {
		e.LeaveColumn(e.session.HoverDay)
	}

	switch e.session.Mode {
	case ModeCreating:
		e.moveCreating(y)
	case ModeResizing:
		e.moveResizing(y)
	case ModeRepositioning:
		e.moveRepositioning(y)
	}
	return spawned
}

// EnterColumn records that the pointer entered a day column.
func (e *Engine) EnterColumn(day int) *Commit {
	if !e.Active() || !geometry.ValidDay(day) || e.session.HoverDay == day {
		return nil
	}
	e.session.HoverDay = day
	if e.session.Mode != ModeDuplicating {
		return nil
	}
	return e.spawnDuplicate(day)
}

// LeaveColumn records that the pointer left a day column.
func (e *Engine) LeaveColumn(day int) {
	if e.session.HoverDay == day {
		e.session.HoverDay = -1
	}
}

// PointerUp commits the session and returns to idle. The capture is
// released even when the commit is dropped.
func (e *Engine) PointerUp() (Commit, error) {
	if !e.Active() {
		return Commit{}, ErrNoSession
	}
	defer e.reset()

	s := e.session
	c := Commit{Mode: s.Mode}
	if s.Mode == ModeDuplicating {
		return c, nil
	}

	next, out := e.applier.Apply(s.Mode, Result{Block: s.Block, ActiveBlockID: s.ActiveBlockID}, e.state.Blocks, e.state.SelectedID)
	if !out.Applied {
		return c, nil
	}
	e.state.Blocks = next
	c.Block = out.Block
	c.Applied = true
	if s.Mode == ModeCreating {
		e.markRecent(out.Block.ID)
	}
	return c, nil
}

// Cancel abandons the session without committing it. Copies already
// spawned by a duplicate gesture are kept.
func (e *Engine) Cancel() bool {
	if !e.Active() {
		return false
	}
	e.reset()
	return true
}

func (e *Engine) reset() {
	e.session = idleSession()
	e.release()
}

func (e *Engine) acquire() error {
	if e.captured {
		return ErrSessionActive
	}
	if e.capture != nil {
		if err := e.capture.Acquire(); err != nil {
			return err
		}
	}
	e.captured = true
	return nil
}

func (e *Engine) release() {
	if !e.captured {
		return
	}
	e.captured = false
	if e.capture != nil {
		e.capture.Release()
	}
}

func (e *Engine) columnBounds(day int) (geometry.Bounds, bool) {
	if e.columns == nil {
		return geometry.Bounds{}, false
	}
	return e.columns.ColumnBounds(day)
}

// pointer returns the clamped interval under y and the signed pixel offset
// from the session origin, measured in the given day column.
func (e *Engine) pointer(day int, y float64) (int, float64, bool) {
	column, ok := e.columnBounds(day)
	if !ok {
		return 0, 0, false
	}
	cur := geometry.ClampInterval(e.metrics.PixelToInterval(y, column.Top))
	delta := e.metrics.PixelOffset(y, column.Top, e.session.Origin)
	return cur, delta, true
}

func (e *Engine) moveCreating(y float64) {
	s := &e.session
	cur, delta, ok := e.pointer(s.Block.DayIndex, y)
	if !ok {
		return
	}
	o := s.Origin
	thr := e.metrics.MoveThreshold()

	switch {
	case delta >= thr:
		s.Block.Start = min(cur, o)
		s.Block.End = max(cur+1, o)
		s.Direction = DirectionDown
	case delta <= -thr:
		s.Block.Start = min(cur, o-1)
		s.Block.End = max(cur, o)
		s.Direction = DirectionUp
	default:
		s.Block.Start = o
		s.Block.End = o + 1
		s.Direction = DirectionNone
	}
}

// moveResizing moves the grabbed edge while the opposite edge stays pinned
// at the origin. Dragging past the pinned edge collapses the block to one
// interval instead of inverting it.
func (e *Engine) moveResizing(y float64) {
	s := &e.session
	cur, delta, ok := e.pointer(s.Block.DayIndex, y)
	if !ok {
		return
	}
	o := s.Origin
	thr := e.metrics.MoveThreshold()

	switch s.Edge {
	case EdgeBottom:
		s.Block.Start = o
		switch {
		case delta >= thr:
			s.Block.End = max(cur+1, o+1)
			s.Direction, s.Collapsed = DirectionDown, false
		case delta <= -thr:
			s.Block.End = o + 1
			s.Direction, s.Collapsed = DirectionUp, true
		default:
			s.Block.End = o + 1
			s.Direction, s.Collapsed = DirectionNone, false
		}
	case EdgeTop:
		s.Block.End = o
		switch {
		case delta <= -thr:
			s.Block.Start = min(cur, o-1)
			s.Direction, s.Collapsed = DirectionUp, false
		case delta >= thr:
			s.Block.Start = o - 1
			s.Direction, s.Collapsed = DirectionDown, true
		default:
			s.Block.Start = o - 1
			s.Direction, s.Collapsed = DirectionNone, false
		}
	}
}

// moveRepositioning shifts the block by the interval delta since the last
// move and re-anchors the origin by the shift actually applied.
func (e *Engine) moveRepositioning(y float64) {
	s := &e.session
	day := s.Block.DayIndex
	if s.HoverDay >= 0 {
		day = s.HoverDay
	}
	cur, _, ok := e.pointer(day, y)
	if !ok {
		return
	}

	d := cur - s.Origin
	if s.Block.Start+d < 0 {
		d = -s.Block.Start
	}
	if s.Block.End+d > geometry.IntervalsPerDay {
		d = geometry.IntervalsPerDay - s.Block.End
	}

	s.Block.Start += d
	s.Block.End += d
	s.Block.DayIndex = day
	s.Origin += d
	switch {
	case d > 0:
		s.Direction = DirectionDown
	case d < 0:
		s.Direction = DirectionUp
	}
}

func (e *Engine) spawnDuplicate(day int) *Commit {
	s := &e.session
	if day == s.SourceDay || s.processed[day] {
		return nil
	}
	s.processed[day] = true

	copyOf := s.Block
	copyOf.DayIndex = day
	next, out := e.applier.Apply(ModeDuplicating, Result{Block: copyOf, ActiveBlockID: s.ActiveBlockID}, e.state.Blocks, e.state.SelectedID)
	if !out.Applied {
		return &Commit{Mode: ModeDuplicating}
	}
	e.state.Blocks = next
	e.markRecent(out.Block.ID)
	return &Commit{Mode: ModeDuplicating, Block: out.Block, Applied: true}
}
