package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/javiermolinar/weekgrid/internal/block"
	"github.com/javiermolinar/weekgrid/internal/db"
)

type fakeRepo struct {
	mu        sync.Mutex
	calls     []string
	schedules []block.Schedule
	blocks    map[string][]block.TimeBlock
	failSave  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{blocks: make(map[string][]block.TimeBlock)}
}

func (f *fakeRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRepo) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRepo) LoadSchedules(ctx context.Context) ([]block.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeRepo) SaveSchedules(ctx context.Context, schedules []block.Schedule) error {
	f.record("SaveSchedules")
	return nil
}

func (f *fakeRepo) LoadBlocks(ctx context.Context, scheduleID string) ([]block.TimeBlock, error) {
	return f.blocks[scheduleID], nil
}

func (f *fakeRepo) SaveBlocks(ctx context.Context, scheduleID string, blocks []block.TimeBlock) error {
	f.record("SaveBlocks:" + scheduleID)
	return f.failSave
}

func (f *fakeRepo) LoadNote(ctx context.Context, timeBlockID string) (*block.Note, error) {
	return nil, nil
}

func (f *fakeRepo) SaveNote(ctx context.Context, note block.Note) error {
	f.record("SaveNote:" + note.TimeBlockID)
	return nil
}

func (f *fakeRepo) DeleteNote(ctx context.Context, timeBlockID string) error {
	f.record("DeleteNote:" + timeBlockID)
	return nil
}

func (f *fakeRepo) DeleteBlock(ctx context.Context, timeBlockID string) error {
	f.record("DeleteBlock:" + timeBlockID)
	return nil
}

func (f *fakeRepo) DeleteSchedule(ctx context.Context, scheduleID string) error {
	f.record("DeleteSchedule:" + scheduleID)
	return nil
}

func (f *fakeRepo) Close() error {
	return nil
}

func TestLoadState(t *testing.T) {
	repo := newFakeRepo()
	repo.schedules = []block.Schedule{{ID: "s1", Name: "work", IsActive: true, Color: "#ff8800"}}
	repo.blocks["s1"] = []block.TimeBlock{{ID: "b1", ScheduleID: "s1", DayIndex: 2, Start: 4, End: 8}}

	msg := LoadState(repo)()
	loaded, ok := msg.(StateLoadedMsg)
	if !ok {
		t.Fatalf("expected StateLoadedMsg, got %T", msg)
	}
	if loaded.State.SelectedID != "s1" {
		t.Errorf("first schedule should be selected, got %q", loaded.State.SelectedID)
	}
	if _, ok := loaded.State.Blocks.FindAny("b1"); !ok {
		t.Error("expected block b1 to be loaded")
	}
}

func TestPersister_PreservesOrder(t *testing.T) {
	repo := newFakeRepo()
	w := db.NewWriter(8)
	p := NewPersister(repo, w)

	p.SaveSchedules([]block.Schedule{{ID: "s1", Name: "work"}})
	p.SaveBlocks("s1", []block.TimeBlock{{ID: "b1", ScheduleID: "s1", Start: 0, End: 1}})
	p.SaveNote(block.Note{TimeBlockID: "b1", Content: "hi"}, true)
	p.SaveNote(block.Note{TimeBlockID: "b1"}, false)
	p.DeleteBlock("b1")
	p.DeleteSchedule("s1")
	w.Close()

	want := []string{
		"SaveSchedules",
		"SaveBlocks:s1",
		"SaveNote:b1",
		"DeleteNote:b1",
		"DeleteBlock:b1",
		"DeleteSchedule:s1",
	}
	got := repo.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPersister_SnapshotsBlocks(t *testing.T) {
	repo := newFakeRepo()
	w := db.NewWriter(1)
	p := NewPersister(repo, w)

	blocks := []block.TimeBlock{{ID: "b1", ScheduleID: "s1", Start: 0, End: 1}}
	p.SaveBlocks("s1", blocks)
	blocks[0].End = 50
	w.Close()

	if blocks[0].End != 50 {
		t.Fatal("caller slice should be untouched by the copy")
	}
}

func TestPersister_NilIsNoop(t *testing.T) {
	var p *Persister
	if p.SaveBlocks("s1", nil) {
		t.Error("nil persister should not accept writes")
	}
	if NewPersister(nil, nil).DeleteBlock("b1") {
		t.Error("persister without repo should not accept writes")
	}
}

func TestWaitForWriteError(t *testing.T) {
	repo := newFakeRepo()
	repo.failSave = errors.New("disk full")
	w := db.NewWriter(4)
	p := NewPersister(repo, w)

	p.SaveBlocks("s1", nil)

	done := make(chan any, 1)
	go func() { done <- WaitForWriteError(w)() }()

	select {
	case msg := <-done:
		perr, ok := msg.(PersistErrMsg)
		if !ok {
			t.Fatalf("expected PersistErrMsg, got %T", msg)
		}
		if perr.Op != "saving blocks" {
			t.Errorf("op = %q, want saving blocks", perr.Op)
		}
		if !errors.Is(perr.Err, repo.failSave) {
			t.Errorf("err = %v, want %v", perr.Err, repo.failSave)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for write error")
	}

	w.Close()
	if _, ok := WaitForWriteError(w)().(WriterClosedMsg); !ok {
		t.Error("expected WriterClosedMsg after close")
	}
}

func TestStatus(t *testing.T) {
	msg := Status("saved")()
	if s, ok := msg.(StatusMsgCmd); !ok || s.Msg != "saved" {
		t.Errorf("unexpected status msg %#v", msg)
	}
}
