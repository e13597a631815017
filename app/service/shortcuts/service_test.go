package shortcuts

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"agentdesk/app/service/events"
	"agentdesk/app/storage/kvstore"

	"github.com/samber/do"
)

func testService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()

	store, err := kvstore.Open(filepath.Join(t.TempDir(), "shortcuts.db"))
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Shutdown() })

	bus, err := events.New(do.New())
	if err != nil {
		t.Fatalf("events.New: %v", err)
	}
	t.Cleanup(func() { _ = bus.Shutdown() })

	di := do.New()
	do.ProvideValue(di, store)
	do.ProvideValue(di, bus)

	s, err := New(di)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown() })

	return s, bus
}

func TestRecordCapsList(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := s.Record(ctx, "question "+string(rune('a'+i))); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != maxShortcuts {
		t.Fatalf("List returned %d shortcuts, want %d", len(list), maxShortcuts)
	}
	if list[0].Title != "question g" {
		t.Errorf("newest shortcut = %q, want %q", list[0].Title, "question g")
	}
	if list[len(list)-1].Title != "question c" {
		t.Errorf("oldest kept shortcut = %q, want %q", list[len(list)-1].Title, "question c")
	}
}

func TestRecordTruncatesLongTitles(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	long := strings.Repeat("x", 45)
	if err := s.Record(ctx, long); err != nil {
		t.Fatalf("Record: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := strings.Repeat("x", maxTitleLen) + "..."
	if list[0].Title != want {
		t.Errorf("Title = %q, want %q", list[0].Title, want)
	}
}

func TestRecordKeepsShortTitles(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	if err := s.Record(ctx, "short question"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].Title != "short question" {
		t.Errorf("Title = %q, want it untouched", list[0].Title)
	}
}

func TestRecordSingleActiveEntry(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	for _, q := range []string{"first", "second", "third"} {
		if err := s.Record(ctx, q); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	active := 0
	for _, item := range list {
		if item.Active {
			active++
			if item.Title != "third" {
				t.Errorf("active shortcut = %q, want %q", item.Title, "third")
			}
		}
	}
	if active != 1 {
		t.Errorf("%d active shortcuts, want 1", active)
	}
}

func TestActivate(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	if err := s.Record(ctx, "first"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, "second"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	oldest := list[len(list)-1]

	if err := s.Activate(ctx, oldest.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	list, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, item := range list {
		if item.ID == oldest.ID && !item.Active {
			t.Error("activated shortcut is not active")
		}
		if item.ID != oldest.ID && item.Active {
			t.Errorf("shortcut %q is still active", item.Title)
		}
	}

	if err := s.Activate(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Activate(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRecordsSubmittedTurns(t *testing.T) {
	s, bus := testService(t)

	bus.Publish(events.Event{Kind: events.TurnSubmitted, Query: "routed via the bus"})

	// the subscriber runs on its own goroutine; poll for the write
	deadline := time.Now().Add(2 * time.Second)
	for {
		list, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) == 1 {
			if list[0].Title != "routed via the bus" {
				t.Errorf("Title = %q, want the submitted query", list[0].Title)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("shortcut was never recorded from the bus event")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIgnoresOtherEventKinds(t *testing.T) {
	s, bus := testService(t)

	bus.Publish(events.Event{Kind: events.ReplyReady, Query: "should be ignored"})
	time.Sleep(50 * time.Millisecond)

	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("reply event produced %d shortcuts, want 0", len(list))
	}
}
