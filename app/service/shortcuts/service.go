package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"agentdesk/app/service/events"
	"agentdesk/app/storage/kvstore"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const (
	storageKey   = "chat_shortcuts"
	maxShortcuts = 5
	maxTitleLen  = 30
)

var ErrNotFound = errors.New("shortcut not found")

// Shortcut is a sidebar entry pointing at a recent chat submission.
type Shortcut struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Active    bool      `json:"active"`
}

var _ do.Shutdownable = (*Service)(nil)

// Service maintains the capped recent-chats list. It subscribes to turn
// events instead of being called back directly, so its lifecycle is explicit.
type Service struct {
	store *kvstore.Store
	bus   *events.Bus

	subID int
	wg    sync.WaitGroup
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		store: do.MustInvoke[*kvstore.Store](di),
		bus:   do.MustInvoke[*events.Bus](di),
	}

	id, ch := s.bus.Subscribe()
	s.subID = id

	s.wg.Add(1)
	go s.consume(ch)

	return s, nil
}

func (s *Service) consume(ch <-chan events.Event) {
	defer s.wg.Done()

	for ev := range ch {
		if ev.Kind != events.TurnSubmitted {
			continue
		}

		if err := s.Record(context.Background(), ev.Query); err != nil {
			slog.Warn("Failed to record chat shortcut", "error", err)
		}
	}
}

// Record prepends a shortcut for a submitted query and makes it the only
// active entry.
func (s *Service) Record(ctx context.Context, title string) error {
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen]) + "..."
	}

	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	for _, item := range list {
		item.Active = false
	}

	list = append([]*Shortcut{{
		ID:        uuid.NewString(),
		Title:     title,
		Timestamp: time.Now().UTC(),
		Active:    true,
	}}, list...)

	if len(list) > maxShortcuts {
		list = list[:maxShortcuts]
	}

	if err := s.store.SetJSON(ctx, storageKey, list); err != nil {
		return fmt.Errorf("store.SetJSON: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]*Shortcut, error) {
	return s.load(ctx)
}

// Activate marks one shortcut active and all others inactive.
func (s *Service) Activate(ctx context.Context, id string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, item := range list {
		item.Active = item.ID == id
		if item.Active {
			found = true
		}
	}

	if !found {
		return ErrNotFound
	}

	if err := s.store.SetJSON(ctx, storageKey, list); err != nil {
		return fmt.Errorf("store.SetJSON: %w", err)
	}

	return nil
}

func (s *Service) load(ctx context.Context) ([]*Shortcut, error) {
	var list []*Shortcut

	err := s.store.GetJSON(ctx, storageKey, &list)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return nil, nil
	case errors.Is(err, kvstore.ErrMalformed):
		slog.Warn("Stored shortcuts are malformed, treating as empty", "error", err)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("store.GetJSON: %w", err)
	}

	return list, nil
}

func (s *Service) Shutdown() error {
	s.bus.Unsubscribe(s.subID)
	s.wg.Wait()

	return nil
}
