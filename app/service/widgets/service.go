package widgets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/viz"
	"agentdesk/app/storage/kvstore"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const storageKey = "saved_widgets"

var (
	ErrEmptyTitle = errors.New("widget title must not be empty")
	ErrNoData     = errors.New("widget has no dataset")
	ErrNotFound   = errors.New("widget not found")
)

// SavedWidget is a durable snapshot of a dataset plus a preferred chart
// type.
type SavedWidget struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Data      *sampledata.Dataset `json:"data"`
	ChartType viz.ChartType       `json:"chartType"`
	Timestamp time.Time           `json:"timestamp"`
}

// Service persists widgets as one JSON list under a well-known key,
// most-recent-first. Every operation reads and writes through the durable
// store.
type Service struct {
	store *kvstore.Store
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		store: do.MustInvoke[*kvstore.Store](di),
	}, nil
}

func (s *Service) List(ctx context.Context) ([]*SavedWidget, error) {
	return s.load(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*SavedWidget, error) {
	widgets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, w := range widgets {
		if w.ID == id {
			return w, nil
		}
	}

	return nil, ErrNotFound
}

// Save validates the title and prepends a new widget record.
func (s *Service) Save(ctx context.Context, title string, dataset *sampledata.Dataset, chartType viz.ChartType) (*SavedWidget, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if dataset == nil {
		return nil, ErrNoData
	}
	if _, err := viz.ParseChartType(string(chartType)); err != nil {
		return nil, err
	}

	widgets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	widget := &SavedWidget{
		ID:        uuid.NewString(),
		Title:     title,
		Data:      dataset,
		ChartType: chartType,
		Timestamp: time.Now().UTC(),
	}

	widgets = append([]*SavedWidget{widget}, widgets...)

	if err := s.store.SetJSON(ctx, storageKey, widgets); err != nil {
		return nil, fmt.Errorf("store.SetJSON: %w", err)
	}

	slog.Info("Saved widget", "id", widget.ID, "title", widget.Title)

	return widget, nil
}

// Delete removes a widget by id. Deleting an absent id leaves the store
// unchanged.
func (s *Service) Delete(ctx context.Context, id string) error {
	widgets, err := s.load(ctx)
	if err != nil {
		return err
	}

	remaining := make([]*SavedWidget, 0, len(widgets))
	for _, w := range widgets {
		if w.ID != id {
			remaining = append(remaining, w)
		}
	}

	if len(remaining) == len(widgets) {
		return nil
	}

	if err := s.store.SetJSON(ctx, storageKey, remaining); err != nil {
		return fmt.Errorf("store.SetJSON: %w", err)
	}

	slog.Info("Deleted widget", "id", id)

	return nil
}

func (s *Service) load(ctx context.Context) ([]*SavedWidget, error) {
	var widgets []*SavedWidget

	err := s.store.GetJSON(ctx, storageKey, &widgets)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return nil, nil
	case errors.Is(err, kvstore.ErrMalformed):
		slog.Warn("Stored widgets are malformed, treating as empty", "error", err)
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("store.GetJSON: %w", err)
	}

	return widgets, nil
}
