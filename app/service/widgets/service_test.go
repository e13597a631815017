package widgets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"agentdesk/app/service/sampledata"
	"agentdesk/app/service/viz"
	"agentdesk/app/storage/kvstore"
)

func testService(t *testing.T) (*Service, *kvstore.Store) {
	t.Helper()

	store, err := kvstore.Open(filepath.Join(t.TempDir(), "widgets.db"))
	if err != nil {
		t.Fatalf("kvstore.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Shutdown() })

	return &Service{store: store}, store
}

func testDataset(title string) *sampledata.Dataset {
	return &sampledata.Dataset{
		Title: title,
		Years: []string{"2025"},
		Data: []sampledata.Record{
			sampledata.NewRecord(sampledata.Field{Key: "value", Value: 7}),
		},
	}
}

func TestSavePrependsNewest(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "First", testDataset("a"), viz.ChartLine); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := s.Save(ctx, "Second", testDataset("b"), viz.ChartBar)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d widgets, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("newest widget is not first: got %q", list[0].Title)
	}
	if list[0].ChartType != viz.ChartBar {
		t.Errorf("ChartType = %s, want %s", list[0].ChartType, viz.ChartBar)
	}
}

func TestSaveRejectsWhitespaceTitle(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, "   ", testDataset("a"), viz.ChartLine); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Save error = %v, want ErrEmptyTitle", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("rejected save still persisted %d widgets", len(list))
	}
}

func TestSaveRejectsMissingData(t *testing.T) {
	s, _ := testService(t)

	if _, err := s.Save(context.Background(), "Title", nil, viz.ChartLine); !errors.Is(err, ErrNoData) {
		t.Errorf("Save error = %v, want ErrNoData", err)
	}
}

func TestSaveRejectsUnknownChartType(t *testing.T) {
	s, _ := testService(t)

	if _, err := s.Save(context.Background(), "Title", testDataset("a"), viz.ChartType("donut")); err == nil {
		t.Error("Save accepted an unknown chart type")
	}
}

func TestGet(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "Lookup", testDataset("a"), viz.ChartPie)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Lookup" {
		t.Errorf("Title = %q, want %q", got.Title, "Lookup")
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s, _ := testService(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, "Doomed", testDataset("a"), viz.ChartLine)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete absent id: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List returned %d widgets after delete, want 0", len(list))
	}
}

func TestListRecoversFromMalformedStore(t *testing.T) {
	s, store := testService(t)
	ctx := context.Background()

	// store a value of the wrong shape under the widgets key
	if err := store.SetJSON(ctx, "saved_widgets", map[string]string{"oops": "scalar"}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List returned %d widgets from a malformed store, want 0", len(list))
	}

	// the next save replaces the bad document
	if _, err := s.Save(ctx, "Fresh", testDataset("a"), viz.ChartLine); err != nil {
		t.Fatalf("Save: %v", err)
	}
	list, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List returned %d widgets, want 1", len(list))
	}
}
