package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ewchang/synapse/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMemoriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rating := 4.5
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	memories := []model.Memory{
		{
			ID:           "01J0TEST",
			OriginalText: "ramen spot in Shimokitazawa",
			RootCategory: "Travel",
			Project:      "Japan",
			SubProject:   "Tokyo",
			Type:         model.TypeNote,
			Tags:         []string{"food"},
			CreatedAt:    created,
			Items: []model.StructuredItem{
				{
					ID:          "01J0ITEM",
					Title:       "Ramen Jiro",
					Category:    "food",
					Description: "try the tsukemen",
					Location:    "Shimokitazawa, Tokyo",
					Rating:      &rating,
					TargetDate:  "2026.09.12",
					Status:      model.StatusPending,
				},
			},
		},
	}

	if err := s.SaveMemories(ctx, memories); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadMemories(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(memories, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", memories, got)
	}
}

func TestLoadMissingCollections(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	memories, err := s.LoadMemories(ctx)
	if err != nil {
		t.Fatalf("load memories: %v", err)
	}
	if len(memories) != 0 {
		t.Errorf("expected empty memories, got %d", len(memories))
	}

	categories, err := s.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("load categories: %v", err)
	}
	if !reflect.DeepEqual(categories, DefaultCategories) {
		t.Errorf("expected default categories %v, got %v", DefaultCategories, categories)
	}
}

func seedCollection(t *testing.T, s *SQLiteStore, name, value string) {
	t.Helper()
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO collections (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value, "2026-08-30T00:00:00Z")
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func TestCorruptValueFallsBackToDefault(t *testing.T) {
	ctx := context.Background()

	// Wrong-shape values are valid JSON, so a naive Unmarshal into the
	// caller's destination would leave it partially populated.
	for _, value := range []string{"{not json", `["Travel", 5]`, `{"a": 1}`} {
		s := newTestStore(t)
		seedCollection(t, s, CollectionCategories, value)

		categories, err := s.LoadCategories(ctx)
		if err != nil {
			t.Fatalf("load categories for %q: %v", value, err)
		}
		if !reflect.DeepEqual(categories, DefaultCategories) {
			t.Errorf("value %q: expected default categories, got %v", value, categories)
		}
	}
}

func TestCorruptMemoriesFallBackToEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seedCollection(t, s, CollectionMemories, `[{"id": "m1"}, 5]`)
	memories, err := s.LoadMemories(ctx)
	if err != nil {
		t.Fatalf("load memories: %v", err)
	}
	if len(memories) != 0 {
		t.Errorf("expected empty memories after corruption, got %d", len(memories))
	}

	seedCollection(t, s, CollectionTasks, `{"id": "t1"}`)
	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty tasks after corruption, got %d", len(tasks))
	}
}

func TestTasksRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tasks := []model.Task{
		{ID: "01J0TASK1", Title: "Day 1: stretch", Day: 1, Status: model.StatusPending},
		{ID: "01J0TASK2", Title: "Day 2: run 5k", Day: 2, Status: model.StatusCompleted, Feedback: "easy"},
	}
	if err := s.SaveTasks(ctx, tasks); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(tasks, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", tasks, got)
	}
}
