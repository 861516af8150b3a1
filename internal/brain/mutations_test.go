package brain

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ewchang/synapse/internal/model"
	"github.com/ewchang/synapse/internal/store"
)

func newTestBrain(t *testing.T) *Brain {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	b, err := Open(context.Background(), st)
	if err != nil {
		t.Fatalf("open brain: %v", err)
	}
	// Fixed categories so tests don't depend on the default list.
	b.Categories = []string{"Travel", "Life"}
	return b
}

func addTestMemory(t *testing.T, b *Brain, category, project string, items ...ItemParams) *model.Memory {
	t.Helper()
	// Reconciliation forces unknown projects to General, so the project has
	// to exist before a memory can land in it, mirroring the real flow.
	if project != model.ProjectGeneral {
		if _, err := b.CreateProject(context.Background(), category, project); err != nil && !errors.Is(err, ErrDuplicateProject) {
			t.Fatalf("create project %s: %v", project, err)
		}
	}
	if len(items) == 0 {
		items = []ItemParams{{Title: "untitled", Category: "note", Description: "d"}}
	}
	m, err := b.AddMemory(context.Background(), AddMemoryParams{
		OriginalText: "raw text",
		RootCategory: category,
		Project:      project,
		Type:         model.TypeNote,
		Items:        items,
	})
	if err != nil {
		t.Fatalf("add memory: %v", err)
	}
	return m
}

func TestAddMemoryReconcilesAndDefaults(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	addTestMemory(t, b, "Travel", "Japan")

	// The gateway claims Japan belongs to Life; the known owner wins.
	m, err := b.AddMemory(ctx, AddMemoryParams{
		OriginalText: "onsen day trip",
		RootCategory: "Life",
		Project:      "Japan",
		Items:        []ItemParams{{Title: "Hakone", Category: "travel", Description: "day trip"}},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.RootCategory != "Travel" || m.Project != "Japan" {
		t.Errorf("got (%s, %s), want (Travel, Japan)", m.RootCategory, m.Project)
	}
	if m.SubProject != model.ProjectGeneral {
		t.Errorf("sub-project = %q, want General default", m.SubProject)
	}
	if m.Items[0].Status != model.StatusPending {
		t.Errorf("item status = %q, want pending default", m.Items[0].Status)
	}
	if m.Items[0].ID == "" {
		t.Error("item ID not assigned")
	}
}

func TestAddMemoryRejectsEmptyItems(t *testing.T) {
	b := newTestBrain(t)
	_, err := b.AddMemory(context.Background(), AddMemoryParams{
		OriginalText: "nothing came back",
		RootCategory: "Life",
		Project:      "General",
	})
	if !errors.Is(err, ErrEmptyMemory) {
		t.Errorf("expected ErrEmptyMemory, got %v", err)
	}
	if len(b.Memories) != 0 {
		t.Errorf("state mutated on rejected add: %d memories", len(b.Memories))
	}
}

func TestDeleteLastItemRemovesMemory(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	m := addTestMemory(t, b, "Travel", "Japan",
		ItemParams{Title: "a", Category: "x", Description: "d"},
		ItemParams{Title: "b", Category: "x", Description: "d"},
	)

	if err := b.DeleteItem(ctx, m.ID, 0); err != nil {
		t.Fatalf("delete item 0: %v", err)
	}
	got, err := b.MemoryByID(m.ID)
	if err != nil {
		t.Fatalf("memory removed too early: %v", err)
	}
	// Positional shift: former index 1 is now index 0.
	if got.Items[0].Title != "b" {
		t.Errorf("item 0 = %q after shift, want b", got.Items[0].Title)
	}

	if err := b.DeleteItem(ctx, m.ID, 0); err != nil {
		t.Fatalf("delete last item: %v", err)
	}
	if _, err := b.MemoryByID(m.ID); !errors.Is(err, ErrMemoryNotFound) {
		t.Errorf("expected memory removed with last item, got %v", err)
	}
}

func TestManualPlaceholderSurvivesEmpty(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	m, err := b.CreateProject(ctx, "Travel", "Korea Trip")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if m.Project != "Korea Trip" || len(m.Items) != 0 {
		t.Fatalf("placeholder = %+v", m)
	}

	// The placeholder keeps the project alive in the hierarchy.
	h := b.Hierarchy()
	if len(h["Travel"]) != 1 || h["Travel"][0] != "Korea Trip" {
		t.Errorf("Travel projects = %v", h["Travel"])
	}
}

func TestProjectUniquenessRejected(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	addTestMemory(t, b, "Travel", "Japan")

	if _, err := b.CreateProject(ctx, "Life", "Japan"); !errors.Is(err, ErrDuplicateProject) {
		t.Errorf("create colliding project: %v, want ErrDuplicateProject", err)
	}

	addTestMemory(t, b, "Life", "Gym")
	if err := b.RenameProject(ctx, "Gym", "Japan"); !errors.Is(err, ErrDuplicateProject) {
		t.Errorf("rename to colliding project: %v, want ErrDuplicateProject", err)
	}
}

func TestRenameProjectCascades(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	addTestMemory(t, b, "Travel", "Japan")
	addTestMemory(t, b, "Travel", "Japan")

	if err := b.RenameProject(ctx, "Japan", "Japan 2026"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	for _, m := range b.Memories {
		if m.Project != "Japan 2026" {
			t.Errorf("memory %s project = %q", m.ID, m.Project)
		}
	}
}

func TestDeleteProjectRemovesMemories(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	addTestMemory(t, b, "Travel", "Japan")
	addTestMemory(t, b, "Travel", "General")

	if err := b.DeleteProject(ctx, "Japan"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if len(b.Memories) != 1 || b.Memories[0].Project != model.ProjectGeneral {
		t.Errorf("memories after delete = %+v", b.Memories)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	addTestMemory(t, b, "Travel", "Japan")

	if err := b.AddCategory(ctx, "Travel"); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("duplicate add: %v", err)
	}

	if err := b.RenameCategory(ctx, "Travel", "Trips"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if b.Memories[0].RootCategory != "Trips" {
		t.Errorf("rename did not cascade: %q", b.Memories[0].RootCategory)
	}

	if err := b.DeleteCategory(ctx, "Trips"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := b.DeleteCategory(ctx, "Life"); !errors.Is(err, ErrLastCategory) {
		t.Errorf("deleting last category: %v, want ErrLastCategory", err)
	}
}

func TestToggleItemKey(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	m := addTestMemory(t, b, "Travel", "Japan")

	status, err := b.ToggleItemKey(ctx, m.ID+"_0")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if status != model.StatusCompleted {
		t.Errorf("status = %q, want completed", status)
	}
	status, _ = b.ToggleItemKey(ctx, m.ID+"_0")
	if status != model.StatusPending {
		t.Errorf("second toggle = %q, want pending", status)
	}

	if _, err := b.ToggleItemKey(ctx, "garbage"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("bad key: %v", err)
	}
}

func TestPlanAndTasks(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)

	tasks, err := b.InstallPlan(ctx, []PlanDay{
		{Day: 1, Title: "stretch"},
		{Day: 2, Title: "run 5k"},
	})
	if err != nil {
		t.Fatalf("install plan: %v", err)
	}
	if tasks[0].Title != "Day 1: stretch" {
		t.Errorf("title = %q, want day prefix", tasks[0].Title)
	}

	status, err := b.ToggleTask(ctx, tasks[1].ID)
	if err != nil {
		t.Fatalf("toggle task: %v", err)
	}
	if status != model.StatusCompleted {
		t.Errorf("status = %q", status)
	}

	if err := b.SetTaskFeedback(ctx, tasks[1].ID, "too easy"); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if b.Tasks[1].Feedback != "too easy" {
		t.Errorf("feedback = %q", b.Tasks[1].Feedback)
	}

	// Installing a new plan replaces the old one.
	tasks, err = b.InstallPlan(ctx, []PlanDay{{Day: 1, Title: "swim"}})
	if err != nil {
		t.Fatalf("reinstall plan: %v", err)
	}
	if len(b.Tasks) != 1 || b.Tasks[0].Title != "Day 1: swim" {
		t.Errorf("tasks after reinstall = %+v", b.Tasks)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	b, err := Open(ctx, st)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	b.Categories = []string{"Travel"}
	if err := b.saveCategories(ctx); err != nil {
		t.Fatalf("save categories: %v", err)
	}
	m := addTestMemory(t, b, "Travel", "Japan")
	st.Close()

	st2, err := store.NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()
	b2, err := Open(ctx, st2)
	if err != nil {
		t.Fatalf("reopen brain: %v", err)
	}
	got, err := b2.MemoryByID(m.ID)
	if err != nil {
		t.Fatalf("memory lost across reopen: %v", err)
	}
	if got.Project != "Japan" || len(got.Items) != 1 {
		t.Errorf("reloaded memory = %+v", got)
	}
}

// flakyStore wraps a real store and fails selected saves, for checking that
// a failed write leaves in-memory state untouched.
type flakyStore struct {
	store.Store
	failMemories   bool
	failCategories bool
}

func (f *flakyStore) SaveMemories(ctx context.Context, memories []model.Memory) error {
	if f.failMemories {
		return errors.New("disk full")
	}
	return f.Store.SaveMemories(ctx, memories)
}

func (f *flakyStore) SaveCategories(ctx context.Context, categories []string) error {
	if f.failCategories {
		return errors.New("disk full")
	}
	return f.Store.SaveCategories(ctx, categories)
}

func TestDeleteItemRollsBackOnFailedSave(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	m := addTestMemory(t, b, "Travel", "Japan",
		ItemParams{Title: "first", Category: "note", Description: "d"},
		ItemParams{Title: "second", Category: "note", Description: "d"},
	)

	flaky := &flakyStore{Store: b.store, failMemories: true}
	b.store = flaky

	if err := b.DeleteItem(ctx, m.ID, 0); err == nil {
		t.Fatal("expected save failure")
	}
	got, err := b.MemoryByID(m.ID)
	if err != nil {
		t.Fatalf("memory gone after failed delete: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].Title != "first" {
		t.Errorf("items not restored after failed save: %+v", got.Items)
	}

	// Deleting the last item would also remove the memory; a failed save
	// must keep the memory too.
	single := addTestMemoryWithStore(t, b, flaky, "Travel", "Japan",
		ItemParams{Title: "only", Category: "note", Description: "d"})
	flaky.failMemories = true
	if err := b.DeleteItem(ctx, single.ID, 0); err == nil {
		t.Fatal("expected save failure")
	}
	if _, err := b.MemoryByID(single.ID); err != nil {
		t.Errorf("memory removed despite failed save: %v", err)
	}
}

// addTestMemoryWithStore briefly lets writes through a flaky store so the
// fixture itself can be persisted.
func addTestMemoryWithStore(t *testing.T, b *Brain, flaky *flakyStore, category, project string, items ...ItemParams) *model.Memory {
	t.Helper()
	flaky.failMemories = false
	flaky.failCategories = false
	return addTestMemory(t, b, category, project, items...)
}

func TestRenameCategoryRollsBackOnFailedSave(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	m := addTestMemory(t, b, "Travel", "Japan")

	underlying := b.store
	flaky := &flakyStore{Store: underlying, failMemories: true}
	b.store = flaky

	// Categories save first and succeeds; the memories save fails, so both
	// collections roll back and the stored categories are written back.
	if err := b.RenameCategory(ctx, "Travel", "Trips"); err == nil {
		t.Fatal("expected save failure")
	}
	if b.Categories[0] != "Travel" {
		t.Errorf("categories not restored: %v", b.Categories)
	}
	got, err := b.MemoryByID(m.ID)
	if err != nil {
		t.Fatalf("memory lookup: %v", err)
	}
	if got.RootCategory != "Travel" {
		t.Errorf("memory category not restored: %s", got.RootCategory)
	}
	stored, err := underlying.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("load stored categories: %v", err)
	}
	for _, c := range stored {
		if c == "Trips" {
			t.Errorf("renamed category leaked into the store: %v", stored)
		}
	}
}

func TestCategoryMutationsRollBackOnFailedSave(t *testing.T) {
	ctx := context.Background()
	b := newTestBrain(t)
	b.store = &flakyStore{Store: b.store, failCategories: true}

	if err := b.AddCategory(ctx, "Health"); err == nil {
		t.Fatal("expected save failure")
	}
	if len(b.Categories) != 2 {
		t.Errorf("added category survived failed save: %v", b.Categories)
	}
	if err := b.DeleteCategory(ctx, "Life"); err == nil {
		t.Fatal("expected save failure")
	}
	if len(b.Categories) != 2 {
		t.Errorf("deleted category not restored: %v", b.Categories)
	}
}
