// Package brain owns the in-memory capture state and its mutation
// operations. All three collections are loaded at startup and written back
// to the store after every successful mutation; validation failures leave
// state untouched.
package brain

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ewchang/synapse/internal/model"
	"github.com/ewchang/synapse/internal/store"
)

// Validation rejections. Each maps to a user-visible notice; none of them
// leaves partial state behind.
var (
	ErrLastCategory      = errors.New("cannot delete the last category")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrDuplicateProject  = errors.New("project name already in use")
	ErrReservedProject   = errors.New("General is reserved")
	ErrProjectNotFound   = errors.New("project not found")
	ErrMemoryNotFound    = errors.New("memory not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmptyMemory       = errors.New("classification produced no items")
)

// Brain holds the three collections and the store they persist to.
type Brain struct {
	Memories   []model.Memory
	Tasks      []model.Task
	Categories []string

	store   store.Store
	entropy *rand.Rand
}

// Open loads all collections from the store into a new Brain.
func Open(ctx context.Context, st store.Store) (*Brain, error) {
	memories, err := st.LoadMemories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}
	tasks, err := st.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	categories, err := st.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	return &Brain{
		Memories:   memories,
		Tasks:      tasks,
		Categories: categories,
		store:      st,
		entropy:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (b *Brain) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), b.entropy).String()
}

// MemoryByID returns the memory with the given ID.
func (b *Brain) MemoryByID(id string) (*model.Memory, error) {
	for i := range b.Memories {
		if b.Memories[i].ID == id {
			return &b.Memories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMemoryNotFound, id)
}

// KnownTags returns the selectable tag set: all categories plus every
// distinct non-General project name.
func (b *Brain) KnownTags() []string {
	tags := append([]string{}, b.Categories...)
	seen := make(map[string]bool, len(tags))
	for _, c := range b.Categories {
		seen[c] = true
	}
	for _, m := range b.Memories {
		if m.Project == model.ProjectGeneral || seen[m.Project] {
			continue
		}
		seen[m.Project] = true
		tags = append(tags, m.Project)
	}
	return tags
}

func (b *Brain) saveMemories(ctx context.Context) error {
	return b.store.SaveMemories(ctx, b.Memories)
}

func (b *Brain) saveTasks(ctx context.Context) error {
	return b.store.SaveTasks(ctx, b.Tasks)
}

func (b *Brain) saveCategories(ctx context.Context) error {
	return b.store.SaveCategories(ctx, b.Categories)
}
