// Package store provides durable persistence for the three capture
// collections and its SQLite implementation.
package store

import (
	"context"

	"github.com/ewchang/synapse/internal/model"
)

// Collection names. Each collection persists as one named entry holding a
// single serialized JSON value.
const (
	CollectionMemories   = "memories"
	CollectionTasks      = "tasks"
	CollectionCategories = "categories"
)

// DefaultCategories is the fallback category list used when no stored value
// exists or the stored value is malformed. The category invariant requires
// at least one entry.
var DefaultCategories = []string{"Life", "Work"}

// Store defines collection persistence. Loads fall back to a hardcoded
// default on missing or malformed values; they never fail on corruption.
type Store interface {
	// LoadMemories returns the stored memory collection, or an empty
	// collection when absent or malformed.
	LoadMemories(ctx context.Context) ([]model.Memory, error)

	// LoadTasks returns the stored task collection, or an empty collection
	// when absent or malformed.
	LoadTasks(ctx context.Context) ([]model.Task, error)

	// LoadCategories returns the stored category list, or DefaultCategories
	// when absent or malformed.
	LoadCategories(ctx context.Context) ([]string, error)

	// SaveMemories replaces the stored memory collection.
	SaveMemories(ctx context.Context, memories []model.Memory) error

	// SaveTasks replaces the stored task collection.
	SaveTasks(ctx context.Context, tasks []model.Task) error

	// SaveCategories replaces the stored category list.
	SaveCategories(ctx context.Context, categories []string) error

	// Close closes the store.
	Close() error
}
