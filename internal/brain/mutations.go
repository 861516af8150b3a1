package brain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ewchang/synapse/internal/model"
)

// ItemParams holds the caller-supplied fields of one structured item.
type ItemParams struct {
	Title       string
	Category    string
	Description string
	Location    string
	Rating      *float64
	ActionNote  string
	TargetDate  string
}

// AddMemoryParams holds parameters for ingesting a classified capture.
type AddMemoryParams struct {
	OriginalText string
	RootCategory string
	Project      string
	SubProject   string
	Type         string
	Tags         []string
	Items        []ItemParams
	Image        []byte
}

// AddMemory ingests one classified capture. The (category, project) pair is
// reconciled against the known hierarchy before anything is stored, so an
// invalid combination can never enter state.
func (b *Brain) AddMemory(ctx context.Context, p AddMemoryParams) (*model.Memory, error) {
	if len(p.Items) == 0 && p.OriginalText != model.ManualCreationText {
		return nil, ErrEmptyMemory
	}

	category, project := Reconcile(b.Categories, b.Memories, p.RootCategory, p.Project)

	subProject := p.SubProject
	if subProject == "" {
		subProject = model.ProjectGeneral
	}
	typ := p.Type
	if !model.ValidTypes[typ] {
		typ = model.TypeNote
	}

	items := make([]model.StructuredItem, 0, len(p.Items))
	for _, ip := range p.Items {
		items = append(items, model.StructuredItem{
			ID:          b.newID(),
			Title:       ip.Title,
			Category:    ip.Category,
			Description: ip.Description,
			Location:    ip.Location,
			Rating:      ip.Rating,
			ActionNote:  ip.ActionNote,
			TargetDate:  ip.TargetDate,
			Status:      model.StatusPending,
		})
	}

	mem := model.Memory{
		ID:           b.newID(),
		OriginalText: p.OriginalText,
		RootCategory: category,
		Project:      project,
		SubProject:   subProject,
		Type:         typ,
		Items:        items,
		Tags:         p.Tags,
		CreatedAt:    time.Now(),
		Image:        p.Image,
	}

	b.Memories = append(b.Memories, mem)
	if err := b.saveMemories(ctx); err != nil {
		b.Memories = b.Memories[:len(b.Memories)-1]
		return nil, err
	}
	return &b.Memories[len(b.Memories)-1], nil
}

// CreateProject creates an empty project under the given category, backed by
// a placeholder memory carrying the manual-creation sentinel text.
func (b *Brain) CreateProject(ctx context.Context, category, project string) (*model.Memory, error) {
	if !b.hasCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if project == model.ProjectGeneral {
		return nil, ErrReservedProject
	}
	if owner, used := b.projectOwner(project); used {
		return nil, fmt.Errorf("%w: %s (under %s)", ErrDuplicateProject, project, owner)
	}

	// Built directly rather than through AddMemory: reconciliation would
	// reject a project name no memory uses yet.
	mem := model.Memory{
		ID:           b.newID(),
		OriginalText: model.ManualCreationText,
		RootCategory: category,
		Project:      project,
		SubProject:   model.ProjectGeneral,
		Type:         model.TypeNote,
		Items:        []model.StructuredItem{},
		CreatedAt:    time.Now(),
	}
	b.Memories = append(b.Memories, mem)
	if err := b.saveMemories(ctx); err != nil {
		b.Memories = b.Memories[:len(b.Memories)-1]
		return nil, err
	}
	return &b.Memories[len(b.Memories)-1], nil
}

// UpdateItem replaces the item at (memoryID, index). The item's stable ID is
// preserved.
func (b *Brain) UpdateItem(ctx context.Context, memoryID string, index int, item model.StructuredItem) error {
	mem, err := b.MemoryByID(memoryID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(mem.Items) {
		return fmt.Errorf("%w: %s[%d]", ErrItemNotFound, memoryID, index)
	}
	item.ID = mem.Items[index].ID
	if !model.ValidStatuses[item.Status] {
		item.Status = mem.Items[index].Status
	}
	prev := mem.Items[index]
	mem.Items[index] = item
	if err := b.saveMemories(ctx); err != nil {
		mem.Items[index] = prev
		return err
	}
	return nil
}

// DeleteItem removes the item at (memoryID, index), shifting later items
// down by one. A memory left with no items is removed unless it is a manual
// project placeholder.
func (b *Brain) DeleteItem(ctx context.Context, memoryID string, index int) error {
	mem, err := b.MemoryByID(memoryID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(mem.Items) {
		return fmt.Errorf("%w: %s[%d]", ErrItemNotFound, memoryID, index)
	}

	prev := snapshot(b.Memories)
	items := make([]model.StructuredItem, 0, len(mem.Items)-1)
	items = append(items, mem.Items[:index]...)
	items = append(items, mem.Items[index+1:]...)
	mem.Items = items

	if len(mem.Items) == 0 && !mem.IsManualPlaceholder() {
		b.removeMemory(memoryID)
	}
	if err := b.saveMemories(ctx); err != nil {
		b.Memories = prev
		return err
	}
	return nil
}

// ToggleItem flips the completion status of the item at (memoryID, index)
// and returns the new status.
func (b *Brain) ToggleItem(ctx context.Context, memoryID string, index int) (string, error) {
	mem, err := b.MemoryByID(memoryID)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(mem.Items) {
		return "", fmt.Errorf("%w: %s[%d]", ErrItemNotFound, memoryID, index)
	}
	prev := mem.Items[index].Status
	if prev == model.StatusCompleted {
		mem.Items[index].Status = model.StatusPending
	} else {
		mem.Items[index].Status = model.StatusCompleted
	}
	if err := b.saveMemories(ctx); err != nil {
		mem.Items[index].Status = prev
		return "", err
	}
	return mem.Items[index].Status, nil
}

// ToggleItemKey toggles an item addressed by its composite agenda key
// "memoryID_index".
func (b *Brain) ToggleItemKey(ctx context.Context, key string) (string, error) {
	sep := strings.LastIndex(key, "_")
	if sep <= 0 || sep == len(key)-1 {
		return "", fmt.Errorf("%w: bad key %q", ErrItemNotFound, key)
	}
	index, err := strconv.Atoi(key[sep+1:])
	if err != nil {
		return "", fmt.Errorf("%w: bad key %q", ErrItemNotFound, key)
	}
	return b.ToggleItem(ctx, key[:sep], index)
}

// DeleteMemory removes a memory outright.
func (b *Brain) DeleteMemory(ctx context.Context, memoryID string) error {
	if _, err := b.MemoryByID(memoryID); err != nil {
		return err
	}
	prev := snapshot(b.Memories)
	b.removeMemory(memoryID)
	if err := b.saveMemories(ctx); err != nil {
		b.Memories = prev
		return err
	}
	return nil
}

// RenameProject renames a project across every memory carrying it. The new
// name must not collide with any existing project under any category.
func (b *Brain) RenameProject(ctx context.Context, oldName, newName string) error {
	if oldName == model.ProjectGeneral || newName == model.ProjectGeneral {
		return ErrReservedProject
	}
	if _, exists := b.projectOwner(oldName); !exists {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, oldName)
	}
	if newName != oldName {
		if owner, used := b.projectOwner(newName); used {
			return fmt.Errorf("%w: %s (under %s)", ErrDuplicateProject, newName, owner)
		}
	}
	for i := range b.Memories {
		if b.Memories[i].Project == oldName {
			b.Memories[i].Project = newName
		}
	}
	if err := b.saveMemories(ctx); err != nil {
		for i := range b.Memories {
			if b.Memories[i].Project == newName {
				b.Memories[i].Project = oldName
			}
		}
		return err
	}
	return nil
}

// DeleteProject removes every memory belonging to the project, placeholders
// included.
func (b *Brain) DeleteProject(ctx context.Context, name string) error {
	if name == model.ProjectGeneral {
		return ErrReservedProject
	}
	if _, exists := b.projectOwner(name); !exists {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	prev := snapshot(b.Memories)
	b.Memories = filterMemories(b.Memories, func(m model.Memory) bool { return m.Project != name })
	if err := b.saveMemories(ctx); err != nil {
		b.Memories = prev
		return err
	}
	return nil
}

// AddCategory appends a new category.
func (b *Brain) AddCategory(ctx context.Context, name string) error {
	if b.hasCategory(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	b.Categories = append(b.Categories, name)
	if err := b.saveCategories(ctx); err != nil {
		b.Categories = b.Categories[:len(b.Categories)-1]
		return err
	}
	return nil
}

// RenameCategory renames a category and cascades the new name to every
// memory rooted at the old one. Categories are referenced by name only, so
// the cascade is what keeps memories attached.
func (b *Brain) RenameCategory(ctx context.Context, oldName, newName string) error {
	if !b.hasCategory(oldName) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, oldName)
	}
	if newName != oldName && b.hasCategory(newName) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
	}
	prevCategories := snapshot(b.Categories)
	prevMemories := snapshot(b.Memories)
	for i, c := range b.Categories {
		if c == oldName {
			b.Categories[i] = newName
		}
	}
	for i := range b.Memories {
		if b.Memories[i].RootCategory == oldName {
			b.Memories[i].RootCategory = newName
		}
	}
	if err := b.saveCategories(ctx); err != nil {
		b.Categories = prevCategories
		b.Memories = prevMemories
		return err
	}
	if err := b.saveMemories(ctx); err != nil {
		b.Categories = prevCategories
		b.Memories = prevMemories
		// Undo the already-persisted category rename so the two stored
		// collections stay in step.
		if undoErr := b.saveCategories(ctx); undoErr != nil {
			return fmt.Errorf("save memories: %w (category rollback also failed: %v)", err, undoErr)
		}
		return err
	}
	return nil
}

// DeleteCategory removes a category from the list. The last remaining
// category cannot be deleted. Memories rooted at the deleted category are
// left in place; the hierarchy deriver surfaces them under a synthesized
// key.
func (b *Brain) DeleteCategory(ctx context.Context, name string) error {
	if !b.hasCategory(name) {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if len(b.Categories) == 1 {
		return ErrLastCategory
	}
	prev := snapshot(b.Categories)
	kept := make([]string, 0, len(b.Categories)-1)
	for _, c := range b.Categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	b.Categories = kept
	if err := b.saveCategories(ctx); err != nil {
		b.Categories = prev
		return err
	}
	return nil
}

// InstallPlan replaces the task collection with a freshly generated plan.
// Titles are prefixed with their plan day.
func (b *Brain) InstallPlan(ctx context.Context, days []PlanDay) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(days))
	for _, d := range days {
		title := d.Title
		prefix := fmt.Sprintf("Day %d: ", d.Day)
		if !strings.HasPrefix(title, prefix) {
			title = prefix + title
		}
		tasks = append(tasks, model.Task{
			ID:     b.newID(),
			Title:  title,
			Day:    d.Day,
			Status: model.StatusPending,
		})
	}
	prev := b.Tasks
	b.Tasks = tasks
	if err := b.saveTasks(ctx); err != nil {
		b.Tasks = prev
		return nil, err
	}
	return b.Tasks, nil
}

// PlanDay is one day-numbered entry of a generated plan.
type PlanDay struct {
	Day   int
	Title string
}

// ToggleTask flips a task's completion status and returns the new status.
func (b *Brain) ToggleTask(ctx context.Context, id string) (string, error) {
	for i := range b.Tasks {
		if b.Tasks[i].ID != id {
			continue
		}
		prev := b.Tasks[i].Status
		if prev == model.StatusCompleted {
			b.Tasks[i].Status = model.StatusPending
		} else {
			b.Tasks[i].Status = model.StatusCompleted
		}
		if err := b.saveTasks(ctx); err != nil {
			b.Tasks[i].Status = prev
			return "", err
		}
		return b.Tasks[i].Status, nil
	}
	return "", fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// SetTaskFeedback records feedback text on a task.
func (b *Brain) SetTaskFeedback(ctx context.Context, id, feedback string) error {
	for i := range b.Tasks {
		if b.Tasks[i].ID == id {
			prev := b.Tasks[i].Feedback
			b.Tasks[i].Feedback = feedback
			if err := b.saveTasks(ctx); err != nil {
				b.Tasks[i].Feedback = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

func (b *Brain) hasCategory(name string) bool {
	for _, c := range b.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// projectOwner returns the category owning a non-General project, if any
// memory uses it.
func (b *Brain) projectOwner(name string) (string, bool) {
	if name == model.ProjectGeneral {
		return "", false
	}
	owner, ok := ReverseIndex(b.Hierarchy())[name]
	return owner, ok
}

func (b *Brain) removeMemory(id string) {
	b.Memories = filterMemories(b.Memories, func(m model.Memory) bool { return m.ID != id })
}

// filterMemories builds a fresh slice so a snapshot taken before the
// mutation is not clobbered through the shared backing array.
func filterMemories(memories []model.Memory, keep func(model.Memory) bool) []model.Memory {
	kept := make([]model.Memory, 0, len(memories))
	for _, m := range memories {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

// snapshot copies a collection before an in-place mutation so a failed save
// can restore it.
func snapshot[T any](s []T) []T {
	prev := make([]T, len(s))
	copy(prev, s)
	return prev
}
