package brain

import "github.com/ewchang/synapse/internal/model"

// Derive computes the category -> projects index from the current
// collections. Every known category appears as a key even with zero
// projects; a memory whose root category was deleted contributes its project
// under a synthesized key. General never appears as a project. The index is
// recomputed on demand and owns nothing.
func Derive(categories []string, memories []model.Memory) map[string][]string {
	h := make(map[string][]string, len(categories))
	for _, c := range categories {
		h[c] = []string{}
	}

	seen := make(map[string]bool)
	for _, m := range memories {
		if _, ok := h[m.RootCategory]; !ok {
			h[m.RootCategory] = []string{}
		}
		if m.Project == model.ProjectGeneral || seen[m.Project] {
			continue
		}
		seen[m.Project] = true
		h[m.RootCategory] = append(h[m.RootCategory], m.Project)
	}
	return h
}

// ReverseIndex inverts a derived hierarchy into project -> owning category.
func ReverseIndex(h map[string][]string) map[string]string {
	idx := make(map[string]string)
	for category, projects := range h {
		for _, p := range projects {
			idx[p] = category
		}
	}
	return idx
}

// Reconcile corrects a proposed (rootCategory, project) pair against the
// known hierarchy so that gateway output can never violate the
// project-uniquely-owns-category invariant:
//
//  1. project == General: keep it, fall back to the first known category if
//     the proposed category is unknown.
//  2. unknown project: force General and apply the same category fallback.
//  3. known project: the recorded owner wins over the proposed category.
//
// The result is idempotent: reconciling an already-reconciled pair is a
// no-op.
func Reconcile(categories []string, memories []model.Memory, rootCategory, project string) (string, string) {
	if len(categories) == 0 {
		return rootCategory, project
	}

	h := Derive(categories, memories)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	if project == model.ProjectGeneral || project == "" {
		if !known[rootCategory] {
			rootCategory = categories[0]
		}
		return rootCategory, model.ProjectGeneral
	}

	owner, ok := ReverseIndex(h)[project]
	if !ok {
		if !known[rootCategory] {
			rootCategory = categories[0]
		}
		return rootCategory, model.ProjectGeneral
	}
	return owner, project
}

// Hierarchy returns the derived category -> projects index for current
// state.
func (b *Brain) Hierarchy() map[string][]string {
	return Derive(b.Categories, b.Memories)
}

// PromptHierarchy returns the hierarchy in the shape the classification
// gateway expects: General guaranteed present under every category.
func (b *Brain) PromptHierarchy() map[string][]string {
	h := b.Hierarchy()
	out := make(map[string][]string, len(h))
	for category, projects := range h {
		out[category] = append([]string{model.ProjectGeneral}, projects...)
	}
	return out
}
