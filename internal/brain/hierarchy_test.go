package brain

import (
	"reflect"
	"testing"

	"github.com/ewchang/synapse/internal/model"
)

func mem(category, project string) model.Memory {
	return model.Memory{
		RootCategory: category,
		Project:      project,
		Items:        []model.StructuredItem{{Title: "x", Status: model.StatusPending}},
	}
}

func TestDerive(t *testing.T) {
	categories := []string{"Travel", "Life"}
	memories := []model.Memory{
		mem("Travel", "Japan"),
		mem("Travel", "Japan"),
		mem("Travel", "General"),
		mem("Life", "General"),
		mem("Gone", "Orphans"), // category was deleted
	}

	h := Derive(categories, memories)

	if got := h["Travel"]; !reflect.DeepEqual(got, []string{"Japan"}) {
		t.Errorf("Travel projects = %v, want [Japan]", got)
	}
	if got := h["Life"]; len(got) != 0 {
		t.Errorf("Life projects = %v, want empty", got)
	}
	// Dangling category contributes under a synthesized key.
	if got := h["Gone"]; !reflect.DeepEqual(got, []string{"Orphans"}) {
		t.Errorf("Gone projects = %v, want [Orphans]", got)
	}
}

func TestReconcile(t *testing.T) {
	categories := []string{"Travel", "Life"}
	memories := []model.Memory{mem("Travel", "Japan")}

	tests := []struct {
		name         string
		category     string
		project      string
		wantCategory string
		wantProject  string
	}{
		{"known project wins over stated category", "Life", "Japan", "Travel", "Japan"},
		{"general with known category", "Life", "General", "Life", "General"},
		{"general with unknown category falls back to first", "Cooking", "General", "Travel", "General"},
		{"hallucinated project forced to general", "Life", "Atlantis", "Life", "General"},
		{"hallucinated project and category", "Cooking", "Atlantis", "Travel", "General"},
		{"already valid pair passes through", "Travel", "Japan", "Travel", "Japan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := Reconcile(categories, memories, tt.category, tt.project)
			if c != tt.wantCategory || p != tt.wantProject {
				t.Errorf("Reconcile(%q, %q) = (%q, %q), want (%q, %q)",
					tt.category, tt.project, c, p, tt.wantCategory, tt.wantProject)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	categories := []string{"Travel", "Life"}
	memories := []model.Memory{mem("Travel", "Japan")}

	inputs := [][2]string{
		{"Life", "Japan"},
		{"Cooking", "Atlantis"},
		{"Life", "General"},
	}
	for _, in := range inputs {
		c1, p1 := Reconcile(categories, memories, in[0], in[1])
		c2, p2 := Reconcile(categories, memories, c1, p1)
		if c1 != c2 || p1 != p2 {
			t.Errorf("Reconcile not idempotent for %v: first (%q,%q), second (%q,%q)",
				in, c1, p1, c2, p2)
		}
	}
}

func TestPromptHierarchyIncludesGeneral(t *testing.T) {
	categories := []string{"Travel", "Life"}
	memories := []model.Memory{mem("Travel", "Japan")}

	b := &Brain{Categories: categories, Memories: memories}
	h := b.PromptHierarchy()

	if got := h["Travel"]; !reflect.DeepEqual(got, []string{"General", "Japan"}) {
		t.Errorf("Travel = %v, want [General Japan]", got)
	}
	if got := h["Life"]; !reflect.DeepEqual(got, []string{"General"}) {
		t.Errorf("Life = %v, want [General]", got)
	}
}
