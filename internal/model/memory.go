// Package model defines the core capture data types.
package model

import "time"

// DateFormat is the fixed lexical date format used for item target dates
// and display dates. Fixed-width, so plain string comparison sorts
// chronologically.
const DateFormat = "2006.01.02"

// ProjectGeneral is the sentinel project (and sub-project) meaning
// "ungrouped". It is exempt from the project uniqueness rule and never
// appears as a folder in the browser.
const ProjectGeneral = "General"

// ManualCreationText marks a Memory that exists only as a placeholder for a
// manually created project. Such a Memory survives with an empty item list
// where any other Memory would be cleaned up.
const ManualCreationText = "Manual Project Creation"

// Memory represents one ingestion event: a piece of raw text (optionally
// with an image) classified into structured items.
type Memory struct {
	ID           string           `json:"id"`
	OriginalText string           `json:"original_text"`
	RootCategory string           `json:"root_category"`
	Project      string           `json:"project"`
	SubProject   string           `json:"sub_project,omitempty"`
	Type         string           `json:"type"`
	Items        []StructuredItem `json:"items"`
	Tags         []string         `json:"tags,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	Image        []byte           `json:"image,omitempty"`
}

// StructuredItem is one actionable or informational unit inside a Memory.
// Items carry a stable ID assigned at creation, but are addressed externally
// by (memoryID, index); deleting index k shifts later items down by one.
type StructuredItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ActionNote  string   `json:"action_note,omitempty"`
	TargetDate  string   `json:"target_date,omitempty"`
	Status      string   `json:"status"`
}

// Task is a planner-generated to-do, independent of Memories. Day is a
// 1-based plan day number, not a calendar date.
type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Day      int    `json:"day"`
	Status   string `json:"status"`
	Feedback string `json:"feedback,omitempty"`
}

// Memory types.
const (
	TypeNote        = "note"
	TypePlan        = "plan"
	TypeInspiration = "inspiration"
)

// Item / task statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// ValidTypes are the allowed memory types.
var ValidTypes = map[string]bool{
	TypeNote:        true,
	TypePlan:        true,
	TypeInspiration: true,
}

// ValidStatuses are the allowed item statuses.
var ValidStatuses = map[string]bool{
	StatusPending:   true,
	StatusCompleted: true,
}

// DisplayDate returns the item's effective display date: the target date if
// set, otherwise the owning Memory's creation date in the same format.
func (it StructuredItem) DisplayDate(owner Memory) string {
	if it.TargetDate != "" {
		return it.TargetDate
	}
	return owner.CreatedAt.Format(DateFormat)
}

// IsManualPlaceholder reports whether the Memory is a manually created
// project placeholder, which is retained even with zero items.
func (m Memory) IsManualPlaceholder() bool {
	return m.OriginalText == ManualCreationText
}
