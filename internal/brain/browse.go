package brain

import (
	"sort"

	"github.com/ewchang/synapse/internal/model"
)

// ItemRef addresses one structured item inside the browser view.
type ItemRef struct {
	MemoryID string
	Index    int
	Item     model.StructuredItem
	Date     string // effective display date: target date or memory creation date
}

// SubGroup is one sub-project bucket inside a project folder.
type SubGroup struct {
	Name  string
	Items []ItemRef
}

// Folder groups the items of one project by sub-project.
type Folder struct {
	Project   string
	Category  string
	SubGroups []SubGroup
}

// BrowseView is the memory browser projection for one category filter.
// Memories on the General project collapse into the Loose list; everything
// else lands in a project folder.
type BrowseView struct {
	Loose   []ItemRef
	Folders []Folder
}

// Browse projects current state into the browser view. An empty category
// shows all memories. Folder and sub-group order follow first observation;
// when a folder has more than one sub-project its items sort ascending by
// display date string, which is chronological because the format is
// fixed-width.
func (b *Brain) Browse(category string) BrowseView {
	var view BrowseView
	folderIdx := make(map[string]int)

	for _, m := range b.Memories {
		if category != "" && m.RootCategory != category {
			continue
		}
		if m.Project == model.ProjectGeneral {
			for i, it := range m.Items {
				view.Loose = append(view.Loose, ItemRef{
					MemoryID: m.ID, Index: i, Item: it, Date: it.DisplayDate(m),
				})
			}
			continue
		}

		fi, ok := folderIdx[m.Project]
		if !ok {
			fi = len(view.Folders)
			folderIdx[m.Project] = fi
			view.Folders = append(view.Folders, Folder{
				Project:  m.Project,
				Category: m.RootCategory,
			})
		}
		f := &view.Folders[fi]

		sub := m.SubProject
		if sub == "" {
			sub = model.ProjectGeneral
		}
		si := -1
		for i := range f.SubGroups {
			if f.SubGroups[i].Name == sub {
				si = i
				break
			}
		}
		if si < 0 {
			si = len(f.SubGroups)
			f.SubGroups = append(f.SubGroups, SubGroup{Name: sub})
		}
		for i, it := range m.Items {
			f.SubGroups[si].Items = append(f.SubGroups[si].Items, ItemRef{
				MemoryID: m.ID, Index: i, Item: it, Date: it.DisplayDate(m),
			})
		}
	}

	for fi := range view.Folders {
		f := &view.Folders[fi]
		if len(f.SubGroups) < 2 {
			continue
		}
		for si := range f.SubGroups {
			items := f.SubGroups[si].Items
			sort.SliceStable(items, func(a, b int) bool {
				return items[a].Date < items[b].Date
			})
		}
	}
	return view
}
