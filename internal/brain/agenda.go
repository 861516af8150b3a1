package brain

import (
	"fmt"
	"math"
	"time"

	"github.com/ewchang/synapse/internal/model"
)

// Entry sources.
const (
	SourceTask   = "task"
	SourceMemory = "memory"
)

// Entry is one actionable row of a day's agenda. Task entries are keyed by
// the task ID; memory entries by the composite "memoryID_index" key accepted
// by ToggleItemKey.
type Entry struct {
	Key         string
	Source      string
	Title       string
	Description string
	Location    string
	MapLink     string
	Date        string
	Status      string
}

// Agenda derives the unified agenda for a calendar date, evaluated at time
// now. Plan tasks match when their day number equals the whole-day distance
// from now's local midnight plus one, so day 1 always means "today at view
// time"; there is no persisted plan start. Memory items match on exact
// target-date string equality. Tasks come first in collection order, then
// memory items in memory-then-item order.
func (b *Brain) Agenda(now, date time.Time) []Entry {
	var entries []Entry

	dayN := dayNumber(now, date)
	for _, t := range b.Tasks {
		if t.Day != dayN {
			continue
		}
		entries = append(entries, Entry{
			Key:         t.ID,
			Source:      SourceTask,
			Title:       t.Title,
			Description: t.Feedback,
			Status:      t.Status,
		})
	}

	want := date.Format(model.DateFormat)
	for _, m := range b.Memories {
		for i, it := range m.Items {
			if it.TargetDate != want {
				continue
			}
			entries = append(entries, Entry{
				Key:         fmt.Sprintf("%s_%d", m.ID, i),
				Source:      SourceMemory,
				Title:       it.Title,
				Description: it.Description,
				Location:    it.Location,
				MapLink:     it.MapLink(),
				Date:        it.TargetDate,
				Status:      it.Status,
			})
		}
	}
	return entries
}

// dayNumber maps a calendar date to a 1-based plan day relative to now's
// local midnight.
func dayNumber(now, date time.Time) int {
	today := localMidnight(now)
	target := localMidnight(date)
	return int(math.Round(target.Sub(today).Hours()/24)) + 1
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
