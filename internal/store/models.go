package store

import (
	"time"

	"github.com/mlasch/tend/internal/schedule"
)

// Task is a recurring obligation. Scheduling facts are not stored here;
// derive them with schedule.Resolve(task.Anchor(), now, ...).
type Task struct {
	ID              string
	Name            string
	Description     string
	IntervalValue   int
	IntervalUnit    schedule.Unit
	LastCompletedAt *time.Time
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Anchor is the date the next due date is computed from: the last
// completion, or creation if the task has never been completed.
func (t *Task) Anchor() time.Time {
	if t.LastCompletedAt != nil {
		return *t.LastCompletedAt
	}
	return t.CreatedAt
}

// Completion is one append-only completion event for a task.
type Completion struct {
	ID            string
	TaskID        string
	CompletedAt   time.Time
	DaysSinceLast *int // nil for the first completion
}

type Setting struct {
	Key   string
	Value string
}

// DayCount is a per-day completion tally used by the stats view.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int
}
