package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Interval        string           `json:"interval"`
	NextDue         string           `json:"next_due"`
	DaysUntil       int              `json:"days_until"`
	Urgency         string           `json:"urgency"`
	LastCompletedAt string           `json:"last_completed_at,omitempty"`
	Archived        bool             `json:"archived"`
	Completions     []jsonCompletion `json:"completions,omitempty"`
}

type jsonCompletion struct {
	CompletedAt   string `json:"completed_at"`
	DaysSinceLast *int   `json:"days_since_last,omitempty"`
}

func ToJSON(tasks []store.Task, completions map[string][]store.Completion, now time.Time, path string) error {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for i := range tasks {
		t := &tasks[i]
		sch := schedule.Resolve(t.Anchor(), now, t.IntervalValue, t.IntervalUnit)

		jt := jsonTask{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Interval:    schedule.FormatInterval(t.IntervalValue, t.IntervalUnit),
			NextDue:     sch.NextDue.Format("2006-01-02"),
			DaysUntil:   sch.DaysUntil,
			Urgency:     string(sch.Urgency),
			Archived:    t.Archived,
		}
		if t.LastCompletedAt != nil {
			jt.LastCompletedAt = t.LastCompletedAt.Local().Format(time.RFC3339)
		}
		for _, c := range completions[t.ID] {
			jt.Completions = append(jt.Completions, jsonCompletion{
				CompletedAt:   c.CompletedAt.Local().Format(time.RFC3339),
				DaysSinceLast: c.DaysSinceLast,
			})
		}

		export.Tasks = append(export.Tasks, jt)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
