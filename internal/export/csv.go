package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

func ToCSV(tasks []store.Task, completions map[string][]store.Completion, now time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{"ID", "Name", "Description", "Interval", "Next Due", "Days Until", "Urgency", "Last Completed", "Archived", "Completions"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range tasks {
		t := &tasks[i]
		sch := schedule.Resolve(t.Anchor(), now, t.IntervalValue, t.IntervalUnit)

		lastStr := ""
		if t.LastCompletedAt != nil {
			lastStr = t.LastCompletedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			t.ID,
			t.Name,
			t.Description,
			schedule.FormatInterval(t.IntervalValue, t.IntervalUnit),
			sch.NextDue.Format("2006-01-02"),
			strconv.Itoa(sch.DaysUntil),
			string(sch.Urgency),
			lastStr,
			strconv.FormatBool(t.Archived),
			strconv.Itoa(len(completions[t.ID])),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
