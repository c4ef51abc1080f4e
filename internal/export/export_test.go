package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

func sampleData() ([]store.Task, map[string][]store.Completion, time.Time) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -1)
	four := 4

	tasks := []store.Task{
		{
			ID:              "t1",
			Name:            "Water plants",
			Description:     "the ones in the kitchen",
			IntervalValue:   3,
			IntervalUnit:    schedule.UnitDays,
			LastCompletedAt: &last,
			CreatedAt:       now.AddDate(0, 0, -30),
			UpdatedAt:       last,
		},
		{
			ID:            "t2",
			Name:          "Descale kettle",
			IntervalValue: 2,
			IntervalUnit:  schedule.UnitMonths,
			Archived:      true,
			CreatedAt:     now.AddDate(0, 0, -10),
			UpdatedAt:     now,
		},
	}

	completions := map[string][]store.Completion{
		"t1": {
			{ID: "c2", TaskID: "t1", CompletedAt: last, DaysSinceLast: &four},
			{ID: "c1", TaskID: "t1", CompletedAt: last.AddDate(0, 0, -4)},
		},
	}

	return tasks, completions, now
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	tasks, completions, now := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(tasks, completions, now, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	header := records[0]
	if header[0] != "ID" || header[4] != "Next Due" || header[6] != "Urgency" {
		t.Fatalf("unexpected header: %v", header)
	}

	row := records[1]
	if row[1] != "Water plants" {
		t.Fatalf("Name = %q", row[1])
	}
	if row[3] != "Every 3 days" {
		t.Fatalf("Interval = %q", row[3])
	}
	if row[4] != "2025-03-12" {
		t.Fatalf("Next Due = %q, want 2025-03-12", row[4])
	}
	if row[5] != "2" {
		t.Fatalf("Days Until = %q, want 2", row[5])
	}
	if row[6] != string(schedule.UrgencyThisWeek) {
		t.Fatalf("Urgency = %q", row[6])
	}
	if row[9] != "2" {
		t.Fatalf("Completions = %q, want 2", row[9])
	}

	archived := records[2]
	if archived[8] != "true" {
		t.Fatalf("Archived = %q, want true", archived[8])
	}
	if archived[7] != "" {
		t.Fatalf("never-completed task should have empty Last Completed, got %q", archived[7])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, time.Now(), path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, time.Now(), "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	now := time.Now()
	tasks := []store.Task{
		{
			ID:            "t1",
			Name:          `Clean "the" filter, weekly`,
			IntervalValue: 1,
			IntervalUnit:  schedule.UnitWeeks,
			CreatedAt:     now,
		},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(tasks, nil, now, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][1] != `Clean "the" filter, weekly` {
		t.Fatalf("name mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	tasks, completions, now := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(tasks, completions, now, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("count = %d, want 2", result.Count)
	}
	if result.ExportedAt != "2025-03-10T12:00:00Z" {
		t.Fatalf("exported_at = %q", result.ExportedAt)
	}

	task := result.Tasks[0]
	if task.Name != "Water plants" {
		t.Fatalf("Name = %q", task.Name)
	}
	if task.NextDue != "2025-03-12" {
		t.Fatalf("NextDue = %q", task.NextDue)
	}
	if task.DaysUntil != 2 {
		t.Fatalf("DaysUntil = %d, want 2", task.DaysUntil)
	}
	if len(task.Completions) != 2 {
		t.Fatalf("completions = %d, want 2", len(task.Completions))
	}
	if task.Completions[0].DaysSinceLast == nil || *task.Completions[0].DaysSinceLast != 4 {
		t.Fatalf("days_since_last = %v, want 4", task.Completions[0].DaysSinceLast)
	}
	if task.Completions[1].DaysSinceLast != nil {
		t.Fatal("first-ever completion should have nil days_since_last")
	}

	if !result.Tasks[1].Archived {
		t.Fatal("archived flag lost")
	}
	if result.Tasks[1].Completions != nil {
		t.Fatal("task without completions should omit the list")
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, nil, time.Now(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Tasks != nil {
		t.Fatal("tasks should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, time.Now(), "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, time.Now(), path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}
