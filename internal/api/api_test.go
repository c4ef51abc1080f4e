package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewServer(s), s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateTask(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", createTaskRequest{
		Name:          "Water plants",
		IntervalValue: 3,
		IntervalUnit:  "days",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	task := decode[taskResponse](t, rec)
	if task.ID == "" {
		t.Fatal("missing id")
	}
	// Anchor is "now", so a 3-day interval reads 3 days out.
	if task.DaysUntilDue != 3 {
		t.Fatalf("daysUntilDue = %d, want 3", task.DaysUntilDue)
	}
	if task.Urgency != string(schedule.UrgencyThisWeek) {
		t.Fatalf("urgency = %s", task.Urgency)
	}
	if task.IntervalLabel != "Every 3 days" {
		t.Fatalf("intervalLabel = %s", task.IntervalLabel)
	}
	want := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")
	if task.NextDueDate != want {
		t.Fatalf("nextDueDate = %s, want %s", task.NextDueDate, want)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []createTaskRequest{
		{Name: "", IntervalValue: 3, IntervalUnit: "days"},
		{Name: "x", IntervalValue: 0, IntervalUnit: "days"},
		{Name: "x", IntervalValue: 1, IntervalUnit: "hours"},
	}
	for _, req := range tests {
		rec := doJSON(t, h, http.MethodPost, "/api/tasks", req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status for %+v = %d, want 400", req, rec.Code)
		}
	}
}

func TestListTasksSortedByDue(t *testing.T) {
	srv, st := newTestServer(t)
	st.CreateTask("Monthly", "", 1, schedule.UnitMonths)
	st.CreateTask("Daily", "", 1, schedule.UnitDays)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	tasks := decode[[]taskResponse](t, rec)
	if len(tasks) != 2 {
		t.Fatalf("len = %d", len(tasks))
	}
	if tasks[0].Name != "Daily" {
		t.Fatalf("first task = %s, want Daily", tasks[0].Name)
	}
}

func TestCompleteTaskReturnsSchedule(t *testing.T) {
	srv, st := newTestServer(t)
	task, _ := st.CreateTask("Water plants", "", 3, schedule.UnitDays)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/tasks/"+task.ID+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decode[taskResponse](t, rec)
	if got.DaysUntilDue != 3 {
		t.Fatalf("daysUntilDue after completion = %d, want 3", got.DaysUntilDue)
	}
	if got.LastCompletedAt == "" {
		t.Fatal("lastCompletedAt missing")
	}
}

func TestCompleteMissingTask(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/tasks/nope/complete", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	srv, st := newTestServer(t)
	task, _ := st.CreateTask("Old", "", 2, schedule.UnitDays)

	name := "New"
	rec := doJSON(t, srv.Handler(), http.MethodPut, "/api/tasks/"+task.ID, updateTaskRequest{Name: &name})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decode[taskResponse](t, rec)
	if got.Name != "New" || got.IntervalValue != 2 {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestDeleteTask(t *testing.T) {
	srv, st := newTestServer(t)
	task, _ := st.CreateTask("X", "", 1, schedule.UnitDays)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestArchiveTaskHidesFromList(t *testing.T) {
	srv, st := newTestServer(t)
	task, _ := st.CreateTask("X", "", 1, schedule.UnitDays)
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/tasks/"+task.ID+"/archive", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/tasks", nil)
	if got := decode[[]taskResponse](t, rec); len(got) != 0 {
		t.Fatalf("archived task still listed: %+v", got)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/tasks?archived=true", nil)
	if got := decode[[]taskResponse](t, rec); len(got) != 1 || !got[0].Archived {
		t.Fatalf("archived listing wrong: %+v", got)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	task, _ := st.CreateTask("X", "", 1, schedule.UnitDays)
	st.CompleteTask(task.ID, time.Now().UTC().AddDate(0, 0, -4))
	st.CompleteTask(task.ID, time.Now().UTC())
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/tasks/"+task.ID+"/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	records := decode[[]historyResponse](t, rec)
	if len(records) != 2 {
		t.Fatalf("len = %d", len(records))
	}
	if records[0].DaysSinceLast == nil || *records[0].DaysSinceLast != 4 {
		t.Fatalf("daysSinceLast = %v, want 4", records[0].DaysSinceLast)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/tasks/nope/history", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing task history status = %d, want 404", rec.Code)
	}
}

func TestTaskCounts(t *testing.T) {
	srv, st := newTestServer(t)
	st.CreateTask("Soon", "", 3, schedule.UnitDays)    // this-week
	st.CreateTask("Later", "", 2, schedule.UnitMonths) // upcoming
	overdue, _ := st.CreateTask("Old", "", 1, schedule.UnitDays)
	st.CompleteTask(overdue.ID, time.Now().UTC().AddDate(0, 0, -8)) // due 7 days ago

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/tasks/counts", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	counts := decode[countsResponse](t, rec)
	if counts.Total != 3 {
		t.Fatalf("total = %d", counts.Total)
	}
	if counts.Overdue != 1 || counts.ThisWeek != 1 || counts.Upcoming != 1 {
		t.Fatalf("counts = %+v", counts)
	}
}
