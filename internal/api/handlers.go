package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

// taskResponse is a task with its derived schedule attached.
type taskResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	IntervalValue   int    `json:"intervalValue"`
	IntervalUnit    string `json:"intervalUnit"`
	IntervalLabel   string `json:"intervalLabel"`
	NextDueDate     string `json:"nextDueDate"`
	DaysUntilDue    int    `json:"daysUntilDue"`
	Urgency         string `json:"urgency"`
	Remaining       string `json:"remaining"`
	LastCompletedAt string `json:"lastCompletedAt,omitempty"`
	Archived        bool   `json:"archived"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func (s *Server) toResponse(t *store.Task) taskResponse {
	sch := schedule.Resolve(t.Anchor(), s.now(), t.IntervalValue, t.IntervalUnit)
	resp := taskResponse{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		IntervalValue: t.IntervalValue,
		IntervalUnit:  string(t.IntervalUnit),
		IntervalLabel: schedule.FormatInterval(t.IntervalValue, t.IntervalUnit),
		NextDueDate:   sch.NextDue.Format("2006-01-02"),
		DaysUntilDue:  sch.DaysUntil,
		Urgency:       string(sch.Urgency),
		Remaining:     schedule.FormatRemaining(sch.DaysUntil),
		Archived:      t.Archived,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.LastCompletedAt != nil {
		resp.LastCompletedAt = t.LastCompletedAt.Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("archived") == "true"

	var tasks []store.Task
	var err error
	if includeArchived {
		tasks, err = s.store.ListTasks(true)
	} else {
		tasks, err = s.store.ListActiveByDue()
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, s.toResponse(&tasks[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createTaskRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	IntervalValue int    `json:"intervalValue"`
	IntervalUnit  string `json:"intervalUnit"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, err := s.store.CreateTask(req.Name, req.Description, req.IntervalValue, schedule.Unit(req.IntervalUnit))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, s.toResponse(task))
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(task))
}

type updateTaskRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	IntervalValue *int    `json:"intervalValue"`
	IntervalUnit  *string `json:"intervalUnit"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var unit *schedule.Unit
	if req.IntervalUnit != nil {
		u := schedule.Unit(*req.IntervalUnit)
		unit = &u
	}
	task, err := s.store.UpdateTask(chi.URLParam(r, "id"), req.Name, req.Description, req.IntervalValue, unit)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(task))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArchiveTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.ArchiveTask(id); err != nil {
		writeStoreError(w, err)
		return
	}
	task, err := s.store.GetTask(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(task))
}

// handleCompleteTask marks the task done now and returns the updated
// schedule, so the client can re-render without a second round trip.
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.CompleteTask(chi.URLParam(r, "id"), s.now())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(task))
}

type historyResponse struct {
	ID            string `json:"id"`
	CompletedAt   string `json:"completedAt"`
	DaysSinceLast *int   `json:"daysSinceLast"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetTask(id); err != nil {
		writeStoreError(w, err)
		return
	}

	records, err := s.store.History(id, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]historyResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, historyResponse{
			ID:            rec.ID,
			CompletedAt:   rec.CompletedAt.Format(time.RFC3339),
			DaysSinceLast: rec.DaysSinceLast,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type countsResponse struct {
	Overdue  int `json:"overdue"`
	Today    int `json:"today"`
	ThisWeek int `json:"thisWeek"`
	Upcoming int `json:"upcoming"`
	Total    int `json:"total"`
}

func (s *Server) handleTaskCounts(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var counts countsResponse
	now := s.now()
	for i := range tasks {
		t := &tasks[i]
		sch := schedule.Resolve(t.Anchor(), now, t.IntervalValue, t.IntervalUnit)
		switch sch.Urgency {
		case schedule.UrgencyOverdue:
			counts.Overdue++
		case schedule.UrgencyToday:
			counts.Today++
		case schedule.UrgencyThisWeek:
			counts.ThisWeek++
		case schedule.UrgencyUpcoming:
			counts.Upcoming++
		}
		counts.Total++
	}
	writeJSON(w, http.StatusOK, counts)
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
