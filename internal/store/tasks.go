package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mlasch/tend/internal/schedule"
)

// CreateTask validates and inserts a new task. This is the creation
// boundary: the schedule package itself never sees invalid intervals.
func (s *Store) CreateTask(name, description string, value int, unit schedule.Unit) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if value < 1 {
		return nil, ErrInvalidInterval
	}
	if _, err := schedule.ParseUnit(string(unit)); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO tasks (id, name, description, interval_value, interval_unit, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, strings.TrimSpace(name), description, value, string(unit), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(id)
}

func (s *Store) GetTask(id string) (*Task, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, interval_value, interval_unit,
		        last_completed_at, archived, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// ListTasks returns tasks ordered by name. Archived tasks are hidden
// unless includeArchived is set.
func (s *Store) ListTasks(includeArchived bool) ([]Task, error) {
	query := `SELECT id, name, description, interval_value, interval_unit,
	                 last_completed_at, archived, created_at, updated_at
	          FROM tasks`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListActiveByDue returns non-archived tasks sorted by next due date,
// soonest first. The due date is derived, so the sort happens here rather
// than in SQL.
func (s *Store) ListActiveByDue() ([]Task, error) {
	tasks, err := s.ListTasks(false)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		di := schedule.NextDue(tasks[i].Anchor(), tasks[i].IntervalValue, tasks[i].IntervalUnit)
		dj := schedule.NextDue(tasks[j].Anchor(), tasks[j].IntervalValue, tasks[j].IntervalUnit)
		return di.Before(dj)
	})
	return tasks, nil
}

// UpdateTask replaces the mutable fields of a task. Nil pointers leave the
// stored value unchanged.
func (s *Store) UpdateTask(id string, name, description *string, value *int, unit *schedule.Unit) (*Task, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, ErrEmptyName
	}
	if value != nil && *value < 1 {
		return nil, ErrInvalidInterval
	}
	if unit != nil {
		if _, err := schedule.ParseUnit(string(*unit)); err != nil {
			return nil, err
		}
	}
	if _, err := s.GetTask(id); err != nil {
		return nil, err
	}

	var unitStr *string
	if unit != nil {
		u := string(*unit)
		unitStr = &u
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE tasks SET
			name           = COALESCE(?, name),
			description    = COALESCE(?, description),
			interval_value = COALESCE(?, interval_value),
			interval_unit  = COALESCE(?, interval_unit),
			updated_at     = ?
		 WHERE id = ?`,
		name, description, value, unitStr, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return s.GetTask(id)
}

// ArchiveTask soft-deletes a task: it disappears from active views but its
// completion history survives.
func (s *Store) ArchiveTask(id string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE tasks SET archived = 1, updated_at = ? WHERE id = ?`, now, id,
	)
	if err != nil {
		return fmt.Errorf("archive task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task; its completion records go with it via the
// foreign key cascade.
func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteTask appends a completion record at now and moves the task's
// scheduling anchor to now. DaysSinceLast is measured against the previous
// completion, if any.
func (s *Store) CompleteTask(id string, now time.Time) (*Task, error) {
	if _, err := s.GetTask(id); err != nil {
		return nil, err
	}

	var daysSince *int
	if last, err := s.LastCompletion(id); err != nil {
		return nil, err
	} else if last != nil {
		d := schedule.DaysUntil(now, last.CompletedAt)
		daysSince = &d
	}

	nowUTC := now.UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO completions (id, task_id, completed_at, days_since_last) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), id, nowUTC, daysSince,
	)
	if err != nil {
		return nil, fmt.Errorf("insert completion: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE tasks SET last_completed_at = ?, updated_at = ? WHERE id = ?`,
		nowUTC, nowUTC, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task anchor: %w", err)
	}
	return s.GetTask(id)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	t := &Task{}
	var unit, createdAt, updatedAt string
	var lastCompleted sql.NullString
	var archived int
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.IntervalValue, &unit,
		&lastCompleted, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.IntervalUnit = schedule.Unit(unit)
	t.Archived = archived == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if lastCompleted.Valid {
		lc, _ := time.Parse(time.RFC3339, lastCompleted.String)
		t.LastCompletedAt = &lc
	}
	return t, nil
}
