package store

import (
	"database/sql"
	"fmt"
	"time"
)

// History returns completion records for a task, newest first. A limit of
// zero or less returns the full history.
func (s *Store) History(taskID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.Query(
		`SELECT id, task_id, completed_at, days_since_last
		 FROM completions
		 WHERE task_id = ?
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		taskID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var records []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *c)
	}
	return records, rows.Err()
}

// LastCompletion returns the most recent completion for a task, or nil if
// the task has never been completed.
func (s *Store) LastCompletion(taskID string) (*Completion, error) {
	row := s.db.QueryRow(
		`SELECT id, task_id, completed_at, days_since_last
		 FROM completions
		 WHERE task_id = ?
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		taskID,
	)
	c, err := scanCompletion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last completion: %w", err)
	}
	return c, nil
}

// CompletionsPerDay tallies completions per calendar day in [from, to),
// across all tasks. Days with no completions are absent from the result.
func (s *Store) CompletionsPerDay(from, to time.Time) ([]DayCount, error) {
	rows, err := s.db.Query(
		`SELECT substr(completed_at, 1, 10) AS day, COUNT(*)
		 FROM completions
		 WHERE completed_at >= ? AND completed_at < ?
		 GROUP BY day
		 ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("completions per day: %w", err)
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func scanCompletion(row scanner) (*Completion, error) {
	c := &Completion{}
	var completedAt string
	var daysSince sql.NullInt64
	if err := row.Scan(&c.ID, &c.TaskID, &completedAt, &daysSince); err != nil {
		return nil, err
	}
	c.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
	if daysSince.Valid {
		d := int(daysSince.Int64)
		c.DaysSinceLast = &d
	}
	return c, nil
}
