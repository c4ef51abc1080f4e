// Package schedule computes due dates and urgency buckets for recurring
// tasks. Every function here is pure and total: the same inputs always
// produce the same outputs, and nothing returns an error. Validation of
// interval values happens at the creation boundary (store, API, forms),
// not here.
//
// All consumers (kiosk, HTTP API, CLI) must derive schedule facts through
// this package so a task classifies identically everywhere.
package schedule

import (
	"fmt"
	"time"
)

// Unit is the recurrence period unit.
type Unit string

const (
	UnitDays   Unit = "days"
	UnitWeeks  Unit = "weeks"
	UnitMonths Unit = "months"
)

// ParseUnit converts a stored/user string into a Unit.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitDays, UnitWeeks, UnitMonths:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown interval unit %q", s)
}

// Urgency is the coarse priority bucket derived from days-until-due.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyToday    Urgency = "today"
	UrgencyThisWeek Urgency = "this-week"
	UrgencyUpcoming Urgency = "upcoming"
)

// Schedule is the derived, never-persisted view of a task's timing.
type Schedule struct {
	NextDue   time.Time
	DaysUntil int
	Urgency   Urgency
}

// NextDue adds value units to the anchor date. Days and weeks are fixed
// durations; months use calendar arithmetic with the day-of-month clamped
// to the target month's length (Jan 31 + 1 month lands on the last day of
// February, not early March).
func NextDue(anchor time.Time, value int, unit Unit) time.Time {
	switch unit {
	case UnitWeeks:
		return anchor.AddDate(0, 0, 7*value)
	case UnitMonths:
		return addMonths(anchor, value)
	default:
		return anchor.AddDate(0, 0, value)
	}
}

// addMonths is calendar-month addition with end-of-month clamping.
// time.Time.AddDate normalizes overflow (Jan 31 +1mo becomes Mar 2/3),
// which is the wrong behavior for recurring chores.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	// First day of the target month; Date normalizes month overflow.
	first := time.Date(y, m+time.Month(n), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysUntil returns the signed day difference between due and now, using
// date-only comparison. A task due later today is exactly 0 regardless of
// the current hour.
func DaysUntil(due, now time.Time) int {
	d := dateOnly(due)
	n := dateOnly(now)
	return int(d.Sub(n).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify maps a signed day offset onto an urgency bucket. Cut points are
// exact: -1/0, 0/1 and 7/8.
func Classify(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyToday
	case days <= 7:
		return UrgencyThisWeek
	default:
		return UrgencyUpcoming
	}
}

// Resolve computes the full derived schedule for a task anchored at anchor
// (last completion, or creation if never completed).
func Resolve(anchor, now time.Time, value int, unit Unit) Schedule {
	due := NextDue(anchor, value, unit)
	days := DaysUntil(due, now)
	return Schedule{
		NextDue:   due,
		DaysUntil: days,
		Urgency:   Classify(days),
	}
}
