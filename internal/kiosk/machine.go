// Package kiosk implements the navigation state machine for the
// single-encoder front end. One rotary encoder with a push button is the
// entire input device: rotate up, rotate down, short press (select) and
// long press (back) drive a six-screen navigation graph.
//
// The machine is a plain value with no goroutines and no timers of its
// own. Input handlers mutate the machine and may return an Effect, a
// request for the surrounding loop to run an asynchronous operation
// (complete a task, delete a task, load history, persist a setting). The
// loop reports outcomes back through the Resolve* methods. This keeps the
// machine single-threaded and fully testable without a device, a store or
// a network.
package kiosk

import (
	"time"

	"github.com/mlasch/tend/internal/schedule"
)

// FeedbackDelay is how long a transient feedback message ("Done",
// "Deleted", "Error") stays on screen before the machine returns to the
// task list.
const FeedbackDelay = 1500 * time.Millisecond

// Screen identifies the active view.
type Screen int

const (
	ScreenTaskList Screen = iota
	ScreenTaskActions
	ScreenDeleteConfirm
	ScreenCompleting
	ScreenTaskHistory
	ScreenSettings
)

func (s Screen) String() string {
	switch s {
	case ScreenTaskList:
		return "task-list"
	case ScreenTaskActions:
		return "task-actions"
	case ScreenDeleteConfirm:
		return "delete-confirm"
	case ScreenCompleting:
		return "completing"
	case ScreenTaskHistory:
		return "task-history"
	case ScreenSettings:
		return "settings"
	}
	return "unknown"
}

// Action is an entry in the per-task action menu.
type Action int

const (
	ActionDone Action = iota
	ActionHistory
	ActionDelete
	ActionBack

	actionCount = 4
)

func (a Action) String() string {
	switch a {
	case ActionDone:
		return "Done"
	case ActionHistory:
		return "History"
	case ActionDelete:
		return "Delete"
	case ActionBack:
		return "Back"
	}
	return "unknown"
}

// Confirm is the delete confirmation choice. The zero value is ConfirmNo:
// entering the confirmation screen must never default to the destructive
// option.
type Confirm int

const (
	ConfirmNo Confirm = iota
	ConfirmYes

	confirmCount = 2
)

// Setting is an entry in the settings menu.
type Setting int

const (
	SettingScreenTimeout Setting = iota
	SettingBack

	settingCount = 2
)

// Task is the schedule-resolved view of a task the kiosk renders. The
// machine never owns task data; it is a cursor over whatever list the
// surrounding application last supplied.
type Task struct {
	ID        string
	Name      string
	DaysUntil int
	Urgency   schedule.Urgency
	DueLabel  string
}

// HistoryEntry is one completion record for the history view.
type HistoryEntry struct {
	CompletedAt   time.Time
	DaysSinceLast *int
}

// Machine is the kiosk navigation state machine. Not safe for concurrent
// use; it is designed to be driven from a single event loop.
type Machine struct {
	screen Screen

	tasks     []Task
	taskIndex int

	actionIndex  Action
	confirm      Confirm
	history      []HistoryEntry
	historyIndex int
	settingIndex Setting

	screenTimeout bool
	loading       bool

	feedback    string
	feedbackGen int
}

// New returns a machine on the task list with an empty task set. The
// screen timeout defaults to enabled, the safe default when the settings
// store is unreachable.
func New() *Machine {
	return &Machine{screenTimeout: true}
}

// --- Read accessors ---

func (m *Machine) Screen() Screen          { return m.screen }
func (m *Machine) Tasks() []Task           { return m.tasks }
func (m *Machine) TaskIndex() int          { return m.taskIndex }
func (m *Machine) ActionIndex() Action     { return m.actionIndex }
func (m *Machine) Confirm() Confirm        { return m.confirm }
func (m *Machine) History() []HistoryEntry { return m.history }
func (m *Machine) HistoryIndex() int       { return m.historyIndex }
func (m *Machine) SettingIndex() Setting   { return m.settingIndex }
func (m *Machine) ScreenTimeout() bool     { return m.screenTimeout }
func (m *Machine) Loading() bool           { return m.loading }
func (m *Machine) Feedback() string        { return m.feedback }

// CurrentTask returns the highlighted task, if any.
func (m *Machine) CurrentTask() (Task, bool) {
	if m.taskIndex >= 0 && m.taskIndex < len(m.tasks) {
		return m.tasks[m.taskIndex], true
	}
	return Task{}, false
}

// --- Data feeds ---

// SetTasks replaces the backing task list and clamps the cursor so the
// machine never holds an index past the end of the list. An empty list is
// a valid task-list state where select and rotation are no-ops.
func (m *Machine) SetTasks(tasks []Task) {
	m.tasks = tasks
	if m.taskIndex >= len(tasks) {
		m.taskIndex = len(tasks) - 1
	}
	if m.taskIndex < 0 {
		m.taskIndex = 0
	}
}

// SetHistory supplies the lazily-loaded completion history for the
// current task. The history cursor bound updates with it.
func (m *Machine) SetHistory(entries []HistoryEntry) {
	m.history = entries
	if m.historyIndex >= len(entries) {
		m.historyIndex = len(entries) - 1
	}
	if m.historyIndex < 0 {
		m.historyIndex = 0
	}
}

// SetScreenTimeout seeds the toggle from the device settings store.
func (m *Machine) SetScreenTimeout(enabled bool) {
	m.screenTimeout = enabled
}

// --- Input handlers ---

// RotateUp moves the active cursor backward by one, wrapping past the
// start. Rotation is ignored while an operation is in flight.
func (m *Machine) RotateUp() { m.rotate(-1) }

// RotateDown moves the active cursor forward by one, wrapping past the
// end. Rotation is ignored while an operation is in flight.
func (m *Machine) RotateDown() { m.rotate(1) }

func (m *Machine) rotate(delta int) {
	if m.loading {
		return
	}
	switch m.screen {
	case ScreenTaskList:
		if len(m.tasks) > 0 {
			m.taskIndex = wrap(m.taskIndex, delta, len(m.tasks))
		}
	case ScreenTaskActions:
		m.actionIndex = Action(wrap(int(m.actionIndex), delta, actionCount))
	case ScreenDeleteConfirm:
		m.confirm = Confirm(wrap(int(m.confirm), delta, confirmCount))
	case ScreenTaskHistory:
		if len(m.history) > 0 {
			m.historyIndex = wrap(m.historyIndex, delta, len(m.history))
		}
	case ScreenSettings:
		m.settingIndex = Setting(wrap(int(m.settingIndex), delta, settingCount))
	}
}

func wrap(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	i = (i + delta) % n
	if i < 0 {
		i += n
	}
	return i
}

// Select handles a short press. It may return an Effect for the
// surrounding loop to execute. While an operation is in flight Select is
// a strict no-op, which also prevents double submission.
func (m *Machine) Select() Effect {
	if m.loading {
		return nil
	}

	switch m.screen {
	case ScreenTaskList:
		if len(m.tasks) == 0 {
			return nil
		}
		m.actionIndex = ActionDone
		m.screen = ScreenTaskActions

	case ScreenTaskActions:
		task, ok := m.CurrentTask()
		if !ok {
			m.screen = ScreenTaskList
			return nil
		}
		switch m.actionIndex {
		case ActionDone:
			m.screen = ScreenCompleting
			m.loading = true
			return CompleteTask{TaskID: task.ID}
		case ActionHistory:
			m.history = nil
			m.historyIndex = 0
			m.screen = ScreenTaskHistory
			return LoadHistory{TaskID: task.ID}
		case ActionDelete:
			m.confirm = ConfirmNo
			m.screen = ScreenDeleteConfirm
		case ActionBack:
			m.screen = ScreenTaskList
		}

	case ScreenDeleteConfirm:
		if m.confirm == ConfirmYes {
			task, ok := m.CurrentTask()
			if !ok {
				m.screen = ScreenTaskList
				return nil
			}
			m.loading = true
			return DeleteTask{TaskID: task.ID}
		}
		m.screen = ScreenTaskActions

	case ScreenTaskHistory:
		// History is a read-only leaf; press goes back.
		m.screen = ScreenTaskActions

	case ScreenSettings:
		switch m.settingIndex {
		case SettingScreenTimeout:
			m.screenTimeout = !m.screenTimeout
			return SaveScreenTimeout{Enabled: m.screenTimeout}
		case SettingBack:
			m.screen = ScreenTaskList
		}

	case ScreenCompleting:
		// Unreachable while loading gates Select; kept for totality.
	}
	return nil
}

// Back handles a long press. On the task list it opens settings, the
// only way to reach them. In-flight operations cannot be cancelled.
func (m *Machine) Back() {
	if m.loading {
		return
	}
	switch m.screen {
	case ScreenTaskList:
		m.settingIndex = SettingScreenTimeout
		m.screen = ScreenSettings
	case ScreenTaskActions:
		m.screen = ScreenTaskList
	case ScreenDeleteConfirm:
		m.screen = ScreenTaskActions
	case ScreenTaskHistory:
		m.screen = ScreenTaskActions
	case ScreenSettings:
		m.screen = ScreenTaskList
	case ScreenCompleting:
		// No-op: the operation runs to completion or failure.
	}
}

// --- Async outcomes ---

// ResolveComplete reports the outcome of a CompleteTask effect. On
// success the machine lingers on the completing screen showing "Done"
// until the feedback timer fires; on failure it returns to the task list
// immediately with "Error". The returned token identifies the scheduled
// feedback clear (see ClearFeedback).
func (m *Machine) ResolveComplete(err error) int {
	m.loading = false
	if err != nil {
		m.feedback = "Error"
		m.screen = ScreenTaskList
	} else {
		m.feedback = "Done"
	}
	return m.nextFeedbackGen()
}

// ResolveDelete reports the outcome of a DeleteTask effect. On success
// the cursor is pulled back one slot if the deleted task was the last in
// the list, so it lands on a valid remaining task once the list refreshes.
func (m *Machine) ResolveDelete(err error) int {
	m.loading = false
	if err != nil {
		m.feedback = "Error"
	} else {
		m.feedback = "Deleted"
		if len(m.tasks) > 0 && m.taskIndex == len(m.tasks)-1 && m.taskIndex > 0 {
			m.taskIndex--
		}
	}
	m.screen = ScreenTaskList
	return m.nextFeedbackGen()
}

// ResolveHistoryError reports a failed LoadHistory effect. The history
// screen is abandoned for the action menu with an "Error" message.
func (m *Machine) ResolveHistoryError() int {
	m.feedback = "Error"
	m.screen = ScreenTaskActions
	return m.nextFeedbackGen()
}

// nextFeedbackGen advances the feedback generation. Each feedback-bearing
// transition replaces any previously scheduled clear rather than stacking
// a second one: the stale timer's token no longer matches.
func (m *Machine) nextFeedbackGen() int {
	m.feedbackGen++
	return m.feedbackGen
}

// ClearFeedback clears the transient message and forces a return to the
// task list. Calls with a stale token are ignored.
func (m *Machine) ClearFeedback(gen int) {
	if gen != m.feedbackGen {
		return
	}
	m.feedback = ""
	m.screen = ScreenTaskList
}
