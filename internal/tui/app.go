// Package tui renders the kiosk on a terminal. It drives the same
// navigation machine as the device front end: rotation, short press and
// long press are mapped onto arrow keys, enter and esc, and every
// asynchronous effect the machine requests runs as a Bubble Tea command
// against the store.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlasch/tend/internal/kiosk"
	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

const historyLimit = 20

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	machine *kiosk.Machine

	feedbackDelay time.Duration
	width         int
	height        int

	help help.Model
	err  error
}

// NewApp creates the kiosk UI over the given store. feedbackDelay controls
// how long transient messages stay on screen; zero selects the default.
func NewApp(s *store.Store, feedbackDelay time.Duration) App {
	if feedbackDelay <= 0 {
		feedbackDelay = kiosk.FeedbackDelay
	}
	h := help.New()
	h.ShowAll = false

	return App{
		store:         s,
		machine:       kiosk.New(),
		feedbackDelay: feedbackDelay,
		help:          h,
	}
}

type tasksMsg struct {
	tasks []kiosk.Task
	err   error
}

type historyMsg struct {
	entries []kiosk.HistoryEntry
	err     error
}

type completeDoneMsg struct{ err error }
type deleteDoneMsg struct{ err error }
type timeoutLoadedMsg struct{ enabled bool }
type timeoutSavedMsg struct{ err error }
type clearFeedbackMsg struct{ gen int }

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadTasks(), a.loadScreenTimeout())
}

func (a App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := a.store.ListActiveByDue()
		if err != nil {
			return tasksMsg{err: err}
		}

		now := time.Now()
		view := make([]kiosk.Task, 0, len(tasks))
		for i := range tasks {
			t := &tasks[i]
			sch := schedule.Resolve(t.Anchor(), now, t.IntervalValue, t.IntervalUnit)
			view = append(view, kiosk.Task{
				ID:        t.ID,
				Name:      t.Name,
				DaysUntil: sch.DaysUntil,
				Urgency:   sch.Urgency,
				DueLabel:  schedule.FormatRemaining(sch.DaysUntil),
			})
		}
		return tasksMsg{tasks: view}
	}
}

func (a App) loadScreenTimeout() tea.Cmd {
	return func() tea.Msg {
		return timeoutLoadedMsg{enabled: a.store.ScreenTimeoutEnabled()}
	}
}

// runEffect executes an effect requested by the machine as a command. The
// resulting message feeds the outcome back through the Resolve* methods.
func (a App) runEffect(eff kiosk.Effect) tea.Cmd {
	switch e := eff.(type) {
	case kiosk.CompleteTask:
		return func() tea.Msg {
			_, err := a.store.CompleteTask(e.TaskID, time.Now())
			return completeDoneMsg{err: err}
		}
	case kiosk.DeleteTask:
		return func() tea.Msg {
			return deleteDoneMsg{err: a.store.DeleteTask(e.TaskID)}
		}
	case kiosk.LoadHistory:
		return func() tea.Msg {
			records, err := a.store.History(e.TaskID, historyLimit)
			if err != nil {
				return historyMsg{err: err}
			}
			entries := make([]kiosk.HistoryEntry, 0, len(records))
			for _, r := range records {
				entries = append(entries, kiosk.HistoryEntry{
					CompletedAt:   r.CompletedAt,
					DaysSinceLast: r.DaysSinceLast,
				})
			}
			return historyMsg{entries: entries}
		}
	case kiosk.SaveScreenTimeout:
		return func() tea.Msg {
			return timeoutSavedMsg{err: a.store.SetScreenTimeoutEnabled(e.Enabled)}
		}
	}
	return nil
}

// clearFeedbackCmd schedules the feedback clear carrying the generation
// token, so a newer feedback message invalidates this timer.
func (a App) clearFeedbackCmd(gen int) tea.Cmd {
	return tea.Tick(a.feedbackDelay, func(time.Time) tea.Msg {
		return clearFeedbackMsg{gen: gen}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Up):
			a.machine.RotateUp()
		case key.Matches(msg, keys.Down):
			a.machine.RotateDown()
		case key.Matches(msg, keys.Select):
			if eff := a.machine.Select(); eff != nil {
				return a, a.runEffect(eff)
			}
		case key.Matches(msg, keys.Back):
			a.machine.Back()
		}
		return a, nil

	case tasksMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.machine.SetTasks(msg.tasks)
		return a, nil

	case historyMsg:
		if msg.err != nil {
			gen := a.machine.ResolveHistoryError()
			return a, a.clearFeedbackCmd(gen)
		}
		a.machine.SetHistory(msg.entries)
		return a, nil

	case completeDoneMsg:
		gen := a.machine.ResolveComplete(msg.err)
		return a, tea.Batch(a.clearFeedbackCmd(gen), a.loadTasks())

	case deleteDoneMsg:
		gen := a.machine.ResolveDelete(msg.err)
		return a, tea.Batch(a.clearFeedbackCmd(gen), a.loadTasks())

	case timeoutLoadedMsg:
		a.machine.SetScreenTimeout(msg.enabled)
		return a, nil

	case timeoutSavedMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, nil

	case clearFeedbackMsg:
		a.machine.ClearFeedback(msg.gen)
		return a, nil
	}

	return a, nil
}
