package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlasch/tend/internal/kiosk"
)

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var content string
	switch a.machine.Screen() {
	case kiosk.ScreenTaskList:
		content = a.viewTaskList()
	case kiosk.ScreenTaskActions:
		content = a.viewTaskActions()
	case kiosk.ScreenDeleteConfirm:
		content = a.viewDeleteConfirm()
	case kiosk.ScreenCompleting:
		content = a.viewCompleting()
	case kiosk.ScreenTaskHistory:
		content = a.viewTaskHistory()
	case kiosk.ScreenSettings:
		content = a.viewSettings()
	}

	header := headerStyle.Render(titleStyle.Render("tend"))
	footer := a.renderFooter()

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderFooter() string {
	left := footerStyle.Render(a.help.View(keys))

	right := ""
	if fb := a.machine.Feedback(); fb != "" {
		style := successStyle
		if fb == "Error" {
			style = errorStyle
		}
		right = style.Render(fb + " ")
	} else if a.err != nil {
		right = errorStyle.Render(a.err.Error() + " ")
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

// viewTaskList renders one task at a time, the way the device's small
// display does, with a position indicator instead of a scrolling list.
func (a App) viewTaskList() string {
	task, ok := a.machine.CurrentTask()
	if !ok {
		return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("No tasks"),
			"",
			mutedStyle.Render("Add tasks with `tend add`."),
		))
	}

	position := fmt.Sprintf("%d/%d", a.machine.TaskIndex()+1, len(a.machine.Tasks()))

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(task.Name),
		urgencyStyle(task.Urgency).Render(task.DueLabel),
		"",
		mutedStyle.Render(position),
	))
}

func (a App) viewTaskActions() string {
	task, _ := a.machine.CurrentTask()

	rows := []string{titleStyle.Render(task.Name), ""}
	for i := kiosk.ActionDone; i <= kiosk.ActionBack; i++ {
		rows = append(rows, a.menuItem(i.String(), i == a.machine.ActionIndex()))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) viewDeleteConfirm() string {
	task, _ := a.machine.CurrentTask()

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Delete "+task.Name+"?"),
		"",
		a.menuItem("No", a.machine.Confirm() == kiosk.ConfirmNo),
		a.menuItem("Yes", a.machine.Confirm() == kiosk.ConfirmYes),
	))
}

func (a App) viewCompleting() string {
	if fb := a.machine.Feedback(); fb != "" {
		return panelStyle.Render(successStyle.Render(fb))
	}
	return panelStyle.Render(mutedStyle.Render("Saving..."))
}

func (a App) viewTaskHistory() string {
	task, _ := a.machine.CurrentTask()
	rows := []string{titleStyle.Render(task.Name + " history"), ""}

	entries := a.machine.History()
	if entries == nil {
		rows = append(rows, mutedStyle.Render("Loading..."))
	} else if len(entries) == 0 {
		rows = append(rows, mutedStyle.Render("Never completed"))
	} else {
		for i, e := range entries {
			line := e.CompletedAt.Format("Jan 02, 2006")
			if e.DaysSinceLast != nil {
				line += fmt.Sprintf(" (+%d days)", *e.DaysSinceLast)
			}
			rows = append(rows, a.menuItem(line, i == a.machine.HistoryIndex()))
		}
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) viewSettings() string {
	timeout := "Screen timeout: Off"
	if a.machine.ScreenTimeout() {
		timeout = "Screen timeout: On"
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Settings"),
		"",
		a.menuItem(timeout, a.machine.SettingIndex() == kiosk.SettingScreenTimeout),
		a.menuItem("Back", a.machine.SettingIndex() == kiosk.SettingBack),
	))
}

func (a App) menuItem(label string, selected bool) string {
	if selected {
		return selectedItemStyle.Render("> " + label)
	}
	return normalItemStyle.Render("  " + label)
}
