package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a task's name, description or interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := findTaskByName(s, args[0])
	if err != nil {
		return err
	}

	name := task.Name
	description := task.Description
	valueStr := strconv.Itoa(task.IntervalValue)
	unit := string(task.IntervalUnit)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description (optional)").Value(&description),
			huh.NewInput().Title("Repeat every").Value(&valueStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of at least 1")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Unit").
				Options(
					huh.NewOption("Days", "days"),
					huh.NewOption("Weeks", "weeks"),
					huh.NewOption("Months", "months"),
				).
				Value(&unit),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	value, _ := strconv.Atoi(strings.TrimSpace(valueStr))
	u := schedule.Unit(unit)
	updated, err := s.UpdateTask(task.ID, &name, &description, &value, &u)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %q — %s\n", updated.Name, schedule.FormatInterval(updated.IntervalValue, updated.IntervalUnit))
	return nil
}

// findTaskByName resolves a task by exact name, case-insensitively.
func findTaskByName(s *store.Store, name string) (*store.Task, error) {
	tasks, err := s.ListTasks(true)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if strings.EqualFold(tasks[i].Name, name) {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("no task named %q", name)
}
