package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/schedule"
)

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "Task name (skips the form when set)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Task description")
	addCmd.Flags().IntVar(&addValue, "every", 0, "Interval value, e.g. 3 for every 3 days")
	addCmd.Flags().StringVar(&addUnit, "unit", "days", "Interval unit: days, weeks or months")
	rootCmd.AddCommand(addCmd)
}

var (
	addName        string
	addDescription string
	addValue       int
	addUnit        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring task",
	Long:  `Add a recurring task interactively, or with flags for scripting.`,
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	name := addName
	description := addDescription
	value := addValue
	unit := addUnit

	if name == "" {
		valueStr := "1"
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
		value, _ = strconv.Atoi(strings.TrimSpace(valueStr))
	}

	task, err := s.CreateTask(name, description, value, schedule.Unit(unit))
	if err != nil {
		return err
	}

	fmt.Printf("Added %q — %s\n", task.Name, schedule.FormatInterval(task.IntervalValue, task.IntervalUnit))
	return nil
}
