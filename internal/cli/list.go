package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/schedule"
	"github.com/mlasch/tend/internal/store"
)

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Include archived tasks")
	rootCmd.AddCommand(listCmd)
}

var listArchived bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by due date",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var tasks []store.Task
	if listArchived {
		all, err := s.ListTasks(true)
		if err != nil {
			return err
		}
		tasks = all
	} else {
		due, err := s.ListActiveByDue()
		if err != nil {
			return err
		}
		tasks = due
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks. Run 'tend add' to create one.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINTERVAL\tNEXT DUE\tSTATUS")
	for i := range tasks {
		t := &tasks[i]
		sch := schedule.Resolve(t.Anchor(), now, t.IntervalValue, t.IntervalUnit)
		status := schedule.FormatRemaining(sch.DaysUntil)
		if t.Archived {
			status = "archived"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			t.Name,
			schedule.FormatInterval(t.IntervalValue, t.IntervalUnit),
			sch.NextDue.Format("2006-01-02"),
			status,
		)
	}
	return w.Flush()
}
