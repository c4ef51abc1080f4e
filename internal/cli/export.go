package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/export"
	"github.com/mlasch/tend/internal/store"
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (defaults to ~/tend-export-<date>.<ext>)")
	rootCmd.AddCommand(exportCmd)
}

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks and their completion history",
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.ListTasks(true)
	if err != nil {
		return err
	}

	completions := make(map[string][]store.Completion, len(tasks))
	for i := range tasks {
		records, err := s.History(tasks[i].ID, 0)
		if err != nil {
			return err
		}
		completions[tasks[i].ID] = records
	}

	now := time.Now()
	path := exportOut
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, fmt.Sprintf("tend-export-%s.%s", now.Format("2006-01-02"), exportFormat))
	}

	if exportFormat == "csv" {
		err = export.ToCSV(tasks, completions, now, path)
	} else {
		err = export.ToJSON(tasks, completions, now, path)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}
