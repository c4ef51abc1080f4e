// Package cli implements the tend command-line interface using Cobra.
// Running tend with no subcommand starts the kiosk UI; subcommands cover
// task management, the HTTP API server, stats and export.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "tend",
	Short: "tend — recurring task tracker",
	Long: `tend keeps track of recurring chores: water the plants every 3 days,
descale the kettle every 2 months. Completing a task reschedules it from
today.

Without a subcommand, tend starts the kiosk UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runKiosk,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runKiosk(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(s, cfg.Kiosk.FeedbackDelay())
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
