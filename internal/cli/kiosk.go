package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(kioskCmd)
}

// kioskCmd is the explicit spelling of the default behavior, for init
// systems that prefer a named subcommand over bare `tend`.
var kioskCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Start the kiosk UI (default)",
	RunE:  runKiosk,
}
