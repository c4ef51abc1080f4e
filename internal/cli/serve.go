package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mlasch/tend/internal/api"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tend HTTP API server",
	Long:  `Start the JSON API used by the web UI and remote clients.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	// Override config from flags
	if serveHost != "" {
		cfg.API.Host = serveHost
	}
	if servePort > 0 {
		cfg.API.Port = servePort
	}

	srv := api.NewServer(s)
	fmt.Printf("tend API listening on %s\n", cfg.API.Addr())
	return http.ListenAndServe(cfg.API.Addr(), srv.Handler())
}
