package cli

import (
	"fmt"

	"github.com/mlasch/tend/internal/config"
	"github.com/mlasch/tend/internal/store"
)

// openStore loads the config and opens the task database, creating it on
// first run.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	s, err := store.New(cfg.Database.Path)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}
