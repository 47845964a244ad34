package cmd

import (
	"fmt"

	"github.com/deppfellow/go-profile/internal/config"
	"github.com/deppfellow/go-profile/internal/database"
	"github.com/deppfellow/go-profile/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			log := logger.NewLogger(cfg.Observability)
			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
