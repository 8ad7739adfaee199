package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/mma_accounts/internal/platform/config"
	"github.com/SscSPs/mma_accounts/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.MigrateUp
			if len(args) > 0 {
				direction = database.MigrationDirection(args[0])
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger := newLogger(cfg.LogLevel)
			return database.Migrate(logger, cfg.DatabaseURL, cfg.MigrationsPath, direction, steps)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply, 0 applies all")

	return cmd
}
