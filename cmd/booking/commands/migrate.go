package commands

import (
	"context"
	"fmt"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/database"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Create or upgrade the table that holds the dataset when the postgres storage driver is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runMigration(ctx)
		},
	}
}

func runMigration(ctx context.Context) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if cfg.Storage.Driver != config.StoragePostgres {
		return fmt.Errorf("migrations apply to the %q storage driver only, configured driver is %q",
			config.StoragePostgres, cfg.Storage.Driver)
	}

	if err := database.Migrate(ctx, log, cfg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
