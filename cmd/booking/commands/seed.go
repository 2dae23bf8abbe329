package commands

import (
	"context"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/database"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default dataset",
		Long:  "Write the seed document if the configured store holds none. With --force the stored document is replaced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runSeed(ctx, force)
		},
	}

	seedCmd.Flags().Bool("force", false, "Replace the stored dataset with the seed document")

	return seedCmd
}

func runSeed(ctx context.Context, force bool) error {
	cfg, log, loggerService, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	// Seeding never sends mail.
	cfg.Integration.ResendAPIKey = ""

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}
	defer srv.Shutdown(ctx)

	if cfg.Storage.Driver == config.StoragePostgres {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			return err
		}
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		return err
	}
	backend := repos.Dataset.Repository().Name()

	if force {
		if err := repos.Dataset.Reset(ctx); err != nil {
			return err
		}
		log.Info().Str("backend", backend).Msg("dataset replaced with seed document")
		return nil
	}

	seeded, err := repos.Dataset.EnsureInitialized(ctx)
	if err != nil {
		return err
	}
	logSeedResult(log, seeded, backend)
	return nil
}
