package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/booking/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Every SQL file under migrations/ is compiled into the binary, so `booking
// migrate` and `booking serve` need nothing on disk besides the config.
//
//go:embed migrations/*.sql
var migrations embed.FS

const (
	// versionTable is where tern records the applied migration number.
	versionTable = "schema_version"

	// datasetTable is the table the migrations create; it holds the one
	// row with the dataset document.
	datasetTable = "booking_dataset"
)

// migrationSource returns the migrations directory as the root of an fs.FS,
// which is the layout tern's LoadMigrations expects.
func migrationSource() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate brings the booking_dataset schema up to date.
//
// It opens a single connection (not the pool) for the duration of the run,
// applies every pending migration in filename order and logs each one as
// it starts. Running it against an up-to-date schema is a no-op.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for %s migrations: %w", datasetTable, err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := migrationSource()
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	m.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Info().
			Str("table", datasetTable).
			Int32("sequence", sequence).
			Str("migration", name).
			Str("direction", direction).
			Msg("applying migration")
	}

	// `from` is the number of migrations already applied.
	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating %s: %w", datasetTable, err)
	}

	to := int32(len(m.Migrations))
	if from == to {
		logger.Info().
			Str("table", datasetTable).
			Int32("version", to).
			Msg("dataset schema up to date")
	} else {
		logger.Info().
			Str("table", datasetTable).
			Int32("from", from).
			Int32("to", to).
			Msg("migrated dataset schema")
	}
	return nil
}
