package repository

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// datasetRowID is the primary key of the only row in booking_dataset.
const datasetRowID = 1

// PostgresRepository stores the dataset as a jsonb column in a single row.
// The table is created by the migrations in internal/database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Name() string {
	return "postgres"
}

func (r *PostgresRepository) Load(ctx context.Context) (*model.Dataset, error) {
	stmt := `
		SELECT
			document
		FROM
			booking_dataset
		WHERE
			id = @id
	`

	var raw []byte
	err := r.pool.QueryRow(ctx, stmt, pgx.NamedArgs{"id": datasetRowID}).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, errors.Wrap(err, "select dataset")
	}

	return decodeDataset(raw)
}

func (r *PostgresRepository) Save(ctx context.Context, data *model.Dataset) error {
	raw, err := encodeDataset(data)
	if err != nil {
		return err
	}

	stmt := `
		INSERT INTO
			booking_dataset (id, document)
		VALUES
			(@id, @document)
		ON CONFLICT (id) DO UPDATE
		SET
			document = EXCLUDED.document,
			updated_at = now()
	`

	_, err = r.pool.Exec(ctx, stmt, pgx.NamedArgs{
		"id":       datasetRowID,
		"document": string(raw),
	})
	if err != nil {
		return errors.Wrap(err, "upsert dataset")
	}
	return nil
}

func (r *PostgresRepository) EnsureInitialized(ctx context.Context) (bool, error) {
	raw, err := encodeDataset(model.SeedDataset())
	if err != nil {
		return false, err
	}

	stmt := `
		INSERT INTO
			booking_dataset (id, document)
		VALUES
			(@id, @document)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, stmt, pgx.NamedArgs{
		"id":       datasetRowID,
		"document": string(raw),
	})
	if err != nil {
		return false, errors.Wrap(err, "seed dataset")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
