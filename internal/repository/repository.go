// Package repository persists the dataset document.
//
// Every backend stores the whole dataset as one JSON document and reads or
// writes it as a unit. The service layer never talks to a backend directly;
// it goes through the Mutator held in Repositories.
package repository

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/pkg/errors"
)

// ErrNoDocument is returned by Load when the backend holds no dataset yet.
var ErrNoDocument = errors.New("dataset document does not exist")

// DatasetRepository is a storage backend for the dataset document.
type DatasetRepository interface {
	// Load reads and decodes the whole document.
	Load(ctx context.Context) (*model.Dataset, error)

	// Save encodes the dataset and overwrites the stored document.
	Save(ctx context.Context, data *model.Dataset) error

	// EnsureInitialized writes the seed document when none exists and
	// reports whether it did.
	EnsureInitialized(ctx context.Context) (bool, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs and health reports.
	Name() string
}
