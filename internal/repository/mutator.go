package repository

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/storeerr"
	"github.com/rs/zerolog"
)

// Mutator serializes read-modify-write cycles on the dataset within this
// process. Processes sharing one document are not coordinated; the last
// Save wins.
type Mutator struct {
	repo   DatasetRepository
	logger *zerolog.Logger
	slow   time.Duration

	mu sync.Mutex
}

// NewMutator wraps repo. Round trips slower than slow are logged as warnings;
// zero disables that.
func NewMutator(repo DatasetRepository, logger *zerolog.Logger, slow time.Duration) *Mutator {
	return &Mutator{repo: repo, logger: logger, slow: slow}
}

// Repository returns the wrapped backend.
func (m *Mutator) Repository() DatasetRepository {
	return m.repo
}

// Load returns a fresh copy of the dataset. It does not take the lock.
func (m *Mutator) Load(ctx context.Context) (*model.Dataset, error) {
	start := time.Now()
	data, err := m.repo.Load(ctx)
	m.observe("load", start)
	if err != nil {
		return nil, storeerr.NewUnavailable(err, "Failed to read data")
	}
	return data, nil
}

// Update loads the dataset, applies fn and saves the result, holding the
// lock for the whole cycle. When fn returns an error nothing is written and
// the error is returned unchanged.
func (m *Mutator) Update(ctx context.Context, fn func(data *model.Dataset) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	start := time.Now()
	err = m.repo.Save(ctx, data)
	m.observe("save", start)
	if err != nil {
		return storeerr.NewUnavailable(err, "Failed to write data")
	}
	return nil
}

// EnsureInitialized seeds the backend if it holds no document.
func (m *Mutator) EnsureInitialized(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.repo.EnsureInitialized(ctx)
}

// Reset overwrites the stored document with the seed dataset.
func (m *Mutator) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Save(ctx, model.SeedDataset()); err != nil {
		return storeerr.NewUnavailable(err, "Failed to write data")
	}
	return nil
}

func (m *Mutator) observe(op string, start time.Time) {
	if m.slow <= 0 || m.logger == nil {
		return
	}
	if elapsed := time.Since(start); elapsed > m.slow {
		m.logger.Warn().
			Str("backend", m.repo.Name()).
			Str("op", op).
			Dur("duration", elapsed).
			Msg("slow dataset round trip")
	}
}
