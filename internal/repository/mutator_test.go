package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/storeerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMutator(t *testing.T) (*Mutator, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	logger := zerolog.Nop()
	m := NewMutator(NewFileRepository(path), &logger, 0)

	_, err := m.EnsureInitialized(context.Background())
	require.NoError(t, err)
	return m, path
}

func TestMutator_Update(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMutator(t)

	err := m.Update(ctx, func(data *model.Dataset) error {
		data.BusinessData.Name = "Renamed"
		return nil
	})
	require.NoError(t, err)

	data, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", data.BusinessData.Name)
}

func TestMutator_UpdateErrorSkipsSave(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMutator(t)

	sentinel := storeerr.NewNotFound("services", "Service not found")
	err := m.Update(ctx, func(data *model.Dataset) error {
		data.Services = nil
		return sentinel
	})
	assert.Same(t, sentinel, err)

	data, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Services, 2)
}

func TestMutator_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMutator(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Update(ctx, func(data *model.Dataset) error {
				data.Appointments = append(data.Appointments, model.Appointment{ID: data.NextAppointmentID()})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := m.Load(ctx)
	require.NoError(t, err)
	require.Len(t, data.Appointments, writers)
	for i, a := range data.Appointments {
		assert.Equal(t, i+1, a.ID)
	}
}

func TestMutator_UnreadableDocument(t *testing.T) {
	ctx := context.Background()
	m, path := newTestMutator(t)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, err := m.Load(ctx)
	assert.Equal(t, storeerr.Unavailable, storeerr.ErrCode(err))

	called := false
	err = m.Update(ctx, func(*model.Dataset) error {
		called = true
		return nil
	})
	assert.Equal(t, storeerr.Unavailable, storeerr.ErrCode(err))
	assert.False(t, called)
}

func TestMutator_Reset(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMutator(t)

	require.NoError(t, m.Update(ctx, func(data *model.Dataset) error {
		data.Services = data.Services[:0]
		return nil
	}))
	require.NoError(t, m.Reset(ctx))

	data, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SeedDataset(), data)
}

type failingRepo struct {
	DatasetRepository
}

func (failingRepo) Save(context.Context, *model.Dataset) error {
	return errors.New("disk full")
}

func TestMutator_SaveFailure(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMutator(t)

	logger := zerolog.Nop()
	broken := NewMutator(failingRepo{DatasetRepository: m.Repository()}, &logger, 0)

	err := broken.Update(ctx, func(*model.Dataset) error { return nil })

	var serr *storeerr.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, storeerr.Unavailable, serr.Code)
	assert.ErrorContains(t, err, "disk full")
}
