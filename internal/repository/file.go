package repository

import (
	"context"
	"os"
	"path/filepath"

	"github.com/deppfellow/booking/internal/model"
	"github.com/pkg/errors"
)

// FileRepository keeps the dataset in a JSON file on local disk.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Name() string {
	return "file"
}

// Path is the location of the data file.
func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) Load(ctx context.Context) (*model.Dataset, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDocument
		}
		return nil, errors.Wrapf(err, "read %s", r.path)
	}
	return decodeDataset(raw)
}

// Save writes to a temporary file next to the target and renames it into
// place, so a reader sees either the old document or the new one.
func (r *FileRepository) Save(ctx context.Context, data *model.Dataset) error {
	raw, err := encodeDataset(data)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", r.path)
	}

	return nil
}

func (r *FileRepository) EnsureInitialized(ctx context.Context) (bool, error) {
	if _, err := os.Stat(r.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "stat %s", r.path)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, errors.Wrapf(err, "create %s", dir)
		}
	}

	if err := r.Save(ctx, model.SeedDataset()); err != nil {
		return false, err
	}
	return true, nil
}

// Ping verifies that the data file exists and is readable.
func (r *FileRepository) Ping(ctx context.Context) error {
	f, err := os.Open(r.path)
	if err != nil {
		return errors.Wrapf(err, "open %s", r.path)
	}
	return f.Close()
}
