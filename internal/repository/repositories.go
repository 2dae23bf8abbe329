package repository

import (
	"fmt"

	"github.com/deppfellow/booking/internal/config"
	"github.com/deppfellow/booking/internal/server"
)

// Repositories is the container handed to the service layer.
type Repositories struct {
	Dataset *Mutator
}

// NewRepositories selects the dataset backend from storage.driver.
// The postgres and redis drivers need s.DB and s.Redis respectively.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var repo DatasetRepository

	switch s.Config.Storage.Driver {
	case config.StorageFile:
		repo = NewFileRepository(s.Config.Storage.Path)
	case config.StoragePostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", config.StoragePostgres)
		}
		repo = NewPostgresRepository(s.DB.Pool)
	case config.StorageRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("storage driver %q requires a redis client", config.StorageRedis)
		}
		repo = NewRedisRepository(s.Redis, s.Config.Storage.RedisKey)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Config.Storage.Driver)
	}

	slow := s.Config.Observability.Logging.SlowQueryThreshold

	return &Repositories{
		Dataset: NewMutator(repo, s.Logger, slow),
	}, nil
}
