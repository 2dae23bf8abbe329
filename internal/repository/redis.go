package repository

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the dataset under a single key.
type RedisRepository struct {
	client *redis.Client
	key    string
}

func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	return &RedisRepository{client: client, key: key}
}

func (r *RedisRepository) Name() string {
	return "redis"
}

func (r *RedisRepository) Load(ctx context.Context) (*model.Dataset, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoDocument
		}
		return nil, errors.Wrapf(err, "get %s", r.key)
	}
	return decodeDataset(raw)
}

func (r *RedisRepository) Save(ctx context.Context, data *model.Dataset) error {
	raw, err := encodeDataset(data)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return errors.Wrapf(err, "set %s", r.key)
	}
	return nil
}

func (r *RedisRepository) EnsureInitialized(ctx context.Context) (bool, error) {
	raw, err := encodeDataset(model.SeedDataset())
	if err != nil {
		return false, err
	}

	created, err := r.client.SetNX(ctx, r.key, raw, 0).Result()
	if err != nil {
		return false, errors.Wrapf(err, "seed %s", r.key)
	}
	return created, nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
