package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/setlab/labsched/config"
	"github.com/setlab/labsched/model"
)

const sessionKeyPrefix = "labsched:session:"
const generationKey = "labsched:generation"

// RedisStore keeps session datasets in Redis so several instances can share
// them. Keys carry a TTL that refreshes on every read and write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// StartRedis connects to the Redis instance named by REDIS_URL.
func StartRedis(getEnv *config.EnviornmentVariable) (*RedisStore, error) {
	opt, err := redis.ParseURL(getEnv.REDIS_URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    time.Duration(getEnv.SESSION_TTL_MINUTES) * time.Minute,
	}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *RedisStore) Replace(ctx context.Context, sessionID string, dataset *model.Dataset) error {
	// The generation counter is shared across instances.
	gen, err := r.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return err
	}
	dataset.Generation = uint64(gen)

	jsonData, err := json.Marshal(dataset)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(sessionID), jsonData, r.ttl).Err()
}

func (r *RedisStore) Snapshot(ctx context.Context, sessionID string) (*model.Dataset, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNoDataset
	}
	if err != nil {
		return nil, err
	}

	var dataset model.Dataset
	if err := json.Unmarshal([]byte(val), &dataset); err != nil {
		return nil, err
	}

	// Reading keeps the session alive.
	if err := r.client.Expire(ctx, sessionKey(sessionID), r.ttl).Err(); err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (r *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}

func (r *RedisStore) Sessions(ctx context.Context) ([]string, error) {
	keys, err := r.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, sessionKeyPrefix))
	}
	return ids, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
