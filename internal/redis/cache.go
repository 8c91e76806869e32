package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles short-lived caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Active car classes change rarely; dispatch reads them every round.
const activeCarClassesTTL = 30 * time.Second

const activeCarClassesKey = "cache:car-classes:active"

// GetActiveCarClasses retrieves the cached active car classes.
// Returns (nil, nil) on a cache miss.
func (s *CacheStore) GetActiveCarClasses(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, activeCarClassesKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var classes []string
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// SetActiveCarClasses caches the active car classes.
func (s *CacheStore) SetActiveCarClasses(ctx context.Context, classes []string) error {
	data, err := json.Marshal(classes)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, activeCarClassesKey, data, activeCarClassesTTL).Err()
}

// InvalidateActiveCarClasses drops the cached class list after an
// activation change.
func (s *CacheStore) InvalidateActiveCarClasses(ctx context.Context) error {
	return s.client.Del(ctx, activeCarClassesKey).Err()
}
