package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireTransitLock attempts to acquire the acceptance lock for a transit.
// Returns true if the lock was acquired, false if already held. Exactly one
// driver's accept attempt can hold it at a time.
func (s *LockStore) AcquireTransitLock(ctx context.Context, transitID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:transit:%s", transitID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseTransitLock releases the acceptance lock for a transit.
func (s *LockStore) ReleaseTransitLock(ctx context.Context, transitID string) error {
	key := fmt.Sprintf("lock:transit:%s", transitID)

	return s.client.Del(ctx, key).Err()
}

// AcquireResolverLock attempts to acquire a client's claim-resolver lock.
// The claim ledger's check-and-insert must run under it.
func (s *LockStore) AcquireResolverLock(ctx context.Context, clientID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:claim-resolver:%s", clientID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseResolverLock releases a client's claim-resolver lock.
func (s *LockStore) ReleaseResolverLock(ctx context.Context, clientID string) error {
	key := fmt.Sprintf("lock:claim-resolver:%s", clientID)

	return s.client.Del(ctx, key).Err()
}
