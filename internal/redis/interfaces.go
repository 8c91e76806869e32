package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for driver location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lon float64) error
	FindNearbyDrivers(ctx context.Context, lat, lon, radiusKm float64) ([]DriverLocation, error)
	RemoveLocation(ctx context.Context, driverID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireTransitLock(ctx context.Context, transitID string, ttl time.Duration) (bool, error)
	ReleaseTransitLock(ctx context.Context, transitID string) error
	AcquireResolverLock(ctx context.Context, clientID string, ttl time.Duration) (bool, error)
	ReleaseResolverLock(ctx context.Context, clientID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
)
