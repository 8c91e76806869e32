package repository

import (
	"context"
	"time"

	"cabs/internal/domain"
)

// TransitRepository defines the persistence operations for transits.
type TransitRepository interface {
	// Create persists a new transit.
	Create(ctx context.Context, transit *domain.Transit) error

	// GetByID retrieves a transit by ID.
	GetByID(ctx context.Context, id string) (*domain.Transit, error)

	// Update updates an existing transit.
	Update(ctx context.Context, transit *domain.Transit) error

	// CountByClientID counts all transits requested by a client.
	CountByClientID(ctx context.Context, clientID string) (int, error)

	// FindCompletedByDriver returns the driver's completed transits with a
	// completion time in [since, until).
	FindCompletedByDriver(ctx context.Context, driverID string, since, until time.Time) ([]*domain.Transit, error)
}
