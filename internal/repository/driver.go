package repository

import (
	"context"

	"cabs/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// Update updates an existing driver.
	Update(ctx context.Context, driver *domain.Driver) error
}

// ClientRepository defines the persistence operations for clients.
type ClientRepository interface {
	// Create adds a new client.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID.
	GetByID(ctx context.Context, id string) (*domain.Client, error)
}

// DriverFeeRepository stores per-driver fee arrangements.
type DriverFeeRepository interface {
	// FindByDriverID retrieves a driver's fee arrangement.
	FindByDriverID(ctx context.Context, driverID string) (*domain.DriverFee, error)

	// Save upserts a fee arrangement.
	Save(ctx context.Context, fee *domain.DriverFee) error
}
