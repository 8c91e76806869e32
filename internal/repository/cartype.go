package repository

import (
	"context"

	"cabs/internal/domain"
)

// CarTypeRepository defines the persistence operations for car types and
// their per-class active-car counters.
type CarTypeRepository interface {
	// Save upserts a car type.
	Save(ctx context.Context, carType *domain.CarType) error

	// GetByID retrieves a car type by ID.
	GetByID(ctx context.Context, id string) (*domain.CarType, error)

	// FindByCarClass retrieves the car type for a class.
	FindByCarClass(ctx context.Context, carClass domain.CarClass) (*domain.CarType, error)

	// FindByStatus retrieves all car types in the given status.
	FindByStatus(ctx context.Context, status domain.CarStatus) ([]*domain.CarType, error)

	// Delete removes a car type and its active counter.
	Delete(ctx context.Context, carClass domain.CarClass) error

	// IncrementActiveCounter bumps the active-car counter for a class.
	IncrementActiveCounter(ctx context.Context, carClass domain.CarClass) error

	// DecrementActiveCounter lowers the active-car counter for a class.
	DecrementActiveCounter(ctx context.Context, carClass domain.CarClass) error

	// GetActiveCounter reads the active-car counter for a class.
	GetActiveCounter(ctx context.Context, carClass domain.CarClass) (int, error)
}
