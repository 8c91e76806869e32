package repository

import (
	"context"
	"time"

	"cabs/internal/domain"
)

// DriverPositionRepository stores driver GPS fixes and answers the
// dispatcher's bounding-box queries.
type DriverPositionRepository interface {
	// Save persists a position fix.
	Save(ctx context.Context, position *domain.DriverPosition) error

	// FindAverageDriverPositionSince averages each driver's fixes newer
	// than since inside the given bounding box.
	FindAverageDriverPositionSince(ctx context.Context, latMin, latMax, lonMin, lonMax float64, since time.Time) ([]domain.DriverAvgPosition, error)
}

// DriverSessionRepository stores driver login sessions.
type DriverSessionRepository interface {
	// Save persists a session.
	Save(ctx context.Context, session *domain.DriverSession) error

	// FindActiveDriverIDs returns the IDs of the given drivers that have an
	// open session (no logout) in one of the given car classes.
	FindActiveDriverIDs(ctx context.Context, driverIDs []string, carClasses []domain.CarClass) ([]string, error)

	// FindOpenByDriverID retrieves a driver's most recent open session.
	// Returns ErrNotFound if the driver is not logged in.
	FindOpenByDriverID(ctx context.Context, driverID string) (*domain.DriverSession, error)
}
