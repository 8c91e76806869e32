package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// DriverPositionRepository is a PostgreSQL implementation of
// repository.DriverPositionRepository.
type DriverPositionRepository struct {
	q Querier
}

// NewDriverPositionRepository creates a new PostgreSQL driver position repository.
func NewDriverPositionRepository(db *sql.DB) *DriverPositionRepository {
	return &DriverPositionRepository{q: db}
}

// Save persists a position fix.
func (r *DriverPositionRepository) Save(ctx context.Context, p *domain.DriverPosition) error {
	query := `
		INSERT INTO driver_positions (id, driver_id, latitude, longitude, seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query, p.ID, p.DriverID, p.Latitude, p.Longitude, p.SeenAt)
	return err
}

// FindAverageDriverPositionSince averages each driver's fixes newer than
// since inside the given bounding box.
func (r *DriverPositionRepository) FindAverageDriverPositionSince(ctx context.Context, latMin, latMax, lonMin, lonMax float64, since time.Time) ([]domain.DriverAvgPosition, error) {
	query := `
		SELECT driver_id, AVG(latitude), AVG(longitude)
		FROM driver_positions
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		  AND seen_at >= $5
		GROUP BY driver_id
	`
	rows, err := r.q.QueryContext(ctx, query, latMin, latMax, lonMin, lonMax, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []domain.DriverAvgPosition
	for rows.Next() {
		var p domain.DriverAvgPosition
		if err := rows.Scan(&p.DriverID, &p.Latitude, &p.Longitude); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// DriverSessionRepository is a PostgreSQL implementation of
// repository.DriverSessionRepository.
type DriverSessionRepository struct {
	q Querier
}

// NewDriverSessionRepository creates a new PostgreSQL driver session repository.
func NewDriverSessionRepository(db *sql.DB) *DriverSessionRepository {
	return &DriverSessionRepository{q: db}
}

// Save persists a session.
func (r *DriverSessionRepository) Save(ctx context.Context, s *domain.DriverSession) error {
	query := `
		INSERT INTO driver_sessions (id, driver_id, car_class, plates_number, car_brand, logged_at, logged_out_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET logged_out_at = $7
	`
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.DriverID, s.CarClass, s.PlatesNumber, s.CarBrand, s.LoggedAt, nullTime(s.LoggedOutAt),
	)
	return err
}

// FindActiveDriverIDs returns the IDs of the given drivers that have an
// open session in one of the given car classes.
func (r *DriverSessionRepository) FindActiveDriverIDs(ctx context.Context, driverIDs []string, carClasses []domain.CarClass) ([]string, error) {
	classes := make([]string, len(carClasses))
	for i, c := range carClasses {
		classes[i] = string(c)
	}

	query := `
		SELECT DISTINCT driver_id
		FROM driver_sessions
		WHERE logged_out_at IS NULL
		  AND driver_id = ANY($1)
		  AND car_class = ANY($2)
	`
	rows, err := r.q.QueryContext(ctx, query, pq.Array(driverIDs), pq.Array(classes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// FindOpenByDriverID retrieves a driver's most recent open session.
func (r *DriverSessionRepository) FindOpenByDriverID(ctx context.Context, driverID string) (*domain.DriverSession, error) {
	query := `
		SELECT id, driver_id, car_class, plates_number, car_brand, logged_at
		FROM driver_sessions
		WHERE driver_id = $1 AND logged_out_at IS NULL
		ORDER BY logged_at DESC
		LIMIT 1
	`
	var s domain.DriverSession
	err := r.q.QueryRowContext(ctx, query, driverID).Scan(
		&s.ID, &s.DriverID, &s.CarClass, &s.PlatesNumber, &s.CarBrand, &s.LoggedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
