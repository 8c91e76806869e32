package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// CarTypeRepository is a PostgreSQL implementation of repository.CarTypeRepository.
type CarTypeRepository struct {
	q Querier
}

// NewCarTypeRepository creates a new PostgreSQL car type repository.
func NewCarTypeRepository(db *sql.DB) *CarTypeRepository {
	return &CarTypeRepository{q: db}
}

// Save upserts a car type.
func (r *CarTypeRepository) Save(ctx context.Context, c *domain.CarType) error {
	query := `
		INSERT INTO car_types (id, car_class, description, status, cars_counter, min_no_of_cars)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (car_class) DO UPDATE SET
			description = $3, status = $4, cars_counter = $5, min_no_of_cars = $6
	`
	_, err := r.q.ExecContext(ctx, query,
		c.ID, c.CarClass, c.Description, c.Status, c.CarsCounter, c.MinNoOfCarsToActivateClass,
	)
	return err
}

// GetByID retrieves a car type by ID.
func (r *CarTypeRepository) GetByID(ctx context.Context, id string) (*domain.CarType, error) {
	return r.scanOne(ctx, `SELECT id, car_class, description, status, cars_counter, min_no_of_cars
		FROM car_types WHERE id = $1`, id)
}

// FindByCarClass retrieves the car type for a class.
func (r *CarTypeRepository) FindByCarClass(ctx context.Context, carClass domain.CarClass) (*domain.CarType, error) {
	return r.scanOne(ctx, `SELECT id, car_class, description, status, cars_counter, min_no_of_cars
		FROM car_types WHERE car_class = $1`, string(carClass))
}

func (r *CarTypeRepository) scanOne(ctx context.Context, query string, arg any) (*domain.CarType, error) {
	var c domain.CarType
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&c.ID, &c.CarClass, &c.Description, &c.Status, &c.CarsCounter, &c.MinNoOfCarsToActivateClass,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByStatus retrieves all car types in the given status.
func (r *CarTypeRepository) FindByStatus(ctx context.Context, status domain.CarStatus) ([]*domain.CarType, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, car_class, description, status, cars_counter, min_no_of_cars
		FROM car_types WHERE status = $1`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.CarType
	for rows.Next() {
		var c domain.CarType
		if err := rows.Scan(&c.ID, &c.CarClass, &c.Description, &c.Status, &c.CarsCounter, &c.MinNoOfCarsToActivateClass); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// Delete removes a car type and its active counter.
func (r *CarTypeRepository) Delete(ctx context.Context, carClass domain.CarClass) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM car_types WHERE car_class = $1`, string(carClass)); err != nil {
		return err
	}
	_, err := r.q.ExecContext(ctx, `DELETE FROM car_type_active_counters WHERE car_class = $1`, string(carClass))
	return err
}

// IncrementActiveCounter bumps the active-car counter for a class.
// The counter row is created on first use; the increment is a single
// statement so concurrent logins never lose updates.
func (r *CarTypeRepository) IncrementActiveCounter(ctx context.Context, carClass domain.CarClass) error {
	query := `
		INSERT INTO car_type_active_counters (car_class, active_cars_counter)
		VALUES ($1, 1)
		ON CONFLICT (car_class) DO UPDATE
			SET active_cars_counter = car_type_active_counters.active_cars_counter + 1
	`
	_, err := r.q.ExecContext(ctx, query, string(carClass))
	return err
}

// DecrementActiveCounter lowers the active-car counter for a class.
func (r *CarTypeRepository) DecrementActiveCounter(ctx context.Context, carClass domain.CarClass) error {
	query := `
		UPDATE car_type_active_counters
		SET active_cars_counter = active_cars_counter - 1
		WHERE car_class = $1
	`
	_, err := r.q.ExecContext(ctx, query, string(carClass))
	return err
}

// GetActiveCounter reads the active-car counter for a class.
func (r *CarTypeRepository) GetActiveCounter(ctx context.Context, carClass domain.CarClass) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT active_cars_counter FROM car_type_active_counters WHERE car_class = $1`,
		string(carClass),
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}
