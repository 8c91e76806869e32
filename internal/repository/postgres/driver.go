package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, d *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, first_name, last_name, driver_license, status, type, occupied)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		d.ID, d.FirstName, d.LastName, d.License.AsString(), d.Status, d.Type, d.Occupied,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, first_name, last_name, driver_license, status, type, occupied
		FROM drivers WHERE id = $1
	`
	var d domain.Driver
	var license string
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.FirstName, &d.LastName, &license, &d.Status, &d.Type, &d.Occupied,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	d.License = domain.LicenseWithoutValidation(license)
	return &d, nil
}

// Update updates an existing driver.
func (r *DriverRepository) Update(ctx context.Context, d *domain.Driver) error {
	query := `
		UPDATE drivers SET first_name = $2, last_name = $3, driver_license = $4,
			status = $5, type = $6, occupied = $7
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		d.ID, d.FirstName, d.LastName, d.License.AsString(), d.Status, d.Type, d.Occupied,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClientRepository is a PostgreSQL implementation of repository.ClientRepository.
type ClientRepository struct {
	q Querier
}

// NewClientRepository creates a new PostgreSQL client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{q: db}
}

// Create adds a new client.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `
		INSERT INTO clients (id, type, name, last_name, payment_type)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query, c.ID, c.Type, c.Name, c.LastName, c.PaymentType)
	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT id, type, name, last_name, payment_type FROM clients WHERE id = $1`
	var c domain.Client
	err := r.q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Type, &c.Name, &c.LastName, &c.PaymentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DriverFeeRepository is a PostgreSQL implementation of repository.DriverFeeRepository.
type DriverFeeRepository struct {
	q Querier
}

// NewDriverFeeRepository creates a new PostgreSQL driver fee repository.
func NewDriverFeeRepository(db *sql.DB) *DriverFeeRepository {
	return &DriverFeeRepository{q: db}
}

// FindByDriverID retrieves a driver's fee arrangement.
func (r *DriverFeeRepository) FindByDriverID(ctx context.Context, driverID string) (*domain.DriverFee, error) {
	query := `SELECT id, driver_id, fee_type, amount, min FROM driver_fees WHERE driver_id = $1`
	var f domain.DriverFee
	var min int64
	err := r.q.QueryRowContext(ctx, query, driverID).Scan(&f.ID, &f.DriverID, &f.FeeType, &f.Amount, &min)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	f.Min = domain.NewMoney(int(min))
	return &f, nil
}

// Save upserts a fee arrangement.
func (r *DriverFeeRepository) Save(ctx context.Context, f *domain.DriverFee) error {
	query := `
		INSERT INTO driver_fees (id, driver_id, fee_type, amount, min)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (driver_id) DO UPDATE SET fee_type = $3, amount = $4, min = $5
	`
	_, err := r.q.ExecContext(ctx, query, f.ID, f.DriverID, f.FeeType, f.Amount, int64(f.Min.ToInt()))
	return err
}
