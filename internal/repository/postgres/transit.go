package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// TransitRepository is a PostgreSQL implementation of repository.TransitRepository.
type TransitRepository struct {
	q Querier
}

// NewTransitRepository creates a new PostgreSQL transit repository.
func NewTransitRepository(db *sql.DB) *TransitRepository {
	return &TransitRepository{q: db}
}

// NewTransitRepositoryWithTx creates a transit repository using a transaction.
func NewTransitRepositoryWithTx(tx *sql.Tx) *TransitRepository {
	return &TransitRepository{q: tx}
}

// Addresses are stored inline. Reloaded transits are re-geocoded (pickup
// corrections, final distance), so the full address must survive a round trip.
const transitColumns = `
	id, status,
	from_country, from_city, from_street, from_building_number, from_postal_code,
	to_country, to_city, to_street, to_building_number, to_postal_code,
	client_id, driver_id, car_class,
	km, tariff_km_rate, tariff_name, tariff_base_fee,
	price, estimated_price, drivers_fee,
	date_time, published, accepted_at, started, completed_at,
	pickup_address_change_counter, proposed_drivers, drivers_rejections,
	awaiting_drivers_responses
`

// Create persists a new transit.
func (r *TransitRepository) Create(ctx context.Context, t *domain.Transit) error {
	query := `
		INSERT INTO transits (` + transitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`
	_, err := r.q.ExecContext(ctx, query, transitArgs(t)...)
	return err
}

// Update updates an existing transit.
func (r *TransitRepository) Update(ctx context.Context, t *domain.Transit) error {
	query := `
		UPDATE transits SET
			status = $2,
			from_country = $3, from_city = $4, from_street = $5,
			from_building_number = $6, from_postal_code = $7,
			to_country = $8, to_city = $9, to_street = $10,
			to_building_number = $11, to_postal_code = $12,
			client_id = $13, driver_id = $14, car_class = $15, km = $16,
			tariff_km_rate = $17, tariff_name = $18, tariff_base_fee = $19,
			price = $20, estimated_price = $21, drivers_fee = $22,
			date_time = $23, published = $24, accepted_at = $25, started = $26,
			completed_at = $27, pickup_address_change_counter = $28,
			proposed_drivers = $29, drivers_rejections = $30,
			awaiting_drivers_responses = $31
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query, transitArgs(t)...)
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

// GetByID retrieves a transit by ID.
func (r *TransitRepository) GetByID(ctx context.Context, id string) (*domain.Transit, error) {
	query := `SELECT ` + transitColumns + ` FROM transits WHERE id = $1`

	t, err := scanTransit(r.q.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// CountByClientID counts all transits requested by a client.
func (r *TransitRepository) CountByClientID(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transits WHERE client_id = $1`, clientID,
	).Scan(&count)
	return count, err
}

// FindCompletedByDriver returns the driver's completed transits with a
// completion time in [since, until).
func (r *TransitRepository) FindCompletedByDriver(ctx context.Context, driverID string, since, until time.Time) ([]*domain.Transit, error) {
	query := `
		SELECT ` + transitColumns + `
		FROM transits
		WHERE driver_id = $1 AND status = $2 AND completed_at >= $3 AND completed_at < $4
	`
	rows, err := r.q.QueryContext(ctx, query, driverID, domain.TransitStatusCompleted, since, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transits []*domain.Transit
	for rows.Next() {
		t, err := scanTransit(rows.Scan)
		if err != nil {
			return nil, err
		}
		transits = append(transits, t)
	}
	return transits, rows.Err()
}

func scanTransit(scan func(dest ...any) error) (*domain.Transit, error) {
	var t domain.Transit
	var driverID, carClass, fromPostal, toPostal sql.NullString
	var price, estimatedPrice, driversFee sql.NullInt64
	var published, acceptedAt, started, completedAt sql.NullTime

	err := scan(
		&t.ID,
		&t.Status,
		&t.From.Country,
		&t.From.City,
		&t.From.Street,
		&t.From.BuildingNumber,
		&fromPostal,
		&t.To.Country,
		&t.To.City,
		&t.To.Street,
		&t.To.BuildingNumber,
		&toPostal,
		&t.ClientID,
		&driverID,
		&carClass,
		&t.Km,
		&t.Tariff.KmRate,
		&t.Tariff.Name,
		&t.Tariff.BaseFee,
		&price,
		&estimatedPrice,
		&driversFee,
		&t.DateTime,
		&published,
		&acceptedAt,
		&started,
		&completedAt,
		&t.PickupAddressChangeCounter,
		pq.Array(&t.ProposedDrivers),
		pq.Array(&t.DriversRejections),
		&t.AwaitingDriversResponses,
	)
	if err != nil {
		return nil, err
	}

	t.From.PostalCode = fromPostal.String
	t.To.PostalCode = toPostal.String
	t.DriverID = driverID.String
	t.CarClass = domain.CarClass(carClass.String)
	t.Price = nullableMoney(price)
	t.EstimatedPrice = nullableMoney(estimatedPrice)
	t.DriversFee = nullableMoney(driversFee)
	t.Published = published.Time
	t.AcceptedAt = acceptedAt.Time
	t.Started = started.Time
	t.CompletedAt = completedAt.Time

	return &t, nil
}

func transitArgs(t *domain.Transit) []any {
	return []any{
		t.ID,
		t.Status,
		t.From.Country,
		t.From.City,
		t.From.Street,
		t.From.BuildingNumber,
		nullString(t.From.PostalCode),
		t.To.Country,
		t.To.City,
		t.To.Street,
		t.To.BuildingNumber,
		nullString(t.To.PostalCode),
		t.ClientID,
		nullString(t.DriverID),
		nullString(string(t.CarClass)),
		t.Km,
		t.Tariff.KmRate,
		t.Tariff.Name,
		t.Tariff.BaseFee,
		moneyValue(t.Price),
		moneyValue(t.EstimatedPrice),
		moneyValue(t.DriversFee),
		t.DateTime,
		nullTime(t.Published),
		nullTime(t.AcceptedAt),
		nullTime(t.Started),
		nullTime(t.CompletedAt),
		t.PickupAddressChangeCounter,
		pq.Array(t.ProposedDrivers),
		pq.Array(t.DriversRejections),
		t.AwaitingDriversResponses,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func moneyValue(m *domain.Money) sql.NullInt64 {
	if m == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(m.ToInt()), Valid: true}
}

func nullableMoney(v sql.NullInt64) *domain.Money {
	if !v.Valid {
		return nil
	}
	m := domain.NewMoney(int(v.Int64))
	return &m
}
