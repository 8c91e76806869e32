package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"cabs/internal/domain"
	"cabs/internal/repository"
)

// ClaimRepository is a PostgreSQL implementation of repository.ClaimRepository.
type ClaimRepository struct {
	q Querier
}

// NewClaimRepository creates a new PostgreSQL claim repository.
func NewClaimRepository(db *sql.DB) *ClaimRepository {
	return &ClaimRepository{q: db}
}

// NewClaimRepositoryWithTx creates a claim repository using a transaction.
func NewClaimRepositoryWithTx(tx *sql.Tx) *ClaimRepository {
	return &ClaimRepository{q: tx}
}

// Create persists a new claim.
func (r *ClaimRepository) Create(ctx context.Context, c *domain.Claim) error {
	query := `
		INSERT INTO claims (id, claim_no, client_id, transit_id, status, reason,
			incident_description, creation_date, completion_date, change_date, completion_mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.q.ExecContext(ctx, query,
		c.ID, c.ClaimNo, c.ClientID, c.TransitID, c.Status, c.Reason,
		c.IncidentDescription, c.CreationDate, nullTime(c.CompletionDate),
		nullTime(c.ChangeDate), nullString(c.CompletionMode),
	)
	return err
}

// Update updates an existing claim.
func (r *ClaimRepository) Update(ctx context.Context, c *domain.Claim) error {
	query := `
		UPDATE claims SET status = $2, completion_date = $3, change_date = $4, completion_mode = $5
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		c.ID, c.Status, nullTime(c.CompletionDate), nullTime(c.ChangeDate), nullString(c.CompletionMode),
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

// GetByID retrieves a claim by ID.
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*domain.Claim, error) {
	query := `
		SELECT id, claim_no, client_id, transit_id, status, reason,
			incident_description, creation_date, completion_date, change_date, completion_mode
		FROM claims WHERE id = $1
	`
	var c domain.Claim
	var completionDate, changeDate sql.NullTime
	var completionMode sql.NullString

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.ClaimNo, &c.ClientID, &c.TransitID, &c.Status, &c.Reason,
		&c.IncidentDescription, &c.CreationDate, &completionDate, &changeDate, &completionMode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.CompletionDate = completionDate.Time
	c.ChangeDate = changeDate.Time
	c.CompletionMode = completionMode.String
	return &c, nil
}

// Count returns the total number of claims ever filed.
func (r *ClaimRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM claims`).Scan(&count)
	return count, err
}

// ClaimResolverRepository is a PostgreSQL implementation of
// repository.ClaimResolverRepository.
type ClaimResolverRepository struct {
	q Querier
}

// NewClaimResolverRepository creates a new PostgreSQL claim resolver repository.
func NewClaimResolverRepository(db *sql.DB) *ClaimResolverRepository {
	return &ClaimResolverRepository{q: db}
}

// NewClaimResolverRepositoryWithTx creates a claim resolver repository using a transaction.
func NewClaimResolverRepositoryWithTx(tx *sql.Tx) *ClaimResolverRepository {
	return &ClaimResolverRepository{q: tx}
}

// FindByClientID retrieves a client's resolver.
func (r *ClaimResolverRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ClaimResolver, error) {
	var resolver domain.ClaimResolver
	err := r.q.QueryRowContext(ctx,
		`SELECT client_id, claimed_transit_ids FROM claim_resolvers WHERE client_id = $1`,
		clientID,
	).Scan(&resolver.ClientID, pq.Array(&resolver.ClaimedTransitIDs))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &resolver, nil
}

// Save upserts a resolver.
func (r *ClaimResolverRepository) Save(ctx context.Context, resolver *domain.ClaimResolver) error {
	query := `
		INSERT INTO claim_resolvers (client_id, claimed_transit_ids)
		VALUES ($1, $2)
		ON CONFLICT (client_id) DO UPDATE SET claimed_transit_ids = $2
	`
	_, err := r.q.ExecContext(ctx, query, resolver.ClientID, pq.Array(resolver.ClaimedTransitIDs))
	return err
}
