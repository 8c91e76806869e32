package repository

import (
	"context"

	"cabs/internal/domain"
)

// ClaimRepository defines the persistence operations for claims.
type ClaimRepository interface {
	// Create persists a new claim.
	Create(ctx context.Context, claim *domain.Claim) error

	// GetByID retrieves a claim by ID.
	GetByID(ctx context.Context, id string) (*domain.Claim, error)

	// Update updates an existing claim.
	Update(ctx context.Context, claim *domain.Claim) error

	// Count returns the total number of claims ever filed.
	Count(ctx context.Context) (int, error)
}

// ClaimResolverRepository stores each client's claim history.
type ClaimResolverRepository interface {
	// FindByClientID retrieves a client's resolver.
	// Returns ErrNotFound if the client has never claimed.
	FindByClientID(ctx context.Context, clientID string) (*domain.ClaimResolver, error)

	// Save upserts a resolver.
	Save(ctx context.Context, resolver *domain.ClaimResolver) error
}
