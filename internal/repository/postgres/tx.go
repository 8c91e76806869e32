package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cabs/internal/repository"
)

// TxProvider runs callbacks against transaction-scoped repositories.
type TxProvider struct {
	db *sql.DB
}

// NewTxProvider creates a new TxProvider.
func NewTxProvider(db *sql.DB) *TxProvider {
	return &TxProvider{db: db}
}

// InTransaction begins a transaction, hands transaction-scoped repositories
// to fn, and commits if fn returns nil. Any error rolls everything back.
func (p *TxProvider) InTransaction(ctx context.Context, fn func(transits repository.TransitRepository, drivers repository.DriverRepository) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(NewTransitRepositoryWithTx(tx), NewDriverRepositoryWithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
