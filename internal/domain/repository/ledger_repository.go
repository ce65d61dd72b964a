package repository

import (
	"context"

	"edrop/internal/domain/entity"
)

// LedgerRepository defines the interface for the append-only wallet ledger.
type LedgerRepository interface {
	// CreateLedgerEntry appends one ledger entry. Entries are never updated
	// or deleted.
	CreateLedgerEntry(ctx context.Context, entry *entity.LedgerEntry) error

	// FindEntriesByProfile retrieves a profile's ledger, newest first.
	FindEntriesByProfile(ctx context.Context, profileID uint64) ([]*entity.LedgerEntry, error)
}
