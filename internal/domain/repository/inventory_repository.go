package repository

import (
	"context"

	"edrop/internal/domain/entity"
	"edrop/internal/errors"
)

// Domain-specific errors for inventory persistence.
var (
	// ErrInventoryNotFound is returned when an inventory record is not found.
	ErrInventoryNotFound = errors.New("inventory item not found")
)

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	// Status restricts to one warehouse status; empty means all.
	Status entity.InventoryStatus
	// Search is a case-insensitive item-name fragment; empty means no filter.
	Search string
}

// InventoryRepository defines the interface for warehouse inventory operations.
type InventoryRepository interface {
	// CreateInventoryLogs persists one batch of inventory records, typically
	// the clone of a pickup manifest at settlement time.
	CreateInventoryLogs(ctx context.Context, logs []*entity.InventoryLog) error

	// FindInventoryByID retrieves one inventory record.
	FindInventoryByID(ctx context.Context, id uint64) (*entity.InventoryLog, error)

	// ListInventory retrieves inventory records matching the filter, newest
	// first, with the owning customer's name resolved for display.
	ListInventory(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryLog, error)

	// CountByPickup returns how many inventory records trace back to a pickup.
	CountByPickup(ctx context.Context, pickupID uint64) (int64, error)

	// UpdateInventoryStatus advances the warehouse lifecycle of one record.
	UpdateInventoryStatus(ctx context.Context, id uint64, status entity.InventoryStatus) error
}
