package usecase

import (
	"context"

	"edrop/internal/domain/entity"
)

// InventoryQuery filters the warehouse inventory listing.
type InventoryQuery struct {
	// Status filters by warehouse status; empty or "all" disables the filter.
	Status string

	// Search matches item names case-insensitively by substring.
	Search string
}

// InventoryUsecase defines warehouse inventory use cases.
type InventoryUsecase interface {
	// GetInventory lists inventory records, newest first, with the owning
	// customer's name resolved for display.
	GetInventory(ctx context.Context, query *InventoryQuery) ([]*entity.InventoryLog, error)

	// UpdateInventoryStatus moves an item through the warehouse lifecycle
	// (received -> refurbishing -> recycled).
	UpdateInventoryStatus(ctx context.Context, inventoryID uint64, status entity.InventoryStatus) (*entity.InventoryLog, error)
}
