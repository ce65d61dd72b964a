package entity

import (
	"fmt"
	"strings"
	"time"
)

// InventoryStatus represents the warehouse lifecycle of an inventory item.
// It is independent from the originating pickup's lifecycle after creation.
type InventoryStatus string

const (
	// InventoryPending marks an item registered but not yet at the warehouse.
	InventoryPending InventoryStatus = "pending"
	// InventoryReceived marks an item that arrived at the warehouse.
	InventoryReceived InventoryStatus = "received"
	// InventoryRefurbishing marks an item under repair for resale.
	InventoryRefurbishing InventoryStatus = "refurbishing"
	// InventoryRecycled marks an item broken down for material recovery.
	InventoryRecycled InventoryStatus = "recycled"
)

// String returns the string representation of the InventoryStatus.
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid checks if the InventoryStatus is a valid value.
func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryPending, InventoryReceived, InventoryRefurbishing, InventoryRecycled:
		return true
	default:
		return false
	}
}

// InventoryLog is one warehouse inventory record, created exactly once per
// manifest item when its pickup is collected. It keeps a non-owning
// back-reference to the pickup for traceability only.
type InventoryLog struct {
	ID           uint64
	PickupID     uint64
	ItemName     string
	Category     string // Derived from the item name at settlement time.
	Value        int    // Copied from the manifest line.
	Status       InventoryStatus
	CustomerName string // Resolved through pickup -> profile, "Unknown" when absent.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FormattedID renders the warehouse-facing inventory code, e.g. "INV-0042".
func (l *InventoryLog) FormattedID() string {
	return fmt.Sprintf("INV-%04d", l.ID)
}

// CategoryForItem derives a coarse warehouse category from an item name by
// substring match. Anything unrecognized lands in the generic bucket.
func CategoryForItem(name string) string {
	lowered := strings.ToLower(name)
	switch {
	case strings.Contains(lowered, "laptop"):
		return "Laptop"
	case strings.Contains(lowered, "phone"):
		return "Smartphone"
	case strings.Contains(lowered, "tv"), strings.Contains(lowered, "monitor"):
		return "Display"
	default:
		return "Electronics"
	}
}
