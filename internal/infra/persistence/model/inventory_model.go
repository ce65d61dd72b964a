package model

import (
	"time"
)

// InventoryLogModel is the GORM-specific struct for the 'inventory_logs' table.
// One row per item received from a collected pickup.
type InventoryLogModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PickupID  uint64 `gorm:"not null;index"`
	ItemName  string `gorm:"type:varchar(100);not null"`
	Category  string `gorm:"type:varchar(50);not null"`
	Value     int    `gorm:"not null"`
	Status    string `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InventoryLogModel) TableName() string {
	return "inventory_logs"
}
